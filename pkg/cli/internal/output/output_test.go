package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"publishedYear"`
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, row{ID: "1", Title: "Dune", Year: 1965}))
	assert.Equal(t, "{\n  \"id\": \"1\",\n  \"title\": \"Dune\",\n  \"publishedYear\": 1965\n}\n", buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tw := Table(&buf)
	fmt.Fprintln(tw, "ID\tTITLE")
	fmt.Fprintln(tw, "10\tDune")
	require.NoError(t, tw.Flush())
	assert.Equal(t, "ID  TITLE\n10  Dune\n", buf.String())
}

func TestSelect(t *testing.T) {
	rows := []row{
		{ID: "1", Title: "The Great Gatsby", Year: 1925},
		{ID: "2", Title: "Dune", Year: 1965},
	}

	tests := []struct {
		name string
		path string
		want []any
	}{
		{name: "all titles", path: "$[*].title", want: []any{"The Great Gatsby", "Dune"}},
		{name: "index", path: "$[1].id", want: []any{"2"}},
		{name: "filter", path: "$[?(@.publishedYear > 1950)].title", want: []any{"Dune"}},
		{name: "no match", path: "$[*].isbn", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(rows, tt.path)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_InvalidPath(t *testing.T) {
	_, err := Select(row{}, "$[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSONPath")
}
