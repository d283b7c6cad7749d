package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTrim(t *testing.T) {
	assert.Nil(t, SplitTrim("", ","))
	assert.Equal(t, []string{"title", "isbn"}, SplitTrim(" title , isbn ,", ","))
	assert.Equal(t, []string{"a"}, SplitTrim("a", ","))
}

func TestYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr string
	}{
		{in: "1965", want: 1965},
		{in: " 2001 ", want: 2001},
		{in: "", wantErr: "required"},
		{in: "MCMLXV", wantErr: "whole number"},
		{in: "999", wantErr: "1000 or later"},
		{in: "99999", wantErr: "must not be after"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Year(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequired(t *testing.T) {
	check := Required("title")
	assert.NoError(t, check("Dune"))
	assert.EqualError(t, check("  "), "title is required")
}
