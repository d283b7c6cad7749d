package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	s := newNotes(t)

	tests := []struct {
		expression string
		want       []string
	}{
		{"done", []string{"3"}},
		{"!done", []string{"1", "2"}},
		{"priority >= 2", []string{"2", "3"}},
		{`title contains "The"`, []string{"1", "3"}},
		{`code startsWith "978" && priority < 2`, []string{"1"}},
		{`id in ["1", "3"]`, []string{"1", "3"}},
		{"priority > 100", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := s.Where(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestWhere_InvalidExpression(t *testing.T) {
	s := newNotes(t)

	for _, bad := range []string{"priority +", "unknownField == 1", "priority + 1"} {
		t.Run(bad, func(t *testing.T) {
			_, err := s.Where(bad)
			var exprErr *ExpressionError
			require.ErrorAs(t, err, &exprErr)
			assert.Equal(t, bad, exprErr.Expression)
			assert.NotNil(t, errors.Unwrap(err))
			assert.Equal(t, 400, exprErr.StatusCode())
		})
	}
}

func TestWhere_ProgramCache(t *testing.T) {
	s := newNotes(t)

	_, err := s.Where("done")
	require.NoError(t, err)
	_, err = s.Where("done")
	require.NoError(t, err)

	s.programMu.RLock()
	defer s.programMu.RUnlock()
	assert.Len(t, s.programs, 1)
}
