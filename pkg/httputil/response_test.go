package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		data := map[string]string{"foo": "bar"}

		WriteJSON(rec, http.StatusOK, data)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		err := json.Unmarshal(rec.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "bar", result["foo"])
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("sets custom status codes", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusCreated, map[string]string{"id": "123"})

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("writes error response with correct format", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteError(rec, http.StatusBadRequest, "invalid_input", "Name is required")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		err := json.Unmarshal(rec.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "invalid_input", result["error"])
		assert.Equal(t, "Name is required", result["message"])
	})
}

func TestWriteErrorWithDetails(t *testing.T) {
	t.Parallel()

	t.Run("includes details in response", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		details := map[string]string{"field": "title", "reason": "required"}

		WriteErrorWithDetails(rec, http.StatusBadRequest, "validation_error", "Validation failed", details)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var result map[string]any
		err := json.Unmarshal(rec.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "validation_error", result["error"])
		assert.Equal(t, "Validation failed", result["message"])
		assert.NotNil(t, result["details"])
	})
}

func TestWriteErrorFrom(t *testing.T) {
	t.Parallel()

	t.Run("uses status and hint from the error chain", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := fmt.Errorf("lookup: %w", hintedError{status: http.StatusNotFound})

		WriteErrorFrom(rec, err)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var result map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "not_found", result["error"])
		assert.Equal(t, "lookup: book 9 not found", result["message"])
		assert.Equal(t, "try another id", result["hint"])
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteErrorFrom(rec, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":"internal_server_error"`)
		assert.NotContains(t, rec.Body.String(), "hint")
	})
}

type hintedError struct{ status int }

func (e hintedError) Error() string   { return "book 9 not found" }
func (e hintedError) StatusCode() int { return e.status }
func (e hintedError) Hint() string    { return "try another id" }

func TestErrorCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not_found", ErrorCode(http.StatusNotFound))
	assert.Equal(t, "unprocessable_entity", ErrorCode(http.StatusUnprocessableEntity))
	assert.Equal(t, "bad_request", ErrorCode(http.StatusBadRequest))
	assert.Equal(t, "error", ErrorCode(799))
}

func TestWriteCreated(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteCreated(rec, map[string]string{"id": "4"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var result map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "4", result["id"])
}

func TestWriteOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteOK(rec, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteBadRequest(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteBadRequest(rec, "bad_request", "Invalid input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteNotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteNotFound(rec, "not_found", "Book not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteInternalError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteInternalError(rec, "internal_error", "Something went wrong")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
