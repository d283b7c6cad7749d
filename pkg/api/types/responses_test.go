package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codtech/libraryd/pkg/library"
)

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("serializes without details", func(t *testing.T) {
		t.Parallel()
		resp := ErrorResponse{
			Error:   "not_found",
			Message: "Book not found",
		}

		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var result map[string]any
		err = json.Unmarshal(data, &result)
		require.NoError(t, err)

		assert.Equal(t, "not_found", result["error"])
		assert.Equal(t, "Book not found", result["message"])
		assert.NotContains(t, result, "details")
		assert.NotContains(t, result, "hint")
	})

	t.Run("serializes with details", func(t *testing.T) {
		t.Parallel()
		resp := ErrorResponse{
			Error:   "validation_error",
			Message: "Validation failed",
			Details: []map[string]string{{"field": "title"}},
		}

		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"details":[{"field":"title"}]`)
	})
}

func TestHealthResponse(t *testing.T) {
	t.Parallel()

	resp := HealthResponse{Status: "ok", Uptime: 12, Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","uptime":12,"timestamp":"2026-01-02T03:04:05Z"}`, string(data))
}

func TestDeleteResponse(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DeleteResponse{Success: true, Message: "Book deleted successfully"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Book deleted successfully"}`, string(data))
}

func TestStatsResponse(t *testing.T) {
	t.Parallel()

	resp := StatsResponse{Counts: library.Overview{Books: 4, Authors: 3, Categories: 3}}
	resp.Operations.InsertCount = 1

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded StatsResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, resp, decoded)
	assert.Contains(t, string(data), `"counts":{"books":4,"authors":3,"categories":3}`)
}
