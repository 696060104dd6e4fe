package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", fmt.Errorf("alert abc: %w", ErrNotFound), http.StatusNotFound, "not_found"},
		{"bad request", ErrBadRequest, http.StatusBadRequest, "bad_request"},
		{"rate limited", fmt.Errorf("refresh: %w", ErrRateLimited), http.StatusTooManyRequests, "rate_limited"},
		{"network", fmt.Errorf("fetch nodes: %w", ErrNetwork), http.StatusBadGateway, "upstream_error"},
		{"parse", ErrParse, http.StatusBadGateway, "upstream_error"},
		{"stream exhausted", ErrReconnectExhausted, http.StatusServiceUnavailable, "service_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := processError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Run("Should write the mapped status as JSON", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		rec := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(rec)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/api/alerts/x", nil)

		HandleError(ctx, fmt.Errorf("alert x: %w", ErrNotFound), NewNopLogger())

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body.Error)
		assert.Contains(t, body.Message, "alert x")
	})
}

func TestErrorClassifiers(t *testing.T) {
	t.Run("Should match wrapped sentinels", func(t *testing.T) {
		assert.True(t, IsNetworkError(fmt.Errorf("wrapped: %w", ErrNetwork)))
		assert.True(t, IsParseError(fmt.Errorf("wrapped: %w", ErrParse)))
		assert.True(t, IsPersistenceError(fmt.Errorf("wrapped: %w", ErrPersistence)))
		assert.False(t, IsNetworkError(ErrParse))
	})
}
