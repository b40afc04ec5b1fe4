package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealthChecker struct {
	err error
}

func (s stubHealthChecker) HealthCheck(ctx context.Context) error {
	return s.err
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		wantStatus int
		wantCode   string
	}{
		{name: "healthy", wantStatus: http.StatusOK},
		{name: "database down", dbErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantCode: "SYSTEM_003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(TraceIDContextKey, "trace-health")

			err := NewHealthCheckHandler(stubHealthChecker{err: tt.dbErr}).HealthCheck(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode == "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "healthy", body["status"])
				return
			}

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.wantCode, response.Error.Code)
			assert.Equal(t, "trace-health", response.Error.TraceID)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestGetClientIP(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	assert.Equal(t, "10.0.0.1", getClientIP(e.NewContext(req, httptest.NewRecorder())))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.3")
	assert.Equal(t, "10.0.0.3", getClientIP(e.NewContext(req, httptest.NewRecorder())))
}
