package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubHealth struct {
	err error
}

func (s stubHealth) Ping(_ context.Context) error {
	return s.err
}

func TestServer_HealthEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		health         HealthChecker
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "healthy when cache reachable",
			health:         stubHealth{},
			expectedStatus: http.StatusOK,
			expectedBody:   `"cache":"connected"`,
		},
		{
			name:           "unhealthy when cache ping fails",
			health:         stubHealth{err: fmt.Errorf("connection refused")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"error":"cache unreachable"`,
		},
		{
			name:           "healthy without checker",
			health:         nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"healthy"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := New("127.0.0.1:0", tc.health, "release")

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			resp := httptest.NewRecorder()
			srv.Engine.ServeHTTP(resp, req)

			require.Equal(t, tc.expectedStatus, resp.Code)
			require.Contains(t, resp.Body.String(), tc.expectedBody)
		})
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv := New("127.0.0.1:0", stubHealth{}, "release")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	srv.Engine.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "go_goroutines")
}

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	srv := New("127.0.0.1:0", stubHealth{}, "release")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	srv.Engine.ServeHTTP(resp, req)

	id := resp.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

func TestRequestID_PreservedWhenPresent(t *testing.T) {
	srv := New("127.0.0.1:0", stubHealth{}, "release")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp := httptest.NewRecorder()
	srv.Engine.ServeHTTP(resp, req)

	require.Equal(t, "req-42", resp.Header().Get("X-Request-ID"))
}
