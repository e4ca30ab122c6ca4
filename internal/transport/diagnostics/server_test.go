package diagnostics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ping       error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Database reachable",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name:       "Database unreachable",
			ping:       errors.New("failed to connect to database: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable","error":"failed to connect to database: connection refused"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := NewServer(9090, pingerFunc(func(context.Context) error { return tt.ping }))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if body := strings.TrimSpace(rec.Body.String()); body != tt.wantBody {
				t.Errorf("Expected body %s, got %s", tt.wantBody, body)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	srv := NewServer(9090, pingerFunc(func(context.Context) error { return nil }))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("Expected default Go collectors in metrics output")
	}
}
