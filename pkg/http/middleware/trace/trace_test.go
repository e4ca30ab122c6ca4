package trace

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter(t *testing.T) (*chi.Mux, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	router := chi.NewRouter()
	router.Use(NewTraceMiddleware(tp, "test"))
	router.Get("/api/customers", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/orders", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	return router, recorder
}

func attr(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		spanName   string
		statusCode int64
		isError    bool
	}{
		{
			name:       "Successful request",
			method:     http.MethodGet,
			path:       "/api/customers",
			spanName:   "GET /api/customers",
			statusCode: http.StatusOK,
		},
		{
			name:       "Failed request marks span as error",
			method:     http.MethodPost,
			path:       "/api/orders",
			spanName:   "POST /api/orders",
			statusCode: http.StatusInternalServerError,
			isError:    true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, recorder := newTracedRouter(t)
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

			spans := recorder.Ended()
			if len(spans) != 1 {
				t.Fatalf("Expected 1 span, got %d", len(spans))
			}
			span := spans[0]

			if span.Name() != tt.spanName {
				t.Errorf("Expected span name %q, got %q", tt.spanName, span.Name())
			}
			if v, ok := attr(span.Attributes(), "http.status_code"); !ok || v.AsInt64() != tt.statusCode {
				t.Errorf("Expected http.status_code %d, got %v", tt.statusCode, v.Emit())
			}
			if got := span.Status().Code == codes.Error; got != tt.isError {
				t.Errorf("Expected error status %v, got %v", tt.isError, span.Status().Code)
			}
		})
	}
}
