package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := JSON(rec, http.StatusCreated, map[string]int{"orderId": 7}); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	if body := rec.Body.String(); body != `{"orderId":7}` {
		t.Errorf("Unexpected body %s", body)
	}
}

func TestJSON_UnsupportedValueWritesNothing(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := JSON(rec, http.StatusOK, make(chan int)); err == nil {
		t.Fatal("Expected marshal error")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", rec.Body.String())
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Error(rec, errors.New(`duplicate key value violates unique constraint "customers_customeremail_key"`))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}

	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Error != `duplicate key value violates unique constraint "customers_customeremail_key"` {
		t.Errorf("Unexpected error text %q", body.Error)
	}
}
