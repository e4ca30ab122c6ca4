// Package respond writes JSON bodies for the HTTP transport.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON marshals v and writes it with the given status.
// Nothing is written if marshalling fails, so a client never sees a partial body.
func JSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("Error writing response body", "error", err)
	}

	return nil
}

// Error writes err as a 500 response.
func Error(w http.ResponseWriter, err error) {
	body, _ := json.Marshal(ErrorResponse{Error: err.Error()})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if _, err := w.Write(body); err != nil {
		slog.Error("Error writing error response", "error", err)
	}
}
