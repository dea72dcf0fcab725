package post

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"miniblog/internal/core/posts"
)

type errorResponse struct {
	Message string `json:"message"`
}

// writeError writes the fixed-shape JSON error body
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{Message: message}); err != nil {
		slog.Warn("failed to encode error response", "error", err.Error())
	}
}

// writeJSON writes a success payload
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode response", "error", err.Error())
	}
}

// handleServiceError maps service errors to HTTP responses.
// Store failures are logged and surface as a generic 500; internal
// details are never leaked to the caller.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case posts.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())

	case posts.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Post not found")

	default:
		slog.Error("unexpected error in post handler", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}
