package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"miniblog/internal/api/middleware"
	"miniblog/internal/core/users"
)

// FollowHandler handles follow toggle requests
type FollowHandler struct {
	service users.Service
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(service users.Service) *FollowHandler {
	return &FollowHandler{service: service}
}

// HandleToggleFollow handles PUT /users/{id}/follow
// Follows the target if the caller does not follow them, unfollows
// otherwise. Responds with which action occurred plus both updated
// relationship sets.
func (h *FollowHandler) HandleToggleFollow(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")

	callerID := middleware.GetUserID(r)
	if callerID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	resp, err := h.service.ToggleFollow(r.Context(), callerID, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("failed to encode follow response", "error", err.Error())
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{Message: message}); err != nil {
		slog.Warn("failed to encode error response", "error", err.Error())
	}
}

// handleServiceError maps user service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, "You cannot follow yourself")

	case users.IsNotFound(err):
		writeError(w, http.StatusNotFound, "User not found")

	default:
		slog.Error("unexpected error in user handler", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}
