package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"miniblog/internal/api/middleware"
	"miniblog/internal/core/posts"
)

// LikeHandler handles like toggle requests
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleToggleLike handles PUT /posts/{id}/like
// Likes the post if the caller has not liked it, unlikes it otherwise.
func (h *LikeHandler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	view, err := h.service.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
