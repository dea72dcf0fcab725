package post

import (
	"net/http"

	"miniblog/internal/core/posts"
)

// ListHandler handles post listing requests
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /posts
// Returns every post newest first with all user references resolved.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListPosts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}
