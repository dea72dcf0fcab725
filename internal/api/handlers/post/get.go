package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"miniblog/internal/core/posts"
)

// GetHandler handles single post requests
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /posts/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
