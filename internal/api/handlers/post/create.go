package post

import (
	"encoding/json"
	"net/http"

	"miniblog/internal/api/middleware"
	"miniblog/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate handles POST /posts
// Creates a new post owned by the authenticated caller.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// 1MB is plenty for text plus an image URL
	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var req posts.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Ownership is derived from the authenticated caller, never the body
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	view, err := h.service.CreatePost(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}
