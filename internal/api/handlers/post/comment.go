package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"miniblog/internal/api/middleware"
	"miniblog/internal/core/posts"
)

// CommentHandler handles comment creation requests
type CommentHandler struct {
	service posts.Service
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service posts.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// HandleAddComment handles POST /posts/{id}/comment
// Appends a comment by the authenticated caller to the post.
func (h *CommentHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	view, err := h.service.AddComment(r.Context(), postID, userID, req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}
