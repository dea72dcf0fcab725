package routes

import (
	"github.com/go-chi/chi/v5"

	"miniblog/internal/api/handlers/post"
	"miniblog/internal/api/middleware"
	"miniblog/internal/core/posts"
)

// RegisterPostRoutes registers post endpoints on the router.
// Reads are public; writes require an authenticated caller.
func RegisterPostRoutes(r chi.Router, service posts.Service, auth middleware.Authenticator) {
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service)
	likeHandler := post.NewLikeHandler(service)
	commentHandler := post.NewCommentHandler(service)

	r.Get("/posts", listHandler.HandleList)
	r.Get("/posts/{id}", getHandler.HandleGet)

	r.With(auth.RequireAuth).Post("/posts", createHandler.HandleCreate)
	r.With(auth.RequireAuth).Put("/posts/{id}/like", likeHandler.HandleToggleLike)
	r.With(auth.RequireAuth).Post("/posts/{id}/comment", commentHandler.HandleAddComment)
}
