package routes

import (
	"github.com/go-chi/chi/v5"

	"miniblog/internal/api/handlers/user"
	"miniblog/internal/api/middleware"
	"miniblog/internal/core/users"
)

// RegisterUserRoutes registers user relationship endpoints on the router
func RegisterUserRoutes(r chi.Router, service users.Service, auth middleware.Authenticator) {
	followHandler := user.NewFollowHandler(service)

	r.With(auth.RequireAuth).Put("/users/{id}/follow", followHandler.HandleToggleFollow)
}
