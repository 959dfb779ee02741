package routes

import (
	"github.com/go-chi/chi/v5"

	"Pressfeed/internal/api/handlers/token"
	"Pressfeed/internal/api/middleware"
	"Pressfeed/internal/core/users"
)

// RegisterTokenRoutes registers token minting and the authenticated
// identity check for API clients.
func RegisterTokenRoutes(
	r chi.Router,
	tokens *middleware.APITokens,
	auth *middleware.SessionAuth,
	userService users.Service,
) {
	handler := token.NewHandler(tokens, userService)

	// POST /api/token exchanges username+password for a bearer token
	r.Post("/api/token", handler.HandleMint)

	// GET /api/me accepts either a session cookie or a bearer token
	r.With(auth.LoadUser, tokens.RequireUser).Get("/api/me", handler.HandleWhoAmI)
}
