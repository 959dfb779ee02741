package routes

import (
	"github.com/go-chi/chi/v5"

	"Pressfeed/internal/api/middleware"
	"Pressfeed/internal/web"
)

// RegisterWebRoutes registers the HTML surface: feeds, post detail, the
// compose forms and the account pages. Every route runs behind LoadUser so
// templates can show the signed-in user; only compose routes require one.
func RegisterWebRoutes(r chi.Router, h *web.Handlers, auth *middleware.SessionAuth) {
	r.Group(func(r chi.Router) {
		r.Use(auth.LoadUser)

		// Public read views
		r.Get("/", h.HomeHandler)
		r.Get("/group/{slug}/", h.GroupHandler)
		r.Get("/profile/{username}/", h.ProfileHandler)
		r.Get("/posts/{postID}/", h.PostDetailHandler)

		// Account pages
		r.Get("/auth/signup/", h.SignupHandler)
		r.Post("/auth/signup/", h.SignupHandler)
		r.Get("/auth/login/", h.LoginHandler)
		r.Post("/auth/login/", h.LoginHandler)
		r.Post("/auth/logout/", h.LogoutHandler)

		// Compose routes redirect anonymous visitors to the login page
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)

			r.Get("/create/", h.CreatePostHandler)
			r.Post("/create/", h.CreatePostHandler)
			r.Get("/posts/{postID}/edit/", h.EditPostHandler)
			r.Post("/posts/{postID}/edit/", h.EditPostHandler)
		})
	})
}
