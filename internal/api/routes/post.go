package routes

import (
	"github.com/go-chi/chi/v5"

	"Pressfeed/internal/api/handlers/post"
	"Pressfeed/internal/core/feeds"
	"Pressfeed/internal/core/posts"
)

// RegisterPostRoutes registers the read-only JSON feed endpoints
func RegisterPostRoutes(r chi.Router, feedService feeds.Service, postService posts.Service) {
	listHandler := post.NewListHandler(feedService)
	detailHandler := post.NewDetailHandler(postService)

	// GET /api/posts?page=N
	r.Get("/api/posts", listHandler.HandleListAll)

	// GET /api/posts/{postID}
	r.Get("/api/posts/{postID}", detailHandler.HandleGet)

	// GET /api/groups/{slug}/posts?page=N
	r.Get("/api/groups/{slug}/posts", listHandler.HandleListByGroup)

	// GET /api/profiles/{username}/posts?page=N
	r.Get("/api/profiles/{username}/posts", listHandler.HandleListByAuthor)
}
