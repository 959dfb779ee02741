package post

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Pressfeed/internal/core/feeds"
	"Pressfeed/internal/core/groups"
	"Pressfeed/internal/core/posts"
	"Pressfeed/internal/core/users"
)

// ListHandler serves the read-only JSON feeds
type ListHandler struct {
	feedService feeds.Service
}

// NewListHandler creates a new list handler
func NewListHandler(feedService feeds.Service) *ListHandler {
	return &ListHandler{feedService: feedService}
}

// feedResponse is the JSON body shared by the three feed endpoints.
// Group and Author are only set for the scoped feeds.
type feedResponse struct {
	Group       *groups.Group  `json:"group,omitempty"`
	Author      *authorView    `json:"author,omitempty"`
	Posts       []*posts.Post  `json:"posts"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"totalPages"`
	HasNext     bool           `json:"hasNext"`
	HasPrevious bool           `json:"hasPrevious"`
}

// authorView exposes only the public fields of a user
type authorView struct {
	Username string `json:"username"`
}

// HandleListAll handles GET /api/posts
func (h *ListHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	page := feeds.ParsePage(r.URL.Query().Get("page"))

	feed, err := h.feedService.Home(r.Context(), page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to load feed")
		return
	}

	writeJSON(w, http.StatusOK, feedFromPage(feed.Page, nil, nil))
}

// HandleListByGroup handles GET /api/groups/{slug}/posts
func (h *ListHandler) HandleListByGroup(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page := feeds.ParsePage(r.URL.Query().Get("page"))

	feed, err := h.feedService.Group(r.Context(), slug, page)
	if errors.Is(err, groups.ErrGroupNotFound) {
		writeError(w, http.StatusNotFound, "NotFound", "group not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to load feed")
		return
	}

	writeJSON(w, http.StatusOK, feedFromPage(feed.Page, feed.Group, nil))
}

// HandleListByAuthor handles GET /api/profiles/{username}/posts
func (h *ListHandler) HandleListByAuthor(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	page := feeds.ParsePage(r.URL.Query().Get("page"))

	feed, err := h.feedService.Author(r.Context(), username, page)
	if errors.Is(err, users.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "NotFound", "user not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to load feed")
		return
	}

	writeJSON(w, http.StatusOK, feedFromPage(feed.Page, nil, feed.Author))
}

func feedFromPage(page feeds.Page[*posts.Post], group *groups.Group, author *users.User) feedResponse {
	resp := feedResponse{
		Group:       group,
		Posts:       page.Items,
		Page:        page.Number,
		TotalPages:  page.TotalPages,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	}
	if resp.Posts == nil {
		resp.Posts = []*posts.Post{}
	}
	if author != nil {
		resp.Author = &authorView{Username: author.Username}
	}
	return resp
}
