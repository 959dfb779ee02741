package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Pressfeed/internal/api/middleware"
	"Pressfeed/internal/core/feeds"
	"Pressfeed/internal/core/groups"
	"Pressfeed/internal/core/posts"
	"Pressfeed/internal/core/sessions"
	"Pressfeed/internal/core/users"
)

// Handlers provides the server-rendered pages: feeds, post detail,
// post create/edit, and account management.
type Handlers struct {
	templates   *Templates
	auth        *middleware.SessionAuth
	feedService feeds.Service
	postService posts.Service
	groupSvc    groups.Service
	userService users.Service
	sessionSvc  sessions.Service
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(
	templates *Templates,
	auth *middleware.SessionAuth,
	feedService feeds.Service,
	postService posts.Service,
	groupSvc groups.Service,
	userService users.Service,
	sessionSvc sessions.Service,
) *Handlers {
	return &Handlers{
		templates:   templates,
		auth:        auth,
		feedService: feedService,
		postService: postService,
		groupSvc:    groupSvc,
		userService: userService,
		sessionSvc:  sessionSvc,
	}
}

// HomeHandler handles GET / and renders the global feed.
func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := feeds.ParsePage(r.URL.Query().Get("page"))
	feed, err := h.feedService.Home(r.Context(), page)
	if err != nil {
		h.serverError(w, "home feed", err)
		return
	}

	h.render(w, "home.html", FeedPageData{
		Title:  "Latest posts",
		Viewer: middleware.CurrentUser(r),
		Page:   feed.Page,
	})
}

// GroupHandler handles GET /group/{slug}/ and renders that group's feed.
func (h *Handlers) GroupHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page := feeds.ParsePage(r.URL.Query().Get("page"))

	feed, err := h.feedService.Group(r.Context(), slug, page)
	if errors.Is(err, groups.ErrGroupNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "group feed", err)
		return
	}

	h.render(w, "group.html", GroupPageData{
		Title:  feed.Group.Title,
		Viewer: middleware.CurrentUser(r),
		Group:  feed.Group,
		Page:   feed.Page,
	})
}

// ProfileHandler handles GET /profile/{username}/ and renders the author's feed.
func (h *Handlers) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	page := feeds.ParsePage(r.URL.Query().Get("page"))

	feed, err := h.feedService.Author(r.Context(), username, page)
	if errors.Is(err, users.ErrUserNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "author feed", err)
		return
	}

	h.render(w, "profile.html", ProfilePageData{
		Title:  feed.Author.Username,
		Viewer: middleware.CurrentUser(r),
		Author: feed.Author,
		Page:   feed.Page,
	})
}

// PostDetailHandler handles GET /posts/{postID}/.
func (h *Handlers) PostDetailHandler(w http.ResponseWriter, r *http.Request) {
	post, ok := h.resolvePost(w, r)
	if !ok {
		return
	}

	h.render(w, "post_detail.html", PostPageData{
		Title:  "Post by " + post.AuthorUsername,
		Viewer: middleware.CurrentUser(r),
		Post:   post,
	})
}

// resolvePost loads the post from the postID URL parameter, writing a 404
// for malformed ids and unknown posts.
func (h *Handlers) resolvePost(w http.ResponseWriter, r *http.Request) (*posts.Post, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	post, err := h.postService.GetPost(r.Context(), id)
	if errors.Is(err, posts.ErrPostNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		h.serverError(w, "post lookup", err)
		return nil, false
	}

	return post, true
}

func (h *Handlers) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.Render(w, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, what string, err error) {
	slog.Error("handler failure", "op", what, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
