package post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Pressfeed/internal/core/posts"
)

// DetailHandler serves a single post as JSON
type DetailHandler struct {
	postService posts.Service
}

// NewDetailHandler creates a new detail handler
func NewDetailHandler(postService posts.Service) *DetailHandler {
	return &DetailHandler{postService: postService}
}

// HandleGet handles GET /api/posts/{postID}
func (h *DetailHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "NotFound", "post not found")
		return
	}

	post, err := h.postService.GetPost(r.Context(), id)
	if errors.Is(err, posts.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "NotFound", "post not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to load post")
		return
	}

	writeJSON(w, http.StatusOK, post)
}
