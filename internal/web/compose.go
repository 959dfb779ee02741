package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"Pressfeed/internal/api/middleware"
	"Pressfeed/internal/core/posts"
)

// CreatePostHandler handles GET and POST /create/. Requires a logged-in
// user (enforced by RequireUser on the route).
func (h *Handlers) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.CurrentUser(r)

	if r.Method == http.MethodGet {
		h.renderPostForm(w, r, PostFormData{Title: "New post", Viewer: viewer})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	text := r.PostFormValue("text")
	groupSlug := r.PostFormValue("group")

	post, err := h.postService.CreatePost(r.Context(), posts.CreatePostRequest{
		Text:      text,
		GroupSlug: groupSlug,
		AuthorID:  viewer.ID,
	})
	if err != nil {
		var valErr *posts.ValidationError
		if errors.As(err, &valErr) {
			h.renderPostForm(w, r, PostFormData{
				Title:     "New post",
				Viewer:    viewer,
				Errors:    map[string]string{valErr.Field: valErr.Message},
				Text:      text,
				GroupSlug: groupSlug,
			})
			return
		}
		h.serverError(w, "create post", err)
		return
	}

	slog.Info("post created", "post_id", post.ID, "author", viewer.Username)
	http.Redirect(w, r, "/profile/"+viewer.Username+"/", http.StatusFound)
}

// EditPostHandler handles GET and POST /posts/{postID}/edit/. A non-author
// is silently redirected to the post's detail page before any form is
// shown or any change applied.
func (h *Handlers) EditPostHandler(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.CurrentUser(r)

	post, ok := h.resolvePost(w, r)
	if !ok {
		return
	}

	detailURL := "/posts/" + strconv.FormatInt(post.ID, 10) + "/"
	if !posts.CanEdit(viewer, post) {
		http.Redirect(w, r, detailURL, http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		data := PostFormData{
			Title:  "Edit post",
			Viewer: viewer,
			Text:   post.Text,
			PostID: post.ID,
			IsEdit: true,
		}
		if post.GroupSlug != nil {
			data.GroupSlug = *post.GroupSlug
		}
		h.renderPostForm(w, r, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	text := r.PostFormValue("text")
	groupSlug := r.PostFormValue("group")

	_, err := h.postService.UpdatePost(r.Context(), post.ID, posts.UpdatePostRequest{
		Text:      text,
		GroupSlug: groupSlug,
	}, viewer)
	if err != nil {
		var valErr *posts.ValidationError
		if errors.As(err, &valErr) {
			h.renderPostForm(w, r, PostFormData{
				Title:     "Edit post",
				Viewer:    viewer,
				Errors:    map[string]string{valErr.Field: valErr.Message},
				Text:      text,
				GroupSlug: groupSlug,
				PostID:    post.ID,
				IsEdit:    true,
			})
			return
		}
		if errors.Is(err, posts.ErrNotPostAuthor) {
			http.Redirect(w, r, detailURL, http.StatusFound)
			return
		}
		h.serverError(w, "edit post", err)
		return
	}

	http.Redirect(w, r, detailURL, http.StatusFound)
}

// renderPostForm fills in the group choices before rendering the form
func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, data PostFormData) {
	groupList, err := h.groupSvc.List(r.Context())
	if err != nil {
		h.serverError(w, "group choices", err)
		return
	}
	data.Groups = groupList
	h.render(w, "post_form.html", data)
}
