package web

import (
	"Pressfeed/internal/core/feeds"
	"Pressfeed/internal/core/groups"
	"Pressfeed/internal/core/posts"
	"Pressfeed/internal/core/users"
)

// FeedPageData renders the home page.
type FeedPageData struct {
	Title  string
	Viewer *users.User
	Page   feeds.Page[*posts.Post]
}

// GroupPageData renders a group's feed.
type GroupPageData struct {
	Title  string
	Viewer *users.User
	Group  *groups.Group
	Page   feeds.Page[*posts.Post]
}

// ProfilePageData renders an author's feed.
type ProfilePageData struct {
	Title  string
	Viewer *users.User
	Author *users.User
	Page   feeds.Page[*posts.Post]
}

// PostPageData renders the post detail page.
type PostPageData struct {
	Title  string
	Viewer *users.User
	Post   *posts.Post
}

// PostFormData renders the create/edit form. Errors is keyed by field
// name; Text and GroupSlug echo the submitted (or existing) values.
type PostFormData struct {
	Title     string
	Viewer    *users.User
	Groups    []*groups.Group
	Errors    map[string]string
	Text      string
	GroupSlug string
	PostID    int64
	IsEdit    bool
}

// AuthFormData renders the login and signup forms.
type AuthFormData struct {
	Title    string
	Viewer   *users.User
	Errors   map[string]string
	Username string
	Next     string
}
