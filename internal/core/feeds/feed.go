package feeds

import (
	"Pressfeed/internal/core/groups"
	"Pressfeed/internal/core/posts"
	"Pressfeed/internal/core/users"
)

// Feed is one page of the global post feed.
type Feed struct {
	Page Page[*posts.Post] `json:"page"`
}

// GroupFeed is one page of a group's posts plus the resolved group.
type GroupFeed struct {
	Group *groups.Group     `json:"group"`
	Page  Page[*posts.Post] `json:"page"`
}

// AuthorFeed is one page of an author's posts plus the resolved author.
type AuthorFeed struct {
	Author *users.User       `json:"author"`
	Page   Page[*posts.Post] `json:"page"`
}
