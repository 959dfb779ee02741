package posts

import (
	"time"
)

// Post represents a single authored text entry.
// PublishedAt is assigned once at creation and never changes; edits only
// touch the text and the group assignment.
//
// AuthorUsername, GroupSlug and GroupTitle are denormalized from the joined
// rows so list views render without extra lookups.
type Post struct {
	PublishedAt    time.Time `json:"publishedAt" db:"published_at"`
	Text           string    `json:"text" db:"text"`
	AuthorUsername string    `json:"authorUsername" db:"author_username"`
	GroupSlug      *string   `json:"groupSlug,omitempty" db:"group_slug"`
	GroupTitle     *string   `json:"groupTitle,omitempty" db:"group_title"`
	GroupID        *int64    `json:"-" db:"group_id"`
	AuthorID       int64     `json:"-" db:"author_id"`
	ID             int64     `json:"id" db:"id"`
}

// CreatePostRequest represents input for publishing a new post.
// GroupSlug is optional; when empty the post belongs to no group.
type CreatePostRequest struct {
	Text      string `json:"text"`
	GroupSlug string `json:"groupSlug,omitempty"`
	AuthorID  int64  `json:"-"`
}

// UpdatePostRequest represents input for editing an existing post.
// Only the text and group assignment can change.
type UpdatePostRequest struct {
	Text      string `json:"text"`
	GroupSlug string `json:"groupSlug,omitempty"`
}
