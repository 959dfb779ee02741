package posts

import (
	"context"

	"Pressfeed/internal/core/users"
)

// Repository defines the data access interface for posts.
// All list methods return posts ordered by published_at descending,
// ties broken by id descending.
type Repository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Update persists new text and group assignment for an existing post.
	// Author and published_at are never touched.
	Update(ctx context.Context, post *Post) (*Post, error)

	ListAll(ctx context.Context) ([]*Post, error)
	ListByGroupID(ctx context.Context, groupID int64) ([]*Post, error)
	ListByAuthorID(ctx context.Context, authorID int64) ([]*Post, error)
}

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates the request, resolves the optional group slug
	// and stores the post with published_at set to now.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetPost retrieves a post by id, returning ErrPostNotFound if absent
	GetPost(ctx context.Context, id int64) (*Post, error)

	// UpdatePost edits text/group in place. Only the author may edit;
	// anyone else gets ErrNotPostAuthor and the post is left unchanged.
	UpdatePost(ctx context.Context, id int64, req UpdatePostRequest, actor *users.User) (*Post, error)
}
