package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	"Pressfeed/internal/core/groups"
	"Pressfeed/internal/core/users"
)

type postService struct {
	repo      Repository
	groupRepo groups.Repository
}

// NewService creates a new post service
func NewService(repo Repository, groupRepo groups.Repository) Service {
	return &postService{repo: repo, groupRepo: groupRepo}
}

// CanEdit reports whether actor may modify post. Only the post's author
// may edit it; anonymous actors may not edit anything.
func CanEdit(actor *users.User, post *Post) bool {
	if actor == nil || post == nil {
		return false
	}
	return actor.Username == post.AuthorUsername
}

// CreatePost validates and stores a new post
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, NewValidationError("text", "text is required")
	}
	if req.AuthorID == 0 {
		return nil, NewValidationError("author", "author is required")
	}

	post := &Post{
		Text:        text,
		AuthorID:    req.AuthorID,
		PublishedAt: time.Now().UTC(),
	}

	if err := s.resolveGroup(ctx, req.GroupSlug, post); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, post)
}

// GetPost retrieves a post by id
func (s *postService) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdatePost edits an existing post after the author check
func (s *postService) UpdatePost(ctx context.Context, id int64, req UpdatePostRequest, actor *users.User) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanEdit(actor, post) {
		return nil, ErrNotPostAuthor
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, NewValidationError("text", "text is required")
	}

	post.Text = text
	post.GroupID = nil
	post.GroupSlug = nil
	post.GroupTitle = nil
	if err := s.resolveGroup(ctx, req.GroupSlug, post); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, post)
}

// resolveGroup fills the post's group fields from an optional slug.
// An unknown slug is a form-level validation error, not a 404.
func (s *postService) resolveGroup(ctx context.Context, slug string, post *Post) error {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil
	}

	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if errors.Is(err, groups.ErrGroupNotFound) {
		return NewValidationError("group", "group does not exist")
	}
	if err != nil {
		return err
	}

	post.GroupID = &group.ID
	post.GroupSlug = &group.Slug
	post.GroupTitle = &group.Title
	return nil
}
