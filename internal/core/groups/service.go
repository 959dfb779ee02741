package groups

import (
	"context"
	"regexp"
	"strings"
)

// Slug validation regex: lowercase alphanumeric segments joined by single
// hyphens, the usual URL-safe form.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const maxSlugLen = 64

type groupService struct {
	repo Repository
}

// NewService creates a new group service
func NewService(repo Repository) Service {
	return &groupService{repo: repo}
}

// CreateGroup validates and stores a new group
func (s *groupService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	slug := strings.TrimSpace(strings.ToLower(req.Slug))
	title := strings.TrimSpace(req.Title)

	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if title == "" {
		title = slug
	}

	group := &Group{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
	}

	// Repository maps the unique constraint violation to ErrSlugTaken
	return s.repo.Create(ctx, group)
}

// GetBySlug resolves a group by its public slug
func (s *groupService) GetBySlug(ctx context.Context, slug string) (*Group, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, ErrGroupNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

// List returns all groups ordered by title
func (s *groupService) List(ctx context.Context) ([]*Group, error) {
	return s.repo.List(ctx)
}

func validateSlug(slug string) error {
	if slug == "" {
		return &InvalidSlugError{Slug: slug, Reason: "slug is required"}
	}
	if len(slug) > maxSlugLen {
		return &InvalidSlugError{Slug: slug, Reason: "must be at most 64 characters"}
	}
	if !slugRegex.MatchString(slug) {
		return &InvalidSlugError{
			Slug:   slug,
			Reason: "must contain only lowercase letters, digits and single hyphens",
		}
	}
	return nil
}
