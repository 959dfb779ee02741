package groups

import "context"

// Repository defines the interface for group data persistence
type Repository interface {
	Create(ctx context.Context, group *Group) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]*Group, error)
}

// Service defines the interface for group business logic
type Service interface {
	// CreateGroup validates the slug and stores the group.
	// Duplicate slugs surface as ErrSlugTaken.
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error)

	// GetBySlug resolves a group by its public slug,
	// returning ErrGroupNotFound when no group has it.
	GetBySlug(ctx context.Context, slug string) (*Group, error)

	// List returns all groups ordered by title, used to build the
	// group choices on the post form.
	List(ctx context.Context) ([]*Group, error)
}
