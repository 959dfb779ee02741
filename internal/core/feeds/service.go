package feeds

import (
	"context"

	"Pressfeed/internal/core/groups"
	"Pressfeed/internal/core/posts"
	"Pressfeed/internal/core/users"
)

// Service produces the three paginated read views: the global feed, a
// group's feed and an author's profile feed. Posts are always ordered most
// recent first; the repositories guarantee the ordering, this service only
// resolves scopes and slices pages.
type Service interface {
	// Home returns one page of the global feed.
	Home(ctx context.Context, page int) (*Feed, error)

	// Group returns one page of the posts in the group with the given
	// slug, failing with groups.ErrGroupNotFound for unknown slugs.
	Group(ctx context.Context, slug string, page int) (*GroupFeed, error)

	// Author returns one page of the posts by the given username, failing
	// with users.ErrUserNotFound for unknown usernames.
	Author(ctx context.Context, username string, page int) (*AuthorFeed, error)
}

type feedService struct {
	postRepo  posts.Repository
	groupRepo groups.Repository
	userRepo  users.Repository
}

// NewService creates a new feed service
func NewService(postRepo posts.Repository, groupRepo groups.Repository, userRepo users.Repository) Service {
	return &feedService{postRepo: postRepo, groupRepo: groupRepo, userRepo: userRepo}
}

func (s *feedService) Home(ctx context.Context, page int) (*Feed, error) {
	list, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Feed{Page: Paginate(list, page)}, nil
}

func (s *feedService) Group(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	list, err := s.postRepo.ListByGroupID(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: Paginate(list, page)}, nil
}

func (s *feedService) Author(ctx context.Context, username string, page int) (*AuthorFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	list, err := s.postRepo.ListByAuthorID(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorFeed{Author: author, Page: Paginate(list, page)}, nil
}
