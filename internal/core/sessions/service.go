package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lifetime is how long a login session stays valid.
const Lifetime = 30 * 24 * time.Hour

type sessionService struct {
	repo Repository
}

// NewService creates a new session service
func NewService(repo Repository) Service {
	return &sessionService{repo: repo}
}

func (s *sessionService) Start(ctx context.Context, userID int64) (*Session, error) {
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(Lifetime),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Validate(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Expired() {
		// Best effort cleanup; the row is useless either way
		_ = s.repo.Delete(ctx, id)
		return nil, ErrSessionExpired
	}

	return session, nil
}

func (s *sessionService) End(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}
