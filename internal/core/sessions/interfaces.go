package sessions

import "context"

// Repository defines the interface for session persistence
type Repository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes all sessions past their expiry and returns
	// the number of rows removed.
	DeleteExpired(ctx context.Context) (int64, error)
}

// Service defines the interface for session lifecycle management
type Service interface {
	// Start creates a fresh session for the user.
	Start(ctx context.Context, userID int64) (*Session, error)

	// Validate loads a session by ID and rejects expired ones.
	// Expired sessions are deleted as a side effect.
	Validate(ctx context.Context, id string) (*Session, error)

	// End deletes a session. Ending an unknown session is not an error.
	End(ctx context.Context, id string) error
}
