package users

import "context"

// Repository defines the interface for user data persistence
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Service defines the interface for user business logic
type Service interface {
	// Register validates the request, hashes the password and stores the
	// new account. Duplicate usernames surface as ErrUsernameTaken.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate verifies a username/password pair.
	// Unknown usernames and wrong passwords both return ErrInvalidLogin
	// so the two cases are indistinguishable to a caller.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
