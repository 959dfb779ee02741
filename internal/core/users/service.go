package users

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Username validation regex: letters, digits, and ._- separators,
// must start and end with an alphanumeric character.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._-]*[a-zA-Z0-9])?$`)

const (
	maxUsernameLen = 150
	minPasswordLen = 6
)

type userService struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) Service {
	return &userService{repo: repo}
}

// Register creates a new account with a bcrypt-hashed password
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	username := strings.TrimSpace(strings.ToLower(req.Username))

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLen {
		return nil, &WeakPasswordError{Reason: "must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		PasswordHash: string(hash),
	}

	// Repository maps the unique constraint violation to ErrUsernameTaken
	return s.repo.Create(ctx, user)
}

// Authenticate verifies credentials against the stored bcrypt hash
func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || password == "" {
		return nil, ErrInvalidLogin
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidLogin
	}

	return user, nil
}

// GetByID retrieves a user by primary key
func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by their unique username
func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, ErrUserNotFound
	}
	return s.repo.GetByUsername(ctx, username)
}

func validateUsername(username string) error {
	if username == "" {
		return &InvalidUsernameError{Username: username, Reason: "username is required"}
	}
	if len(username) > maxUsernameLen {
		return &InvalidUsernameError{Username: username, Reason: "must be at most 150 characters"}
	}
	if !usernameRegex.MatchString(username) {
		return &InvalidUsernameError{
			Username: username,
			Reason:   "must contain only letters, digits, dots, hyphens and underscores, starting and ending with a letter or digit",
		}
	}
	return nil
}
