package groups

import (
	"time"
)

// Group represents a named topic that posts may be assigned to.
// The slug is the public lookup key and never changes once created.
type Group struct {
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ID          int64     `json:"id" db:"id"`
}

// CreateGroupRequest represents the input for creating a new group.
// Groups are created by operators, not through the web UI.
type CreateGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
