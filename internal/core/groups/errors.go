package groups

import (
	"errors"
	"fmt"
)

// Sentinel errors for common group operations
var (
	// ErrGroupNotFound is returned when no group matches the requested slug
	ErrGroupNotFound = errors.New("group not found")

	// ErrSlugTaken is returned when creating a group with an existing slug
	ErrSlugTaken = errors.New("slug already taken")
)

// InvalidSlugError is returned when a slug does not meet format requirements
type InvalidSlugError struct {
	Slug   string
	Reason string
}

func (e *InvalidSlugError) Error() string {
	return fmt.Sprintf("invalid slug %q: %s", e.Slug, e.Reason)
}
