package sessions

import (
	"time"
)

// Session is a server-side login session. The browser only carries the
// opaque ID in a signed cookie; everything else lives in the database.
type Session struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
