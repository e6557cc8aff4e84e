package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the decoded content of a session token. It is never persisted.
type Session struct {
	IdentityID uuid.UUID
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// TTL returns the lifetime the session was issued with.
func (s *Session) TTL() time.Duration {
	return s.ExpiresAt.Sub(s.IssuedAt)
}
