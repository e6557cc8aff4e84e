package service

import (
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionInvalid is returned by Resolve for any token that is malformed,
// tampered with, signed with another key or expired.
var ErrSessionInvalid = errors.New("session token invalid")

// SessionAuthority issues and resolves signed, stateless session tokens.
// Resolving a token never touches a store: the signature is the proof.
type SessionAuthority interface {
	// Issue mints a token bound to an identity id.
	Issue(identityID uuid.UUID) (token string, session *entity.Session, err error)

	// Resolve verifies a token and returns the session it carries.
	Resolve(token string) (*entity.Session, error)
}
