package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the public profile of an account, used for everything except authentication.
type Identity struct {
	ID     uuid.UUID // Immutable surrogate key.
	Email  string    // Matches exactly one Credential.
	Name   string    // Display name.
	Joined time.Time // Creation timestamp.
}
