// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// Credential is the secret half of an account: the login email and its password hash.
// It is deliberately separate from Identity and is only read while authenticating.
type Credential struct {
	Email        string    // Unique login identifier, the only link to the paired Identity.
	PasswordHash string    // Opaque one-way digest produced by the PasswordHasher.
	CreatedAt    time.Time // Timestamp of when the credential was committed.
}

// NormalizeEmail performs case-insensitive canonicalization.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
