// Package service declares the domain services implemented in infra.
package service

// PasswordHasher turns plaintext passwords into salted, self-describing hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash never matches.
	Check(password, hash string) bool
}
