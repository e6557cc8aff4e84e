// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrCredentialNotFound is returned when no credential exists for an email.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository persists (email, password hash) pairs.
// There is no update or delete: a credential lives as long as the account.
type CredentialRepository interface {
	// FindByEmail retrieves the credential for an email.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// Create inserts a credential. A second credential for the same email fails
	// with domainerrors.ErrDuplicateRegistration; the entity is updated with the
	// values actually committed.
	Create(ctx context.Context, credential *entity.Credential) error
}
