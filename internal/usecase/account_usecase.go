// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to open an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput carries the identity committed by a registration.
type RegisterOutput struct {
	Identity *entity.Identity
}

// LoginOutput carries the authenticated identity and its freshly minted session.
type LoginOutput struct {
	Identity *entity.Identity
	Token    string
	Session  *entity.Session
}

// AccountUsecase covers registration and authentication.
type AccountUsecase interface {
	// Register creates a credential and its identity atomically.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login verifies a credential and issues a session for the matching identity.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
}
