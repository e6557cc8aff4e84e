package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// GetProfileInput names the profile to read and who is asking.
type GetProfileInput struct {
	RequesterID uuid.UUID
	ID          uuid.UUID
}

// ProfileUsecase reads identities.
type ProfileUsecase interface {
	// GetProfile returns the identity if the requester owns it.
	GetProfile(ctx context.Context, input GetProfileInput) (*entity.Identity, error)
}
