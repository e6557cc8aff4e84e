package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review id does not exist.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository persists reviews keyed by identity id.
type ReviewRepository interface {
	// Create persists a new review. A user id with no identity fails with
	// domainerrors.ErrNotFound.
	Create(ctx context.Context, review *entity.Review) error

	// FindWithAuthor returns one review joined with its author's current name.
	FindWithAuthor(ctx context.Context, id uuid.UUID) (*entity.ReviewWithAuthor, error)

	// ListWithAuthors returns every review, oldest first, joined with author names.
	ListWithAuthors(ctx context.Context) ([]*entity.ReviewWithAuthor, error)
}
