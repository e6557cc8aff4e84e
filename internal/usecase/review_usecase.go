package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines a new review. AuthorID is the identity of the
// current session and must equal UserID.
type CreateReviewInput struct {
	AuthorID uuid.UUID
	UserID   uuid.UUID
	Content  string
}

// ReviewUsecase writes reviews and lists them with their authors' names.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*entity.ReviewWithAuthor, error)
	ListReviews(ctx context.Context) ([]*entity.ReviewWithAuthor, error)
}
