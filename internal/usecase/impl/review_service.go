package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview stores a review written by the session's own identity and
// returns it with the author's name as stored now.
func (srv *reviewService) CreateReview(ctx context.Context, input usecase.CreateReviewInput) (*entity.ReviewWithAuthor, error) {
	if input.AuthorID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "review requires a session")
	}
	if input.AuthorID != input.UserID {
		srv.log(ctx).Warn("Review author mismatch", slog.Any("sessionUserID", input.AuthorID), slog.Any("userID", input.UserID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "cannot review as another identity")
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("review content is required")
	}

	review := &entity.Review{UserID: input.UserID, Content: content}
	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	created, err := srv.reviewRepo.FindWithAuthor(ctx, review.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load created review")
	}

	srv.log(ctx).Debug("Review created", slog.Any("reviewID", review.ID), slog.Any("userID", review.UserID))

	return created, nil
}

// ListReviews returns every review with its author's current name.
func (srv *reviewService) ListReviews(ctx context.Context) ([]*entity.ReviewWithAuthor, error) {
	reviews, err := srv.reviewRepo.ListWithAuthors(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}
