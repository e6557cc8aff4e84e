package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const reviewWithAuthorColumns = "reviews.id, reviews.user_id, reviews.content, reviews.created_at, identities.name AS user_name"

// reviewRepository implements repository.ReviewRepository using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a review. The foreign key on user_id rejects unknown authors.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate review id")
		}
		review.ID = id
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	reviewM := fromReviewDomain(review)
	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("review author not found")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	return nil
}

// FindWithAuthor returns one review joined with its author's current name.
func (repo *reviewRepository) FindWithAuthor(ctx context.Context, id uuid.UUID) (*entity.ReviewWithAuthor, error) {
	var row model.ReviewWithAuthorRow
	err := repo.withAuthors(ctx).
		Where("reviews.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find review")
	}

	return toReviewWithAuthorDomain(&row), nil
}

// ListWithAuthors returns every review, oldest first.
func (repo *reviewRepository) ListWithAuthors(ctx context.Context) ([]*entity.ReviewWithAuthor, error) {
	var rows []model.ReviewWithAuthorRow
	err := repo.withAuthors(ctx).
		Order("reviews.created_at, reviews.id").
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list reviews")
	}

	reviews := make([]*entity.ReviewWithAuthor, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, toReviewWithAuthorDomain(&rows[i]))
	}

	return reviews, nil
}

// withAuthors joins identities so the name is whatever it is now, never a copy.
func (repo *reviewRepository) withAuthors(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select(reviewWithAuthorColumns).
		Joins("JOIN identities ON identities.id = reviews.user_id")
}

// --- Mapper Functions ---

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
	}
}

func toReviewWithAuthorDomain(data *model.ReviewWithAuthorRow) *entity.ReviewWithAuthor {
	if data == nil {
		return nil
	}

	return &entity.ReviewWithAuthor{
		Review: entity.Review{
			ID:        data.ID,
			UserID:    data.UserID,
			Content:   data.Content,
			CreatedAt: data.CreatedAt,
		},
		UserName: data.UserName,
	}
}
