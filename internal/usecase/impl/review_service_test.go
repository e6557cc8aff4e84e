package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	identities := memory.NewIdentityRepository(store)
	srv := NewReviewService(ReviewServiceParams{
		ReviewRepo: memory.NewReviewRepository(store),
		Logger:     newDiscardLogger(),
	})

	ann := &entity.Identity{Email: "ann@example.com", Name: "Ann"}
	require.NoError(t, identities.Create(ctx, ann))

	t.Run("create returns content and author name", func(t *testing.T) {
		created, err := srv.CreateReview(ctx, usecase.CreateReviewInput{AuthorID: ann.ID, UserID: ann.ID, Content: " Lovely fit "})
		require.NoError(t, err)
		assert.Equal(t, "Lovely fit", created.Content)
		assert.Equal(t, "Ann", created.UserName)
		assert.Equal(t, ann.ID, created.UserID)
	})

	t.Run("requires a session", func(t *testing.T) {
		_, err := srv.CreateReview(ctx, usecase.CreateReviewInput{UserID: ann.ID, Content: "x"})
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})

	t.Run("cannot write as another identity", func(t *testing.T) {
		_, err := srv.CreateReview(ctx, usecase.CreateReviewInput{AuthorID: uuid.New(), UserID: ann.ID, Content: "x"})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := srv.CreateReview(ctx, usecase.CreateReviewInput{AuthorID: ann.ID, UserID: ann.ID, Content: "   "})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("unknown author", func(t *testing.T) {
		ghost := uuid.New()
		_, err := srv.CreateReview(ctx, usecase.CreateReviewInput{AuthorID: ghost, UserID: ghost, Content: "boo"})
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("list joins names", func(t *testing.T) {
		reviews, err := srv.ListReviews(ctx)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, "Ann", reviews[0].UserName)
		assert.Equal(t, "Lovely fit", reviews[0].Content)
	})
}
