package handler

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type createReviewRequest struct {
	UserID  uuid.UUID `json:"userId" validate:"required"`
	Comment string    `json:"comment" validate:"required,max=2000"`
}

// ReviewHandler serves product reviews.
type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// CreateReview handles POST /reviews.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	authorID, _ := deliverycontext.GetSessionIdentity(c)

	review, err := h.uc.CreateReview(c.Request().Context(), usecase.CreateReviewInput{
		AuthorID: authorID,
		UserID:   req.UserID,
		Content:  req.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.CreatedReview{
		Content:  review.Content,
		UserName: review.UserName,
	})
}

// ListReviews handles GET /reviews.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.uc.ListReviews(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewReviews(reviews))
}
