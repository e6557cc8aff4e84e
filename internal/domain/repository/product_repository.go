package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrProductNotFound is returned when a product id does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the read side of the catalog.
type ProductRepository interface {
	// ListByType returns all products of one type ordered by id.
	ListByType(ctx context.Context, productType string) ([]*entity.Product, error)

	// FindByID returns a single product.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
}
