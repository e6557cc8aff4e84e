package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CatalogUsecase is the read-only product catalog.
type CatalogUsecase interface {
	ListByType(ctx context.Context, productType string) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
}
