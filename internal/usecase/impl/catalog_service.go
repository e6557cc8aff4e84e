package impl

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(productRepo repository.ProductRepository) usecase.CatalogUsecase {
	return &catalogService{productRepo: productRepo}
}

func (srv *catalogService) ListByType(ctx context.Context, productType string) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListByType(ctx, productType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *catalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}
