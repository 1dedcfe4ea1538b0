package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type Repository interface {
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, payload *dto.ProductPayload) (*model.Product, error)
	Update(ctx context.Context, id int64, payload *dto.ProductPayload) (*model.Product, error)
	// Deactivate is the API's DELETE: products are soft-deleted.
	Deactivate(ctx context.Context, id int64) error
}
