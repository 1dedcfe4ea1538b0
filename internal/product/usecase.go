package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type UseCase interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)

	// Admin operations; each one refreshes the catalog cache on success.
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
