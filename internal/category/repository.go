package category

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/category/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, payload *dto.CategoryPayload) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}
