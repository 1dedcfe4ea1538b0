package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/category/dto"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type HTTPRepository struct {
	API *httpapi.Client
}

var _ category.Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(api *httpapi.Client) *HTTPRepository {
	return &HTTPRepository{API: api}
}

func (r *HTTPRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.API.Get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *HTTPRepository) Create(ctx context.Context, payload *dto.CategoryPayload) (*model.Category, error) {
	var c model.Category
	if err := r.API.Post(ctx, "/categories", payload, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *HTTPRepository) Delete(ctx context.Context, id int64) error {
	return r.API.Delete(ctx, fmt.Sprintf("/categories/id/%d", id))
}
