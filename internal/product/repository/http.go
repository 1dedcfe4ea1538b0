package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type HTTPRepository struct {
	API *httpapi.Client
}

var _ product.Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(api *httpapi.Client) *HTTPRepository {
	return &HTTPRepository{API: api}
}

func (r *HTTPRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	q := url.Values{}
	if f.IncludeInactive {
		q.Set("include_inactive", "true")
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var products []model.Product
	if err := r.API.Get(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *HTTPRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.API.Get(ctx, fmt.Sprintf("/products/id/%d", id), &p)
	if err != nil {
		var re *httpapi.RequestError
		if errors.As(err, &re) && re.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *HTTPRepository) Create(ctx context.Context, payload *dto.ProductPayload) (*model.Product, error) {
	var p model.Product
	if err := r.API.Post(ctx, "/products", payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *HTTPRepository) Update(ctx context.Context, id int64, payload *dto.ProductPayload) (*model.Product, error) {
	var p model.Product
	if err := r.API.Put(ctx, fmt.Sprintf("/products/id/%d", id), payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *HTTPRepository) Deactivate(ctx context.Context, id int64) error {
	return r.API.Delete(ctx, fmt.Sprintf("/products/id/%d", id))
}
