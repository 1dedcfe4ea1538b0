package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type HTTPRepository struct {
	API *httpapi.Client
}

var _ cart.Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(api *httpapi.Client) *HTTPRepository {
	return &HTTPRepository{API: api}
}

func (r *HTTPRepository) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	var c model.Cart
	if err := r.API.Get(ctx, fmt.Sprintf("/cart/%d", userID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *HTTPRepository) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	body := &dto.ItemPayload{ProductID: productID, Quantity: quantity}
	return r.API.Post(ctx, fmt.Sprintf("/cart/%d/items", userID), body, nil)
}

func (r *HTTPRepository) UpdateItem(ctx context.Context, userID, productID int64, quantity int) error {
	body := &dto.ItemPayload{ProductID: productID, Quantity: quantity}
	return r.API.Put(ctx, fmt.Sprintf("/cart/%d/items", userID), body, nil)
}

func (r *HTTPRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	return r.API.Delete(ctx, fmt.Sprintf("/cart/%d/items/%d", userID, productID))
}

func (r *HTTPRepository) Clear(ctx context.Context, userID int64) error {
	return r.API.Delete(ctx, fmt.Sprintf("/cart/%d", userID))
}
