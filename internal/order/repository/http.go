package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
)

type HTTPRepository struct {
	API *httpapi.Client
}

var _ order.Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(api *httpapi.Client) *HTTPRepository {
	return &HTTPRepository{API: api}
}

func (r *HTTPRepository) CreateBill(ctx context.Context, bill *model.Bill) (*model.Bill, error) {
	var created model.Bill
	if err := r.API.Post(ctx, "/bills", bill, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *HTTPRepository) CreateOrder(ctx context.Context, o *model.Order) (*model.Order, error) {
	var created model.Order
	if err := r.API.Post(ctx, "/orders", o, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *HTTPRepository) CreateOrderLine(ctx context.Context, line *model.OrderLine) (*model.OrderLine, error) {
	var created model.OrderLine
	if err := r.API.Post(ctx, "/order_details", line, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *HTTPRepository) ListByClient(ctx context.Context, clientID int64) ([]model.OrderRecord, error) {
	var orders []model.OrderRecord
	if err := r.API.Get(ctx, fmt.Sprintf("/orders/client/%d", clientID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *HTTPRepository) ListAll(ctx context.Context) ([]model.OrderRecord, error) {
	var orders []model.OrderRecord
	if err := r.API.Get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type statusPayload struct {
	Status model.OrderStatus `json:"status"`
}

func (r *HTTPRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return r.API.Patch(ctx, fmt.Sprintf("/orders/id/%d/status", orderID), &statusPayload{Status: status}, nil)
}
