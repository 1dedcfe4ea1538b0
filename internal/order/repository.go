package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	CreateBill(ctx context.Context, bill *model.Bill) (*model.Bill, error)
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)
	CreateOrderLine(ctx context.Context, line *model.OrderLine) (*model.OrderLine, error)

	ListByClient(ctx context.Context, clientID int64) ([]model.OrderRecord, error)
	ListAll(ctx context.Context) ([]model.OrderRecord, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
