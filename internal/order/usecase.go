package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	// History lists the signed-in client's orders, newest first.
	History(ctx context.Context) ([]model.OrderRecord, error)

	ListAll(ctx context.Context) ([]model.OrderRecord, error)
	ChangeStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
