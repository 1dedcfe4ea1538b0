package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

// Repository is the server-side cart keyed by user id. Stock and totals are
// computed by the server; every write is followed by a fresh Get.
type Repository interface {
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	AddItem(ctx context.Context, userID, productID int64, quantity int) error
	UpdateItem(ctx context.Context, userID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}
