package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/account/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

// Notifier is told about server-side cart adjustments, once per fetch.
type Notifier interface {
	Adjusted(cart *model.Cart)
}

type NotifierFunc func(cart *model.Cart)

func (f NotifierFunc) Adjusted(cart *model.Cart) { f(cart) }

// ProfileSaver persists contact changes made on the checkout form.
type ProfileSaver interface {
	UpdateProfile(ctx context.Context, input *dto.ProfileInput) (*model.Identity, error)
}

type Receipt struct {
	BillID       int64             `json:"bill_id"`
	BillNumber   string            `json:"bill_number"`
	OrderID      int64             `json:"order_id"`
	Total        decimal.Decimal   `json:"total"`
	PaymentType  model.PaymentType `json:"payment_type"`
	Lines        int               `json:"lines"`
	ProfileSaved bool              `json:"profile_saved"`
	ProfileError string            `json:"profile_error,omitempty"`
	// CatalogStale is set when the post-purchase catalog refresh failed.
	CatalogStale bool `json:"catalog_stale"`
}

// UseCase coordinates one session's cart and purchase. All methods fail with
// ErrNotAuthenticated for guests and ErrBusy while another operation runs.
type UseCase interface {
	State() State
	// Cart is the last fetched cart. It never triggers a fetch or a notification.
	Cart() *model.Cart

	Load(ctx context.Context) (*model.Cart, error)
	Add(ctx context.Context, productID int64, quantity int) (*model.Cart, error)
	ChangeQuantity(ctx context.Context, productID int64, quantity int) (*model.Cart, error)
	Remove(ctx context.Context, productID int64) (*model.Cart, error)

	Purchase(ctx context.Context, form Form) (*Receipt, error)
	// Checkout validates the form, optionally saves changed contact details, then
	// purchases. A failed save is logged and does not stop the purchase.
	Checkout(ctx context.Context, form Form, decide DecideFunc) (*Receipt, error)
}
