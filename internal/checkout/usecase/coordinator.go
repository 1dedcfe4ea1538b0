package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/account/dto"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/session"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const billDateLayout = "2006-01-02"

type Option func(*coordinator)

// WithClock replaces time.Now for bill numbers and dates.
func WithClock(now func() time.Time) Option {
	return func(c *coordinator) { c.now = now }
}

func WithNotifier(n checkout.Notifier) Option {
	return func(c *coordinator) { c.notifier = n }
}

type coordinator struct {
	carts    cart.Repository
	orders   order.Repository
	profiles checkout.ProfileSaver
	session  session.UseCase
	catalog  catalog.Refresher
	notifier checkout.Notifier
	now      func() time.Time
	logger   logger.ZapLogger

	mu    sync.Mutex
	state checkout.State
	cart  *model.Cart
}

func NewCheckoutUseCase(
	carts cart.Repository,
	orders order.Repository,
	profiles checkout.ProfileSaver,
	sess session.UseCase,
	cat catalog.Refresher,
	log logger.ZapLogger,
	opts ...Option,
) checkout.UseCase {
	c := &coordinator{
		carts:    carts,
		orders:   orders,
		profiles: profiles,
		session:  sess,
		catalog:  cat,
		now:      time.Now,
		logger:   log,
		state:    checkout.StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *coordinator) State() checkout.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *coordinator) Cart() *model.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyCart(c.cart)
}

func (c *coordinator) Load(ctx context.Context) (*model.Cart, error) {
	id, err := c.begin(checkout.StateLoadingCart, nil)
	if err != nil {
		return nil, err
	}
	defer c.finish(checkout.StateReady)

	return c.fetch(ctx, id.ID)
}

func (c *coordinator) Add(ctx context.Context, productID int64, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, model.NewValidationError("quantity", "must be at least 1")
	}
	id, err := c.begin(checkout.StateMutating, nil)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, id.ID, func() error {
		return c.carts.AddItem(ctx, id.ID, productID, quantity)
	})
}

// ChangeQuantity only reaches the network when 1 <= quantity <= the line's stock
// ceiling as of the last fetch.
func (c *coordinator) ChangeQuantity(ctx context.Context, productID int64, quantity int) (*model.Cart, error) {
	id, err := c.begin(checkout.StateMutating, func(current *model.Cart) error {
		line, ok := current.Line(productID)
		if !ok {
			return model.NewValidationError("product", "product %d is not in the cart", productID)
		}
		if quantity < 1 {
			return model.NewValidationError("quantity", "must be at least 1")
		}
		if quantity > line.StockCeiling() {
			return model.NewValidationError("quantity", "only %d in stock", line.StockCeiling())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, id.ID, func() error {
		return c.carts.UpdateItem(ctx, id.ID, productID, quantity)
	})
}

func (c *coordinator) Remove(ctx context.Context, productID int64) (*model.Cart, error) {
	id, err := c.begin(checkout.StateMutating, nil)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, id.ID, func() error {
		return c.carts.RemoveItem(ctx, id.ID, productID)
	})
}

func (c *coordinator) Purchase(ctx context.Context, form checkout.Form) (*checkout.Receipt, error) {
	id, snapshot, err := c.reserve()
	if err != nil {
		return nil, err
	}
	return c.purchase(ctx, id.ID, snapshot, form.PaymentType())
}

// Checkout reserves the cart before anything reaches the network, so the
// profile save and the purchase run as one operation.
func (c *coordinator) Checkout(ctx context.Context, form checkout.Form, decide checkout.DecideFunc) (*checkout.Receipt, error) {
	if c.session.Current() == nil {
		return nil, checkout.ErrNotAuthenticated
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	id, snapshot, err := c.reserve()
	if err != nil {
		return nil, err
	}
	if form.Email == "" {
		form.Email = id.Email
	}

	var (
		saved   bool
		saveErr error
	)
	if form.ContactChanged(*id) && decide != nil && decide(*id, form) == checkout.SaveAndPurchase {
		_, saveErr = c.profiles.UpdateProfile(ctx, &dto.ProfileInput{
			Name:      form.Name,
			LastName:  form.LastName,
			Email:     form.Email,
			Telephone: form.Telephone,
		})
		if saveErr != nil {
			c.logger.Warn("could not save contact details, continuing with purchase", zap.Error(saveErr))
		} else {
			saved = true
		}
	}

	receipt, err := c.purchase(ctx, id.ID, snapshot, form.PaymentType())
	if err != nil {
		return nil, err
	}
	receipt.ProfileSaved = saved
	if saveErr != nil {
		receipt.ProfileError = saveErr.Error()
	}
	return receipt, nil
}

// reserve enters SUBMITTING when the held cart can be bought and returns a copy
// of it to submit.
func (c *coordinator) reserve() (*model.Identity, *model.Cart, error) {
	var snapshot *model.Cart
	id, err := c.begin(checkout.StateSubmitting, func(current *model.Cart) error {
		if current.Empty() {
			return model.NewValidationError("cart", "is empty")
		}
		if current.Total.IsNegative() {
			return model.NewValidationError("total", "must not be negative")
		}
		snapshot = copyCart(current)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return id, snapshot, nil
}

// purchase expects the coordinator to be in SUBMITTING and always leaves it.
// FAILED holds the reservation until the cart has been re-read.
func (c *coordinator) purchase(ctx context.Context, userID int64, snapshot *model.Cart, payment model.PaymentType) (*checkout.Receipt, error) {
	receipt, err := c.submit(ctx, userID, snapshot, payment)
	if err != nil {
		c.finish(checkout.StateFailed)
		c.logger.Error("purchase failed", zap.Int64("user_id", userID), zap.Error(err))

		// The server cart may have changed under us; show what it holds now.
		if _, ferr := c.fetch(ctx, userID); ferr != nil {
			c.logger.Warn("failed to reload cart after purchase failure", zap.Error(ferr))
		}
		c.finish(checkout.StateReady)
		return nil, err
	}

	c.mu.Lock()
	c.cart = &model.Cart{}
	c.mu.Unlock()
	if err := c.session.RememberCart(ctx, nil); err != nil {
		c.logger.Warn("failed to clear cart snapshot", zap.Error(err))
	}

	if err := c.catalog.Refresh(ctx); err != nil {
		receipt.CatalogStale = true
		c.logger.Warn("catalog refresh after purchase failed", zap.Error(err))
	}

	c.finish(checkout.StateSuccess)
	c.logger.Info("purchase completed",
		zap.Int64("user_id", userID),
		zap.Int64("bill_id", receipt.BillID),
		zap.Int64("order_id", receipt.OrderID),
		zap.String("total", receipt.Total.StringFixed(2)),
	)
	return receipt, nil
}

// submit runs bill, order, order lines and cart clear in that order. Lines are
// created concurrently and all of them are attempted even if one fails.
func (c *coordinator) submit(ctx context.Context, userID int64, snapshot *model.Cart, payment model.PaymentType) (*checkout.Receipt, error) {
	now := c.now()

	bill, err := c.orders.CreateBill(ctx, &model.Bill{
		BillNumber:  fmt.Sprintf("BILL-%d", now.UnixMilli()),
		Discount:    decimal.Zero,
		Date:        now.UTC().Format(billDateLayout),
		Total:       snapshot.Total,
		PaymentType: payment,
		ClientID:    userID,
	})
	if err != nil {
		return nil, err
	}
	partial := &checkout.PartialPurchaseError{BillID: bill.ID}

	created, err := c.orders.CreateOrder(ctx, &model.Order{
		Total:          snapshot.Total,
		DeliveryMethod: model.DeliveryMethodDefault,
		ClientID:       userID,
		BillID:         bill.ID,
	})
	if err != nil {
		partial.Step, partial.Err = checkout.StepOrder, err
		return nil, partial
	}
	partial.OrderID = created.ID

	var (
		g     errgroup.Group
		lines atomic.Int32
	)
	for _, item := range snapshot.Items {
		g.Go(func() error {
			_, err := c.orders.CreateOrderLine(ctx, &model.OrderLine{
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
				OrderID:   created.ID,
				ProductID: item.ProductID,
			})
			if err != nil {
				return fmt.Errorf("order line for product %d: %w", item.ProductID, err)
			}
			lines.Add(1)
			return nil
		})
	}
	err = g.Wait()
	partial.LinesCreated = int(lines.Load())
	if err != nil {
		partial.Step, partial.Err = checkout.StepOrderLines, err
		return nil, partial
	}

	if err := c.carts.Clear(ctx, userID); err != nil {
		partial.Step, partial.Err = checkout.StepClearCart, err
		return nil, partial
	}

	return &checkout.Receipt{
		BillID:      bill.ID,
		BillNumber:  bill.BillNumber,
		OrderID:     created.ID,
		Total:       snapshot.Total,
		PaymentType: payment,
		Lines:       len(snapshot.Items),
	}, nil
}

// begin moves to next if the session is signed in, nothing else is in flight and
// check (when given) accepts the current cart. A rejected check leaves the state
// untouched.
func (c *coordinator) begin(next checkout.State, check func(current *model.Cart) error) (*model.Identity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.session.Current()
	if id == nil {
		c.state = checkout.StateIdle
		c.cart = nil
		return nil, checkout.ErrNotAuthenticated
	}
	if c.state.Busy() {
		return nil, checkout.ErrBusy
	}
	if check != nil {
		if err := check(c.cart); err != nil {
			return nil, err
		}
	}
	c.state = next
	return id, nil
}

func (c *coordinator) finish(state checkout.State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// mutate runs a cart write and always re-fetches, so the caller sees the server's
// view even when the write failed.
func (c *coordinator) mutate(ctx context.Context, userID int64, write func() error) (*model.Cart, error) {
	defer c.finish(checkout.StateReady)

	werr := write()
	if werr != nil {
		c.logger.Warn("cart update rejected", zap.Int64("user_id", userID), zap.Error(werr))
	}
	fresh, ferr := c.fetch(ctx, userID)
	if werr != nil {
		return fresh, werr
	}
	return fresh, ferr
}

// fetch replaces the held cart with the server's. A failed fetch leaves an empty
// cart. Adjustments are announced here and nowhere else.
func (c *coordinator) fetch(ctx context.Context, userID int64) (*model.Cart, error) {
	fresh, err := c.carts.Get(ctx, userID)
	if err != nil {
		c.mu.Lock()
		c.cart = &model.Cart{}
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.cart = fresh
	c.mu.Unlock()

	if fresh.HasAdjustments && c.notifier != nil {
		c.notifier.Adjusted(copyCart(fresh))
	}
	if err := c.session.RememberCart(ctx, fresh); err != nil {
		c.logger.Warn("failed to remember cart", zap.Error(err))
	}
	return copyCart(fresh), nil
}

func copyCart(src *model.Cart) *model.Cart {
	if src == nil {
		return nil
	}
	dst := *src
	dst.Items = append([]model.CartLine(nil), src.Items...)
	return &dst
}
