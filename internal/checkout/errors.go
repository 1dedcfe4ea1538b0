package checkout

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

var (
	// ErrBusy is returned while another cart operation is in flight. Operations are
	// refused, not queued.
	ErrBusy = errors.New("another cart operation is in progress")

	ErrNotAuthenticated = auth.ErrNotAuthenticated
)

type ValidationError = model.ValidationError

// Step names the purchase call that failed.
type Step string

const (
	StepBill       Step = "bill"
	StepOrder      Step = "order"
	StepOrderLines Step = "order_lines"
	StepClearCart  Step = "clear_cart"
)

// PartialPurchaseError reports a purchase that failed after the bill was created.
// Nothing is rolled back: BillID, OrderID and LinesCreated identify the records
// left on the server.
type PartialPurchaseError struct {
	Step         Step
	BillID       int64
	OrderID      int64 // 0 when the order was never created
	LinesCreated int
	Err          error
}

func (e *PartialPurchaseError) Error() string {
	if e.OrderID == 0 {
		return fmt.Sprintf("purchase failed at %s after bill %d was created: %v", e.Step, e.BillID, e.Err)
	}
	return fmt.Sprintf("purchase failed at %s after bill %d and order %d were created: %v", e.Step, e.BillID, e.OrderID, e.Err)
}

func (e *PartialPurchaseError) Unwrap() error {
	return e.Err
}
