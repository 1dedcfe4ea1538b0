package checkout

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
)

// Form is what the buyer submits. Contact fields start from the stored identity;
// any difference is offered to be saved to the profile.
type Form struct {
	Name      string
	LastName  string
	Email     string
	Telephone string
	Payment   string // "cash" or "card"
}

// FormFor prefills a form from the signed-in identity.
func FormFor(id model.Identity) Form {
	return Form{
		Name:      id.Name,
		LastName:  id.LastName,
		Email:     id.Email,
		Telephone: id.Telephone,
		Payment:   model.PaymentCash.String(),
	}
}

func (f Form) PaymentType() model.PaymentType {
	return model.ParsePaymentType(f.Payment)
}

func (f Form) Validate() error {
	return model.ValidateTelephone(f.Telephone)
}

// ContactChanged compares the fields the profile can store. Email is read-only
// at checkout.
func (f Form) ContactChanged(id model.Identity) bool {
	return f.Name != id.Name || f.LastName != id.LastName || f.Telephone != id.Telephone
}

type Decision int

const (
	PurchaseOnly Decision = iota
	SaveAndPurchase
)

// DecideFunc is asked once, only when the contact fields changed.
type DecideFunc func(current model.Identity, form Form) Decision
