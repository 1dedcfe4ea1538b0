package session

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

// UseCase is the single writer of the current identity. Readers get copies.
type UseCase interface {
	// Restore reloads the persisted identity without touching the network.
	Restore(ctx context.Context) error
	Current() *model.Identity
	Establish(ctx context.Context, identity model.Identity) error
	Clear(ctx context.Context) error

	RememberCart(ctx context.Context, cart *model.Cart) error
	LastCart() *model.Cart
}
