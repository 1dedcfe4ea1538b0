package catalog

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

// Refresher is what mutating components depend on: anything that creates, edits or
// (de)activates a product, or completes a purchase, must call Refresh afterwards.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// UseCase is a refresh-on-demand cache of the full product and category listing.
// It has no TTL and no invalidation; staleness between refreshes is accepted.
type UseCase interface {
	Refresher

	// Seed loads the last saved snapshot, if any, without touching the API.
	Seed(ctx context.Context) error

	All() []model.Product
	ActiveOnly() []model.Product
	ActiveInCategory(categoryID int64) []model.Product
	Categories() []model.Category
	Product(id int64) (model.Product, bool)
	FetchedAt() time.Time
}
