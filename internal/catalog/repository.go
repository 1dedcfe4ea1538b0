package catalog

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Snapshot struct {
	Products   []model.Product  `json:"products"`
	Categories []model.Category `json:"categories"`
	FetchedAt  time.Time        `json:"fetched_at"`
}

// SnapshotRepository keeps the last good listing across processes.
type SnapshotRepository interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
}
