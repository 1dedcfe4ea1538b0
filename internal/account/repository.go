package account

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/account/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

// Repository talks to the clients resource. Returned identities carry whatever
// the server sent; absent fields decode as zero values.
type Repository interface {
	Login(ctx context.Context, creds *dto.Credentials) (*model.Identity, error)
	Register(ctx context.Context, creds *dto.Credentials) (*model.Identity, error)
	GetClient(ctx context.Context, id int64) (*model.Identity, error)
	UpdateClient(ctx context.Context, id int64, payload *dto.ClientPayload) (*model.Identity, error)
}
