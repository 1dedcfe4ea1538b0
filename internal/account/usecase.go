package account

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/account/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	Login(ctx context.Context, email, password string) (*model.Identity, error)
	Register(ctx context.Context, email, password string) (*model.Identity, error)
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (*model.Identity, error)
	// UpdateProfile writes the contact fields and re-establishes the session
	// identity from the server's answer.
	UpdateProfile(ctx context.Context, input *dto.ProfileInput) (*model.Identity, error)
}
