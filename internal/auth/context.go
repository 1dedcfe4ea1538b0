package auth

import (
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrForbidden        = errors.New("administrator access required")
)

// IdentitySource is satisfied by the session store.
type IdentitySource interface {
	Current() *model.Identity
}

func RequireIdentity(src IdentitySource) (*model.Identity, error) {
	id := src.Current()
	if id == nil {
		return nil, ErrNotAuthenticated
	}
	return id, nil
}

func RequireAdmin(src IdentitySource) (*model.Identity, error) {
	id, err := RequireIdentity(src)
	if err != nil {
		return nil, err
	}
	if !id.IsAdmin {
		return nil, ErrForbidden
	}
	return id, nil
}
