package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/account"
	"github.com/fekuna/omnipos-storefront/internal/account/dto"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type HTTPRepository struct {
	API *httpapi.Client
}

var _ account.Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(api *httpapi.Client) *HTTPRepository {
	return &HTTPRepository{API: api}
}

func (r *HTTPRepository) Login(ctx context.Context, creds *dto.Credentials) (*model.Identity, error) {
	return r.send(ctx, "/clients/login", creds)
}

func (r *HTTPRepository) Register(ctx context.Context, creds *dto.Credentials) (*model.Identity, error) {
	return r.send(ctx, "/clients", creds)
}

func (r *HTTPRepository) GetClient(ctx context.Context, id int64) (*model.Identity, error) {
	var identity model.Identity
	if err := r.API.Get(ctx, fmt.Sprintf("/clients/id/%d", id), &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *HTTPRepository) UpdateClient(ctx context.Context, id int64, payload *dto.ClientPayload) (*model.Identity, error) {
	var identity model.Identity
	if err := r.API.Put(ctx, fmt.Sprintf("/clients/id/%d", id), payload, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *HTTPRepository) send(ctx context.Context, path string, creds *dto.Credentials) (*model.Identity, error) {
	var identity model.Identity
	if err := r.API.Post(ctx, path, creds, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
