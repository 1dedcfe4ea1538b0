package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/account"
	"github.com/fekuna/omnipos-storefront/internal/account/dto"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/session"
	"go.uber.org/zap"
)

// DefaultName is shown until the client fills in a profile.
const DefaultName = "Usuario"

var ErrMissingClientID = errors.New("server response carried no client id")

type accountUseCase struct {
	repo    account.Repository
	session session.UseCase
	logger  logger.ZapLogger
}

func NewAccountUseCase(repo account.Repository, sess session.UseCase, log logger.ZapLogger) account.UseCase {
	return &accountUseCase{
		repo:    repo,
		session: sess,
		logger:  log,
	}
}

func (uc *accountUseCase) Login(ctx context.Context, email, password string) (*model.Identity, error) {
	creds, err := credentials(email, password)
	if err != nil {
		return nil, err
	}

	res, err := uc.repo.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if res.ID == 0 {
		return nil, ErrMissingClientID
	}

	identity := model.Identity{
		ID:        res.ID,
		Name:      res.Name,
		LastName:  res.LastName,
		Email:     creds.Email,
		Telephone: res.Telephone,
		IsAdmin:   res.IsAdmin,
	}
	if identity.Name == "" {
		identity.Name = DefaultName
	}

	if err := uc.session.Establish(ctx, identity); err != nil {
		return nil, err
	}
	uc.logger.Info("signed in", zap.Int64("user_id", identity.ID), zap.Bool("admin", identity.IsAdmin))
	return &identity, nil
}

// Register creates a plain client account and signs it in. New accounts are never
// administrators regardless of what the server echoes back.
func (uc *accountUseCase) Register(ctx context.Context, email, password string) (*model.Identity, error) {
	creds, err := credentials(email, password)
	if err != nil {
		return nil, err
	}

	res, err := uc.repo.Register(ctx, creds)
	if err != nil {
		return nil, err
	}
	if res.ID == 0 {
		return nil, ErrMissingClientID
	}

	identity := model.Identity{
		ID:    res.ID,
		Name:  DefaultName,
		Email: creds.Email,
	}
	if err := uc.session.Establish(ctx, identity); err != nil {
		return nil, err
	}
	uc.logger.Info("registered", zap.Int64("user_id", identity.ID))
	return &identity, nil
}

func (uc *accountUseCase) Logout(ctx context.Context) error {
	return uc.session.Clear(ctx)
}

func (uc *accountUseCase) Profile(ctx context.Context) (*model.Identity, error) {
	current, err := auth.RequireIdentity(uc.session)
	if err != nil {
		return nil, err
	}

	res, err := uc.repo.GetClient(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	profile := *current
	profile.Name = res.Name
	profile.LastName = res.LastName
	profile.Email = res.Email
	profile.Telephone = res.Telephone
	return &profile, nil
}

func (uc *accountUseCase) UpdateProfile(ctx context.Context, input *dto.ProfileInput) (*model.Identity, error) {
	current, err := auth.RequireIdentity(uc.session)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateTelephone(input.Telephone); err != nil {
		return nil, err
	}

	payload := &dto.ClientPayload{
		Name:      input.Name,
		LastName:  input.LastName,
		Email:     input.Email,
		Telephone: input.Telephone,
	}
	res, err := uc.repo.UpdateClient(ctx, current.ID, payload)
	if err != nil {
		return nil, err
	}

	// Identity and role stay as they were; contact fields follow the server,
	// falling back to what was sent when the response omits them.
	updated := *current
	updated.Name = orDefault(res.Name, input.Name)
	updated.LastName = orDefault(res.LastName, input.LastName)
	updated.Email = orDefault(res.Email, input.Email)
	updated.Telephone = orDefault(res.Telephone, input.Telephone)

	if err := uc.session.Establish(ctx, updated); err != nil {
		return nil, err
	}
	uc.logger.Info("profile updated", zap.Int64("user_id", updated.ID))
	return &updated, nil
}

func credentials(email, password string) (*dto.Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, model.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, model.NewValidationError("password", "is required")
	}
	return &dto.Credentials{Email: email, Password: password}, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
