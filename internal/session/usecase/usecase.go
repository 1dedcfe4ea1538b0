package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/session"
	"go.uber.org/zap"
)

var ErrMissingID = errors.New("identity has no id")

type sessionUseCase struct {
	mu       sync.RWMutex
	repo     session.Repository
	identity *model.Identity
	cart     *model.Cart
	logger   logger.ZapLogger
}

func NewSessionUseCase(repo session.Repository, log logger.ZapLogger) session.UseCase {
	return &sessionUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *sessionUseCase) Restore(ctx context.Context) error {
	values, err := uc.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	identity := decodeIdentity(values)

	var cart *model.Cart
	if raw := values[session.KeyCart]; raw != "" {
		var c model.Cart
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			cart = &c
		} else {
			uc.logger.Warn("discarding unreadable cart snapshot", zap.Error(err))
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.identity = identity
	uc.cart = cart
	return nil
}

func (uc *sessionUseCase) Current() *model.Identity {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.identity == nil {
		return nil
	}
	cp := *uc.identity
	return &cp
}

func (uc *sessionUseCase) Establish(ctx context.Context, identity model.Identity) error {
	if identity.ID == 0 {
		return ErrMissingID
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	// Persist first: memory only changes once the identity would survive a restart.
	if err := uc.repo.SaveAll(ctx, encodeIdentity(identity)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	uc.identity = &identity

	uc.logger.Info("session established", zap.Int64("user_id", identity.ID), zap.Bool("is_admin", identity.IsAdmin))
	return nil
}

func (uc *sessionUseCase) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	keys := append(append([]string{}, session.IdentityKeys...), session.KeyCart)
	if err := uc.repo.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	uc.identity = nil
	uc.cart = nil

	uc.logger.Info("session cleared")
	return nil
}

func (uc *sessionUseCase) RememberCart(ctx context.Context, cart *model.Cart) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if cart == nil {
		if err := uc.repo.Delete(ctx, session.KeyCart); err != nil {
			return err
		}
		uc.cart = nil
		return nil
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := uc.repo.SaveAll(ctx, map[string]string{session.KeyCart: string(data)}); err != nil {
		return err
	}
	uc.cart = cloneCart(cart)
	return nil
}

func (uc *sessionUseCase) LastCart() *model.Cart {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return cloneCart(uc.cart)
}

func cloneCart(c *model.Cart) *model.Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = append([]model.CartLine(nil), c.Items...)
	return &cp
}

func encodeIdentity(i model.Identity) map[string]string {
	return map[string]string{
		session.KeyUserID:        strconv.FormatInt(i.ID, 10),
		session.KeyUserName:      i.Name,
		session.KeyUserLastName:  i.LastName,
		session.KeyUserEmail:     i.Email,
		session.KeyUserTelephone: i.Telephone,
		session.KeyUserIsAdmin:   strconv.FormatBool(i.IsAdmin),
	}
}

// decodeIdentity returns nil (guest) when no usable user id is stored. Any other
// missing key decodes to its zero value.
func decodeIdentity(values map[string]string) *model.Identity {
	raw, ok := values[session.KeyUserID]
	if !ok || raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}

	return &model.Identity{
		ID:        id,
		Name:      values[session.KeyUserName],
		LastName:  values[session.KeyUserLastName],
		Email:     values[session.KeyUserEmail],
		Telephone: values[session.KeyUserTelephone],
		IsAdmin:   values[session.KeyUserIsAdmin] == "true",
	}
}
