package usecase

import (
	"context"
	"sort"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo    order.Repository
	session auth.IdentitySource
	logger  logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, session auth.IdentitySource, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:    repo,
		session: session,
		logger:  log,
	}
}

func (uc *orderUseCase) History(ctx context.Context) ([]model.OrderRecord, error) {
	id, err := auth.RequireIdentity(uc.session)
	if err != nil {
		return nil, err
	}

	orders, err := uc.repo.ListByClient(ctx, id.ID)
	if err != nil {
		return nil, err
	}
	newestFirst(orders)
	return orders, nil
}

func (uc *orderUseCase) ListAll(ctx context.Context) ([]model.OrderRecord, error) {
	if _, err := auth.RequireAdmin(uc.session); err != nil {
		return nil, err
	}

	orders, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	newestFirst(orders)
	return orders, nil
}

func (uc *orderUseCase) ChangeStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if _, err := auth.RequireAdmin(uc.session); err != nil {
		return err
	}
	if !status.Valid() {
		return model.NewValidationError("status", "unknown order status %d", int(status))
	}

	if err := uc.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	uc.logger.Info("order status changed", zap.Int64("order_id", orderID), zap.Stringer("status", status))
	return nil
}

// newestFirst orders by date, falling back to id for equal or missing dates.
func newestFirst(orders []model.OrderRecord) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.After(b.Date.Time)
		}
		return a.ID > b.ID
	})
}
