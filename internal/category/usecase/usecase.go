package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/category/dto"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo    category.Repository
	session auth.IdentitySource
	catalog catalog.Refresher
	logger  logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, session auth.IdentitySource, cat catalog.Refresher, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:    repo,
		session: session,
		catalog: cat,
		logger:  log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if _, err := auth.RequireAdmin(uc.session); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.NewValidationError("name", "is required")
	}

	c, err := uc.repo.Create(ctx, &dto.CategoryPayload{Name: name})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("category created", zap.Int64("category_id", c.ID), zap.String("name", c.Name))

	uc.refresh(ctx)
	return c, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := auth.RequireAdmin(uc.session); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("category deleted", zap.Int64("category_id", id))

	uc.refresh(ctx)
	return nil
}

func (uc *categoryUseCase) refresh(ctx context.Context) {
	if err := uc.catalog.Refresh(ctx); err != nil {
		uc.logger.Warn("catalog refresh after category change failed", zap.Error(err))
	}
}
