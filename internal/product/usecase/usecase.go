package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/media"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"go.uber.org/zap"
)

var ErrProductNotFound = errors.New("product not found")

type productUseCase struct {
	repo     product.Repository
	session  auth.IdentitySource
	uploader media.Uploader
	catalog  catalog.Refresher
	logger   logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, session auth.IdentitySource, uploader media.Uploader, cat catalog.Refresher, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		session:  session,
		uploader: uploader,
		catalog:  cat,
		logger:   log,
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if _, err := auth.RequireAdmin(uc.session); err != nil {
		return nil, err
	}
	if err := validate(input.Name, input.Price.IsNegative(), input.Stock); err != nil {
		return nil, err
	}

	imageURL, err := uc.resolveImage(ctx, input.ImageURL, input.ImagePath)
	if err != nil {
		return nil, err
	}

	payload := &dto.ProductPayload{
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price.InexactFloat64(),
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
		ImageURL:   imageURL,
		Active:     input.Active,
	}

	p, err := uc.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))

	uc.refresh(ctx)
	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if _, err := auth.RequireAdmin(uc.session); err != nil {
		return nil, err
	}
	if err := validate(input.Name, input.Price.IsNegative(), input.Stock); err != nil {
		return nil, err
	}

	imageURL, err := uc.resolveImage(ctx, input.ImageURL, input.ImagePath)
	if err != nil {
		return nil, err
	}

	payload := &dto.ProductPayload{
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price.InexactFloat64(),
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
		ImageURL:   imageURL,
		Active:     input.Active,
	}

	p, err := uc.repo.Update(ctx, input.ID, payload)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("product updated", zap.Int64("product_id", input.ID))

	uc.refresh(ctx)
	return p, nil
}

// SetActive deactivates through the API's soft delete and reactivates by writing
// the full product back with active set.
func (uc *productUseCase) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := auth.RequireAdmin(uc.session); err != nil {
		return err
	}

	if !active {
		if err := uc.repo.Deactivate(ctx, id); err != nil {
			return err
		}
		uc.logger.Info("product deactivated", zap.Int64("product_id", id))
		uc.refresh(ctx)
		return nil
	}

	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	payload := &dto.ProductPayload{
		Name:       p.Name,
		Price:      p.Price.InexactFloat64(),
		Stock:      p.Stock,
		CategoryID: p.CategoryRef(),
		ImageURL:   p.ImageURL,
		Active:     true,
	}
	if _, err := uc.repo.Update(ctx, id, payload); err != nil {
		return err
	}
	uc.logger.Info("product reactivated", zap.Int64("product_id", id))

	uc.refresh(ctx)
	return nil
}

func (uc *productUseCase) resolveImage(ctx context.Context, imageURL, imagePath string) (string, error) {
	if imagePath == "" {
		return imageURL, nil
	}
	url, err := uc.uploader.Upload(ctx, imagePath)
	if err != nil {
		return "", fmt.Errorf("product image: %w", err)
	}
	return url, nil
}

// refresh keeps the shared listing current after a write. The write already
// succeeded, so a failed refresh is only logged.
func (uc *productUseCase) refresh(ctx context.Context) {
	if err := uc.catalog.Refresh(ctx); err != nil {
		uc.logger.Warn("catalog refresh after product change failed", zap.Error(err))
	}
}

func validate(name string, negativePrice bool, stock int) error {
	if strings.TrimSpace(name) == "" {
		return model.NewValidationError("name", "is required")
	}
	if negativePrice {
		return model.NewValidationError("price", "must not be negative")
	}
	if stock < 0 {
		return model.NewValidationError("stock", "must not be negative")
	}
	return nil
}
