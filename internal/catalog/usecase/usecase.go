package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultPageSize = 100

type catalogUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
	snapshots    catalog.SnapshotRepository // optional
	pageSize     int
	logger       logger.ZapLogger

	mu         sync.RWMutex
	products   []model.Product
	categories []model.Category
	fetchedAt  time.Time
}

func NewCatalogUseCase(productRepo product.Repository, categoryRepo category.Repository, snapshots catalog.SnapshotRepository, pageSize int, log logger.ZapLogger) catalog.UseCase {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &catalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		snapshots:    snapshots,
		pageSize:     pageSize,
		logger:       log,
	}
}

// Refresh fetches products (inactive included) and categories in parallel. State
// is replaced only when both succeed; on failure the previous listing stays.
func (uc *catalogUseCase) Refresh(ctx context.Context) error {
	var (
		products   []model.Product
		categories []model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.productRepo.FindAll(gctx, &dto.ProductFilters{IncludeInactive: true, Limit: uc.pageSize})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = uc.categoryRepo.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("failed to refresh catalog, keeping previous listing", zap.Error(err))
		return fmt.Errorf("refresh catalog: %w", err)
	}

	now := time.Now().UTC()
	uc.mu.Lock()
	uc.products = products
	uc.categories = categories
	uc.fetchedAt = now
	uc.mu.Unlock()

	uc.logger.Debug("catalog refreshed", zap.Int("products", len(products)), zap.Int("categories", len(categories)))

	if uc.snapshots != nil {
		snap := &catalog.Snapshot{Products: products, Categories: categories, FetchedAt: now}
		if err := uc.snapshots.Save(ctx, snap); err != nil {
			uc.logger.Warn("failed to save catalog snapshot", zap.Error(err))
		}
	}
	return nil
}

func (uc *catalogUseCase) Seed(ctx context.Context) error {
	if uc.snapshots == nil {
		return nil
	}
	snap, err := uc.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog snapshot: %w", err)
	}
	if snap == nil {
		return nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	// Never overwrite a fresher listing with the snapshot.
	if uc.fetchedAt.After(snap.FetchedAt) {
		return nil
	}
	uc.products = snap.Products
	uc.categories = snap.Categories
	uc.fetchedAt = snap.FetchedAt
	return nil
}

func (uc *catalogUseCase) All() []model.Product {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return append([]model.Product(nil), uc.products...)
}

func (uc *catalogUseCase) ActiveOnly() []model.Product {
	return uc.filter(func(p model.Product) bool { return p.Active })
}

func (uc *catalogUseCase) ActiveInCategory(categoryID int64) []model.Product {
	return uc.filter(func(p model.Product) bool { return p.Active && p.CategoryRef() == categoryID })
}

func (uc *catalogUseCase) Categories() []model.Category {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return append([]model.Category(nil), uc.categories...)
}

func (uc *catalogUseCase) Product(id int64) (model.Product, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, p := range uc.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (uc *catalogUseCase) FetchedAt() time.Time {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.fetchedAt
}

func (uc *catalogUseCase) filter(keep func(model.Product) bool) []model.Product {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]model.Product, 0, len(uc.products))
	for _, p := range uc.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
