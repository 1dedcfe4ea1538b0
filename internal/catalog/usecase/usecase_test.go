package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	catRepo "github.com/fekuna/omnipos-storefront/internal/catalog/repository"
	categoryRepo "github.com/fekuna/omnipos-storefront/internal/category/repository"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	productRepo "github.com/fekuna/omnipos-storefront/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogAPI struct {
	products      atomic.Value // string
	failProducts  atomic.Bool
	productCalls  atomic.Int32
	categoryCalls atomic.Int32
	lastQuery     atomic.Value // string
}

func (f *fakeCatalogAPI) handler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/products":
		f.productCalls.Add(1)
		f.lastQuery.Store(r.URL.RawQuery)
		if f.failProducts.Load() {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"detail":"upstream down"}`))
			return
		}
		_, _ = w.Write([]byte(f.products.Load().(string)))
	case "/categories":
		f.categoryCalls.Add(1)
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id_key": 1, "name": "Audio"}, {"id_key": 2, "name": "Video"}})
	default:
		http.NotFound(w, r)
	}
}

const twoProducts = `[
	{"id_key": 1, "name": "Headphones", "price": 120, "stock": 4, "category_id": 1, "active": true},
	{"id_key": 2, "name": "Old TV", "price": 300, "stock": 0, "category_id": 2, "active": false},
	{"id_key": 3, "name": "Monitor", "price": 250, "stock": 2, "category": {"id_key": 2, "name": "Video"}, "active": true}
]`

func newFixture(t *testing.T) (*fakeCatalogAPI, *httpapi.Client) {
	t.Helper()
	api := &fakeCatalogAPI{}
	api.products.Store(twoProducts)
	srv := httptest.NewServer(http.HandlerFunc(api.handler))
	t.Cleanup(srv.Close)
	client := httpapi.NewClientWithHTTP(&httpapi.Config{BaseURL: srv.URL, Timeout: time.Second}, srv.Client(), logger.NewNopLogger())
	return api, client
}

func TestRefreshLoadsAllAndDerivesActive(t *testing.T) {
	api, client := newFixture(t)
	uc := NewCatalogUseCase(productRepo.NewHTTPRepository(client), categoryRepo.NewHTTPRepository(client), nil, 0, logger.NewNopLogger())

	require.NoError(t, uc.Refresh(context.Background()))

	assert.Equal(t, "include_inactive=true&limit=100", api.lastQuery.Load())
	assert.Len(t, uc.All(), 3)
	active := uc.ActiveOnly()
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(3), active[1].ID)
	assert.Len(t, uc.Categories(), 2)
	assert.False(t, uc.FetchedAt().IsZero())

	inVideo := uc.ActiveInCategory(2)
	require.Len(t, inVideo, 1)
	assert.Equal(t, "Monitor", inVideo[0].Name)

	p, ok := uc.Product(2)
	require.True(t, ok)
	assert.False(t, p.Active)
}

func TestRefreshFailureKeepsPreviousState(t *testing.T) {
	api, client := newFixture(t)
	uc := NewCatalogUseCase(productRepo.NewHTTPRepository(client), categoryRepo.NewHTTPRepository(client), nil, 50, logger.NewNopLogger())
	require.NoError(t, uc.Refresh(context.Background()))
	before := uc.ActiveOnly()

	api.failProducts.Store(true)
	api.products.Store(`[]`)
	err := uc.Refresh(context.Background())

	require.Error(t, err)
	assert.True(t, httpapi.IsRequestError(err))
	assert.Equal(t, before, uc.ActiveOnly())
	assert.Len(t, uc.Categories(), 2)
	assert.Equal(t, "include_inactive=true&limit=50", api.lastQuery.Load())
}

func TestRefreshIsIdempotent(t *testing.T) {
	api, client := newFixture(t)
	uc := NewCatalogUseCase(productRepo.NewHTTPRepository(client), categoryRepo.NewHTTPRepository(client), nil, 0, logger.NewNopLogger())

	require.NoError(t, uc.Refresh(context.Background()))
	first := uc.ActiveOnly()
	require.NoError(t, uc.Refresh(context.Background()))

	assert.Equal(t, first, uc.ActiveOnly())
	assert.Equal(t, int32(2), api.productCalls.Load())
	assert.Equal(t, int32(2), api.categoryCalls.Load())
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	_, client := newFixture(t)
	uc := NewCatalogUseCase(productRepo.NewHTTPRepository(client), categoryRepo.NewHTTPRepository(client), nil, 0, logger.NewNopLogger())
	require.NoError(t, uc.Refresh(context.Background()))

	all := uc.All()
	all[0].Name = "changed"

	p, _ := uc.Product(1)
	assert.Equal(t, "Headphones", p.Name)
}

func TestSnapshotSurvivesNewProcess(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	redisClient, err := catRepo.NewRedisClient(ctx, mr.Addr())
	require.NoError(t, err)
	defer redisClient.Close()
	snapshots := catRepo.NewRedisSnapshotRepository(redisClient, "storefront")

	api, client := newFixture(t)
	first := NewCatalogUseCase(productRepo.NewHTTPRepository(client), categoryRepo.NewHTTPRepository(client), snapshots, 0, logger.NewNopLogger())
	require.NoError(t, first.Refresh(ctx))

	// A later process whose API is down still serves the last good listing.
	api.failProducts.Store(true)
	second := NewCatalogUseCase(productRepo.NewHTTPRepository(client), categoryRepo.NewHTTPRepository(client), snapshots, 0, logger.NewNopLogger())
	require.NoError(t, second.Seed(ctx))
	require.Error(t, second.Refresh(ctx))

	assert.Len(t, second.ActiveOnly(), 2)
	assert.True(t, first.FetchedAt().Equal(second.FetchedAt()))
}

func TestSeedWithoutSnapshotStoreIsNoop(t *testing.T) {
	_, client := newFixture(t)
	uc := NewCatalogUseCase(productRepo.NewHTTPRepository(client), categoryRepo.NewHTTPRepository(client), nil, 0, logger.NewNopLogger())

	require.NoError(t, uc.Seed(context.Background()))
	assert.Empty(t, uc.All())
}
