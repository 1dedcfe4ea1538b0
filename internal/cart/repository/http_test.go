package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, h http.HandlerFunc) *HTTPRepository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPRepository(httpapi.NewClientWithHTTP(&httpapi.Config{BaseURL: srv.URL, Timeout: time.Second}, srv.Client(), logger.NewNopLogger()))
}

func TestGetDecodesCart(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/4", r.URL.Path)
		_, _ = w.Write([]byte(`{"items":[{"id_key":1,"product_id":8,"quantity":2,"product":{"id_key":8,"name":"Cable","price":5.5,"stock":9}}],"total":11,"has_adjustments":false}`))
	})

	c, err := repo.Get(context.Background(), 4)

	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "Cable", c.Items[0].Product.Name)
	assert.True(t, decimal.NewFromInt(11).Equal(c.Total))
}

func TestItemWritesUseExpectedRoutes(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]any
	}
	var calls []call
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, call{r.Method, r.URL.Path, body})
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, 4, 8, 1))
	require.NoError(t, repo.UpdateItem(ctx, 4, 8, 3))
	require.NoError(t, repo.RemoveItem(ctx, 4, 8))
	require.NoError(t, repo.Clear(ctx, 4))

	require.Len(t, calls, 4)
	assert.Equal(t, call{http.MethodPost, "/cart/4/items", map[string]any{"product_id": float64(8), "quantity": float64(1)}}, calls[0])
	assert.Equal(t, call{http.MethodPut, "/cart/4/items", map[string]any{"product_id": float64(8), "quantity": float64(3)}}, calls[1])
	assert.Equal(t, http.MethodDelete, calls[2].method)
	assert.Equal(t, "/cart/4/items/8", calls[2].path)
	assert.Equal(t, "/cart/4", calls[3].path)
}

func TestAddItemSurfacesServerDetail(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Not enough stock"}`))
	})

	err := repo.AddItem(context.Background(), 1, 2, 50)

	var re *httpapi.RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Not enough stock", re.Detail)
}
