package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/account/repository"
	"github.com/fekuna/omnipos-storefront/internal/account/usecase"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/session"
	sessionRepo "github.com/fekuna/omnipos-storefront/internal/session/repository"
	sessionUC "github.com/fekuna/omnipos-storefront/internal/session/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	session session.UseCase
	handler *AccountHandler
}

func newHarness(t *testing.T, h http.HandlerFunc) *harness {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log := logger.NewNopLogger()
	client := httpapi.NewClientWithHTTP(&httpapi.Config{BaseURL: srv.URL, Timeout: time.Second}, srv.Client(), log)

	store, err := sessionRepo.NewSQLiteRepository(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	sess := sessionUC.NewSessionUseCase(store, log)

	uc := usecase.NewAccountUseCase(repository.NewHTTPRepository(client), sess, log)
	return &harness{session: sess, handler: NewAccountHandler(uc, sess, log)}
}

func (h *harness) run(args ...string) (int, string, string) {
	opts := &cli.RootOptions{}
	root := cli.NewRootCommand(opts, h.handler.Commands(opts)...)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	return cli.Execute(context.Background(), root, opts), out.String(), errOut.String()
}

var ana = model.Identity{ID: 7, Name: "Ana", LastName: "Diaz", Email: "ana@example.com", Telephone: "5551234567"}

func TestLogin(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"id_key": 7, "name": "Ana", "lastname": "Diaz", "email": "ana@example.com"}`))
	})

	code, out, _ := h.run("login", "--email", "ana@example.com", "--password", "secret")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "Signed in as Ana Diaz.\n", out)
	require.NotNil(t, h.session.Current())
	assert.Equal(t, int64(7), h.session.Current().ID)
}

func TestLoginRequiresPassword(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	code, _, _ := h.run("login", "--email", "ana@example.com")

	assert.NotEqual(t, cli.ExitSuccess, code)
	assert.Nil(t, h.session.Current())
}

func TestWhoamiGuest(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {})

	code, _, errOut := h.run("whoami")

	assert.Equal(t, cli.ExitFailure, code)
	assert.Contains(t, errOut, "E003")
}

func TestWhoamiShowsLastCart(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("whoami must not call the API")
	})
	ctx := context.Background()
	require.NoError(t, h.session.Establish(ctx, ana))
	require.NoError(t, h.session.RememberCart(ctx, &model.Cart{
		Items: []model.CartLine{{ProductID: 1, Quantity: 3}},
		Total: decimal.NewFromInt(300),
	}))

	code, out, _ := h.run("whoami")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, out, "Name:  Ana Diaz")
	assert.Contains(t, out, "Cart:  3 item(s), $300.00")
}

func TestProfileUpdateKeepsUnchangedFields(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/clients/id/7", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ana", body["name"])
		assert.Equal(t, "Diaz", body["lastname"])
		assert.Equal(t, "5559876543", body["telephone"])
		_, _ = w.Write([]byte(`{"id_key": 7, "name": "Ana", "lastname": "Diaz", "email": "ana@example.com", "telephone": "5559876543"}`))
	})
	require.NoError(t, h.session.Establish(context.Background(), ana))

	code, out, _ := h.run("profile", "update", "--phone", "5559876543")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, out, "Phone: 5559876543")
	assert.Equal(t, "5559876543", h.session.Current().Telephone)
}

func TestProfileUpdateRejectsShortPhone(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	require.NoError(t, h.session.Establish(context.Background(), ana))

	code, _, errOut := h.run("profile", "update", "--phone", "123")

	assert.Equal(t, cli.ExitFailure, code)
	assert.Contains(t, errOut, "E002")
	assert.Equal(t, ana.Telephone, h.session.Current().Telephone)
}

func TestLogout(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, h.session.Establish(context.Background(), ana))

	code, out, _ := h.run("logout")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "Signed out.\n", out)
	assert.Nil(t, h.session.Current())
}
