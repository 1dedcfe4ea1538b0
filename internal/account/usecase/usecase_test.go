package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/account/dto"
	"github.com/fekuna/omnipos-storefront/internal/account/repository"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/session"
	sessionRepo "github.com/fekuna/omnipos-storefront/internal/session/repository"
	sessionUC "github.com/fekuna/omnipos-storefront/internal/session/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, h http.HandlerFunc) (*accountUseCase, session.UseCase) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := httpapi.NewClientWithHTTP(&httpapi.Config{BaseURL: srv.URL, Timeout: time.Second}, srv.Client(), logger.NewNopLogger())

	store, err := sessionRepo.NewSQLiteRepository(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	sess := sessionUC.NewSessionUseCase(store, logger.NewNopLogger())

	uc := NewAccountUseCase(repository.NewHTTPRepository(client), sess, logger.NewNopLogger())
	return uc.(*accountUseCase), sess
}

func TestLoginFallsBackToDefaultName(t *testing.T) {
	uc, sess := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients/login", r.URL.Path)
		var creds map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@example.com", creds["email"])
		_, _ = w.Write([]byte(`{"id_key": 21, "name": null, "lastname": "Gómez", "is_admin": true}`))
	})

	identity, err := uc.Login(context.Background(), " ana@example.com ", "secret")

	require.NoError(t, err)
	want := model.Identity{ID: 21, Name: DefaultName, LastName: "Gómez", Email: "ana@example.com", IsAdmin: true}
	assert.Equal(t, want, *identity)
	assert.Equal(t, want, *sess.Current())
}

func TestLoginFailureLeavesGuest(t *testing.T) {
	uc, sess := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid credentials"}`))
	})

	_, err := uc.Login(context.Background(), "ana@example.com", "wrong")

	assert.True(t, httpapi.IsRequestError(err))
	assert.Nil(t, sess.Current())
}

func TestLoginValidatesCredentials(t *testing.T) {
	uc, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := uc.Login(context.Background(), "", "x")
	assert.True(t, model.IsValidationError(err))
	_, err = uc.Register(context.Background(), "a@b.c", "")
	assert.True(t, model.IsValidationError(err))
}

func TestRegisterIsNeverAdmin(t *testing.T) {
	uc, sess := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id_key": 30, "email": "new@example.com", "is_admin": true}`))
	})

	identity, err := uc.Register(context.Background(), "new@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, DefaultName, identity.Name)
	assert.False(t, sess.Current().IsAdmin)
}

func TestLogoutClearsSession(t *testing.T) {
	uc, sess := setup(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id_key": 5, "name": "Eva"}`))
	})
	ctx := context.Background()
	_, err := uc.Login(ctx, "eva@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx))

	assert.Nil(t, sess.Current())
	_, err = uc.Profile(ctx)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestUpdateProfileReestablishesIdentity(t *testing.T) {
	var put map[string]string
	uc, sess := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"id_key": 8, "name": "Old", "is_admin": true}`))
		case http.MethodPut:
			assert.Equal(t, "/clients/id/8", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			_, _ = w.Write([]byte(`{"id_key": 8, "name": "New", "lastname": "Name", "email": "n@example.com", "telephone": null}`))
		}
	})
	ctx := context.Background()
	_, err := uc.Login(ctx, "o@example.com", "pw")
	require.NoError(t, err)

	updated, err := uc.UpdateProfile(ctx, &dto.ProfileInput{Name: "New", LastName: "Name", Email: "n@example.com", Telephone: "11 1234 5678"})

	require.NoError(t, err)
	assert.Equal(t, "11 1234 5678", put["telephone"])
	assert.Equal(t, "11 1234 5678", updated.Telephone)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, *updated, *sess.Current())
}

func TestUpdateProfileRejectsShortPhone(t *testing.T) {
	calls := 0
	uc, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"id_key": 8, "name": "Old"}`))
	})
	ctx := context.Background()
	_, err := uc.Login(ctx, "o@example.com", "pw")
	require.NoError(t, err)

	_, err = uc.UpdateProfile(ctx, &dto.ProfileInput{Name: "Old", Telephone: "123"})

	assert.True(t, model.IsValidationError(err))
	assert.Equal(t, 1, calls)
}

func TestProfileReadsServerCopy(t *testing.T) {
	uc, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			assert.Equal(t, "/clients/id/8", r.URL.Path)
			_, _ = w.Write([]byte(`{"id_key": 8, "name": "Lu", "lastname": "Paz", "email": "lu@example.com", "telephone": "1198765432"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id_key": 8, "name": "Lu"}`))
	})
	ctx := context.Background()
	_, err := uc.Login(ctx, "lu@example.com", "pw")
	require.NoError(t, err)

	profile, err := uc.Profile(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Paz", profile.LastName)
	assert.Equal(t, "1198765432", profile.Telephone)
}
