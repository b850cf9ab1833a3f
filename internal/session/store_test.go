package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/learnhub/internal/apperror"
	"github.com/sakif/learnhub/internal/model"
	"github.com/sakif/learnhub/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newAuthBackend serves the demo login contract: one admin account, JSON
// {detail} on failure — the same shape the real backend produces.
func newAuthBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
			http.Error(w, `{"detail":"bad request"}`, http.StatusBadRequest)
			return
		}
		if creds.Email != "admin@example.com" || creds.Password != "password" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"admin-token","user":{"email":"admin@example.com","role":"admin"}}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return New(newAuthBackend(t).URL, mem, testLogger()), mem
}

func TestLogin_Success(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	user, err := s.Login(ctx, "admin@example.com", "password")
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", user.ID)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, "admin", user.Name) // local part of the address
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.False(t, user.CreatedAt.IsZero())

	token, err := mem.Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "admin-token", token)

	blob, err := mem.Get(ctx, userKey)
	require.NoError(t, err)
	var persisted model.User
	require.NoError(t, json.Unmarshal([]byte(blob), &persisted))
	assert.Equal(t, user.ID, persisted.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "admin@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrAuth)
	assert.Contains(t, err.Error(), "Invalid credentials")

	// A failed login persists nothing — no partial state.
	_, err = mem.Get(ctx, tokenKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	_, err = mem.Get(ctx, userKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	assert.Nil(t, s.CurrentUser(ctx))
}

func TestLogin_BackendUnreachable(t *testing.T) {
	s := New("http://127.0.0.1:1", storage.NewMemory(), testLogger())

	_, err := s.Login(context.Background(), "admin@example.com", "password")
	assert.ErrorIs(t, err, apperror.ErrAuth)
}

func TestCurrentUser_NoSession(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Nil(t, s.CurrentUser(context.Background()))
}

func TestCurrentUser_CorruptBlobIsAbsent(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	// An opaque token offers no recovery, so a corrupt identity means no session.
	require.NoError(t, mem.Set(ctx, tokenKey, "admin-token"))
	require.NoError(t, mem.Set(ctx, userKey, "{not json"))

	assert.Nil(t, s.CurrentUser(ctx))
}

func TestCurrentUser_RecoversIdentityFromJWT(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "Learner@Example.com",
		"role":  "user",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	require.NoError(t, mem.Set(ctx, tokenKey, signed))
	require.NoError(t, mem.Set(ctx, userKey, "{not json"))

	user := s.CurrentUser(ctx)
	require.NotNil(t, user)
	assert.Equal(t, "learner@example.com", user.ID) // still email-derived
	assert.Equal(t, "Learner@Example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestLogout_Idempotent(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "admin@example.com", "password")
	require.NoError(t, err)
	require.NotNil(t, s.CurrentUser(ctx))

	s.Logout(ctx)
	assert.Nil(t, s.CurrentUser(ctx))
	assert.Empty(t, s.Token(ctx))

	// Again, with no session present.
	s.Logout(ctx)
	assert.Nil(t, s.CurrentUser(ctx))

	_, err = mem.Get(ctx, tokenKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestToken_EmptyWithoutSession(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Empty(t, s.Token(context.Background()))
}

// readOnlyStore rejects all writes while serving reads from the wrapped
// store, like a browser whose storage quota is exhausted.
type readOnlyStore struct {
	storage.Store
}

func (r *readOnlyStore) Set(ctx context.Context, key, value string) error {
	return errors.New("storage quota exceeded")
}

// identityWriteFails rejects writes of the identity blob while letting token
// writes through, leaving a half-written session pair behind.
type identityWriteFails struct {
	storage.Store
}

func (f *identityWriteFails) Set(ctx context.Context, key, value string) error {
	if key == userKey {
		return errors.New("storage quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

func TestLogin_WriteFailureKeepsPriorSession(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, tokenKey, "old-token"))
	require.NoError(t, mem.Set(ctx, userKey, `{"id":"old@example.com","email":"old@example.com","role":"user"}`))

	s := New(newAuthBackend(t).URL, &readOnlyStore{Store: mem}, testLogger())

	// The login itself succeeds; only persisting the new session fails.
	user, err := s.Login(ctx, "admin@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.ID)

	// The previously persisted session is untouched.
	token, err := mem.Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "old-token", token)
	current := s.CurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, "old@example.com", current.ID)
}

func TestLogin_HalfWrittenSessionIsRolledBack(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, tokenKey, "old-token"))
	require.NoError(t, mem.Set(ctx, userKey, `{"id":"old@example.com","email":"old@example.com","role":"user"}`))

	s := New(newAuthBackend(t).URL, &identityWriteFails{Store: mem}, testLogger())

	_, err := s.Login(ctx, "admin@example.com", "password")
	require.NoError(t, err)

	// The new token landed but the new identity did not; the old token is
	// put back so the persisted pair still describes one session.
	token, err := mem.Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "old-token", token)
	current := s.CurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, "old@example.com", current.ID)
}

func TestLogin_OverwritesPriorSession(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	// Simulate a stale session for someone else.
	require.NoError(t, mem.Set(ctx, tokenKey, "old-token"))
	require.NoError(t, mem.Set(ctx, userKey, `{"id":"old@example.com","email":"old@example.com","role":"user"}`))

	user, err := s.Login(ctx, "admin@example.com", "password")
	require.NoError(t, err)

	current := s.CurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, "admin-token", s.Token(ctx))
}
