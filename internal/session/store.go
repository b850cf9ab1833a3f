// Package session holds the authenticated identity and bearer token for the
// current browser context.
//
// LIFECYCLE:
// absent → present (Login) → absent (Logout). At most one session exists at a
// time; logging in as a different user overwrites the prior session wholesale.
// State is persisted through the injected storage.Store under two fixed keys,
// so a session survives process restarts the way the browser build survives
// reloads.
//
// Reads never fail loudly: a missing, corrupt, or unreadable blob is treated
// as "no session". Login failures are surfaced exactly once to the caller as
// an apperror.ErrAuth value — no retries happen at this layer.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sakif/learnhub/internal/apperror"
	"github.com/sakif/learnhub/internal/model"
	"github.com/sakif/learnhub/internal/storage"
)

// Storage keys, fixed by the persisted-state contract.
const (
	tokenKey = "admin_token"
	userKey  = "current_user"
)

// Store manages the current session. Construct with New; safe for concurrent
// use to the extent the underlying storage is.
type Store struct {
	baseURL string
	http    *http.Client
	store   storage.Store
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a session store talking to the backend at baseURL and
// persisting through store.
func New(baseURL string, store storage.Store, logger *slog.Logger) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// loginResponse is the wire shape of a successful POST /api/auth/login.
type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		Email string     `json:"email"`
		Role  model.Role `json:"role"`
	} `json:"user"`
}

// Login exchanges credentials for a session. On success the token and derived
// identity are persisted and the identity returned. On any failure nothing is
// persisted and an apperror.ErrAuth error carries the backend's message.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("session: encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("session: building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, apperror.AuthFailed(fmt.Sprintf("login request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.AuthFailed(loginErrorDetail(resp))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, apperror.AuthFailed(fmt.Sprintf("unexpected login response: %v", err))
	}
	if lr.Token == "" || lr.User.Email == "" {
		return nil, apperror.AuthFailed("login response missing token or user")
	}

	user := identityFromEmail(lr.User.Email, lr.User.Role, s.now())
	s.persist(ctx, lr.Token, user)

	s.logger.Info("session established",
		slog.String("userID", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// persist writes both session keys. Storage failures do not fail the login —
// the new session simply will not survive a restart. A previously persisted
// session is left intact when the write fails outright, and a half-written
// pair is rolled back so CurrentUser never sees a token from one session with
// the identity of another.
func (s *Store) persist(ctx context.Context, token string, user *model.User) {
	blob, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("persisting session failed; session is in-memory only",
			slog.String("error", err.Error()),
		)
		return
	}

	prevToken, prevErr := s.store.Get(ctx, tokenKey)

	if err := s.store.Set(ctx, tokenKey, token); err != nil {
		// Nothing was written; whatever session was persisted before still is.
		s.logger.Warn("persisting session failed; session is in-memory only",
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.store.Set(ctx, userKey, string(blob)); err != nil {
		s.logger.Warn("persisting session failed; session is in-memory only",
			slog.String("error", err.Error()),
		)
		// The token key now belongs to the new session while the identity key
		// still holds the old one. Put the previous token back to keep the
		// pair consistent, or clear it when there was none to restore.
		if prevErr == nil && s.store.Set(ctx, tokenKey, prevToken) == nil {
			return
		}
		_ = s.store.Delete(ctx, tokenKey)
	}
}

// CurrentUser returns the persisted identity, or nil when there is no
// session. A corrupt identity blob is treated as absent — with one recovery:
// if the stored token is a JWT carrying identity claims, the identity is
// rebuilt from those instead of dropping the session.
func (s *Store) CurrentUser(ctx context.Context) *model.User {
	raw, err := s.store.Get(ctx, userKey)
	if err == nil {
		var user model.User
		if jsonErr := json.Unmarshal([]byte(raw), &user); jsonErr == nil && user.Email != "" {
			return &user
		}
		s.logger.Warn("persisted identity is unreadable, treating as absent",
			slog.String("error", apperror.ErrMalformedState.Error()),
		)
	}

	if token := s.Token(ctx); token != "" {
		if user := identityFromToken(token, s.now()); user != nil {
			return user
		}
	}
	return nil
}

// Token returns the persisted bearer token, or "" when no session exists.
// Implements api.TokenSource.
func (s *Store) Token(ctx context.Context) string {
	token, err := s.store.Get(ctx, tokenKey)
	if err != nil {
		return ""
	}
	return token
}

// Logout clears both session keys unconditionally. Idempotent — logging out
// twice, or with no session at all, is a no-op.
func (s *Store) Logout(ctx context.Context) {
	_ = s.store.Delete(ctx, tokenKey)
	_ = s.store.Delete(ctx, userKey)
}

// loginErrorDetail pulls the human-readable message out of a failed login
// response: the JSON {"detail"} field when present, the raw body otherwise.
func loginErrorDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("login failed (HTTP %d)", resp.StatusCode)
}
