// Package app is the composition root: it wires storage, session,
// permissions, preferences, content, and media into one value the outer
// surfaces (CLI today, anything else tomorrow) consume.
//
// DEPENDENCY CHAIN:
//
//	storage.Store → session.Store → permission.Resolver
//	              ↘ preferences.Service
//	session.Store → api.Client → content.Repository, media.Service
//
// The view-model builders in views.go are the Go rendering of the platform's
// pages (sidebar, profile, learn page, admin dashboard): read-only consumers
// that combine the stores but hold no state and no invariants of their own.
package app

import (
	"log/slog"

	"github.com/sakif/learnhub/internal/api"
	"github.com/sakif/learnhub/internal/content"
	"github.com/sakif/learnhub/internal/media"
	"github.com/sakif/learnhub/internal/permission"
	"github.com/sakif/learnhub/internal/preferences"
	"github.com/sakif/learnhub/internal/session"
	"github.com/sakif/learnhub/internal/storage"
)

// Config holds the knobs the app needs from the outside.
type Config struct {
	// APIURL is the backend base URL, e.g. "http://localhost:8000".
	APIURL string
}

// App bundles the wired services. Fields are exported so surfaces can reach
// the individual stores directly when a view model is too coarse.
type App struct {
	Sessions *session.Store
	Perms    *permission.Resolver
	Prefs    *preferences.Service
	Content  *content.Repository
	Media    *media.Service

	logger *slog.Logger
}

// New wires the full dependency graph. store is the persistence port — the
// SQLite adapter in production, storage.Memory in tests.
func New(cfg Config, store storage.Store, logger *slog.Logger) *App {
	sessions := session.New(cfg.APIURL, store, logger)
	client := api.New(cfg.APIURL, sessions, logger)

	return &App{
		Sessions: sessions,
		Perms:    permission.New(sessions),
		Prefs:    preferences.New(store, logger),
		Content:  content.New(client, logger),
		Media:    media.New(client, logger),
		logger:   logger,
	}
}
