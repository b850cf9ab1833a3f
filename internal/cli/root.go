// Package cli implements the learnhub CLI commands.
//
// Every command builds the same wired app (see newApp) and then calls one
// view model or store operation — the commands themselves carry no logic,
// mirroring how the platform's pages are thin consumers of the stores.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakif/learnhub/internal/app"
	"github.com/sakif/learnhub/internal/config"
	"github.com/sakif/learnhub/internal/storage"
	"github.com/sakif/learnhub/internal/storage/sqlite"
)

var (
	apiURLFlag string
	dbPathFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "learnhub",
	Short: "Client for the learnhub educational content platform",
	Long:  "Browse chapters, track your learning progress, and manage platform content from the terminal.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL (default: $LEARNHUB_API_URL or http://localhost:8000)")
	RootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Local state path (default: $LEARNHUB_DB or ~/.learnhub/learnhub.db)")
}

// newApp wires the application for one command invocation. The returned
// cleanup closes the local store; call it with defer.
func newApp() (*app.App, func()) {
	cfg := config.Load()
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}
	if dbPathFlag != "" {
		cfg.DBPath = dbPathFlag
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	store, cleanup := openStore(cfg.DBPath, logger)
	return app.New(app.Config{APIURL: cfg.APIURL}, store, logger), cleanup
}

// openStore opens the persistent KV store, degrading to an in-memory one
// when the disk store is unavailable (state then lasts for this process
// only — the same degradation the browser build applies when localStorage
// is blocked).
func openStore(path string, logger *slog.Logger) (storage.Store, func()) {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err == nil {
		var store *sqlite.Store
		if store, err = sqlite.New(path); err == nil {
			return store, func() { _ = store.Close() }
		}
	}
	logger.Warn("local store unavailable, state will not persist",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
	return storage.NewMemory(), func() {}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
