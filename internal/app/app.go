// Package app wires the session components together with fx.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/metalagman/maimp/internal/config"
	"github.com/metalagman/maimp/internal/db"
	"github.com/metalagman/maimp/internal/logging"
	"github.com/metalagman/maimp/internal/session"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Output is the writer that receives console progress.
type Output struct {
	W io.Writer
}

// Module provides the session database, store and manager.
var Module = fx.Module("maimp",
	fx.Provide(
		NewDB,
		db.NewStore,
		NewManager,
	),
)

// DBPath returns the session database path for a config.
func DBPath(cfg config.Config) string {
	return filepath.Join(cfg.Session.StateDir, "maimp.db")
}

// NewDB opens the session database and closes it when the app stops.
func NewDB(lc fx.Lifecycle, cfg config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(cfg.Session.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	database, err := db.Open(DBPath(cfg))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.Close()
		},
	})
	return database, nil
}

// NewManager builds a session manager recording into the store.
func NewManager(cfg config.Config, out Output, store *db.Store) *session.Manager {
	return session.NewManager(session.Options{
		RepoURL:   cfg.Repository.URL,
		Workspace: cfg.Repository.Workspace,
		Branch:    cfg.Repository.Branch,
		StepDelay: cfg.Session.StepDelay,
		Out:       out.W,
		Recorder:  store,
	})
}

// Start builds and starts the graph, filling targets (pointers to provided types).
// The returned stop function runs the lifecycle OnStop hooks.
func Start(ctx context.Context, cfg config.Config, out io.Writer, targets ...any) (func(), error) {
	fxLogger := fx.NopLogger
	if logging.DebugEnabled() {
		fxLogger = fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		})
	}
	app := fx.New(
		Module,
		fx.Supply(cfg, Output{W: out}),
		fx.Populate(targets...),
		fxLogger,
	)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return nil, fmt.Errorf("start app: %w", err)
	}
	return func() {
		if err := app.Stop(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("app stop")
		}
	}, nil
}
