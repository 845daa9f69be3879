package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/metalagman/maimp/internal/config"
	"github.com/metalagman/maimp/internal/db"
	"github.com/metalagman/maimp/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_WiresManagerToStore(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Session.StateDir = filepath.Join(root, ".maimp")
	cfg.Session.StepDelay = 0
	cfg.Repository.Workspace = filepath.Join(root, "workspace")
	cfg.Repository.URL = "https://example.com/repo.git"

	var (
		mgr   *session.Manager
		store *db.Store
		out   bytes.Buffer
	)
	ctx := context.Background()
	stop, err := Start(ctx, cfg, &out, &mgr, &store)
	require.NoError(t, err)

	res, err := mgr.Run(ctx)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "SESSION COMPLETE")

	rec, err := store.GetSession(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCompleted, rec.Status)
	assert.Equal(t, "https://example.com/repo.git", rec.RepoURL)
	assert.FileExists(t, DBPath(cfg))

	stop()
	assert.Error(t, store.DB().PingContext(ctx))
}

func TestStart_FailsOnUnusableStateDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := config.Default()
	cfg.Session.StateDir = filepath.Join(blocker, "state")

	var store *db.Store
	_, err := Start(context.Background(), cfg, &bytes.Buffer{}, &store)
	assert.Error(t, err)
}
