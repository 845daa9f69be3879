package db

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesConnectionPragmas(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "maimp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	var foreignKeys, busyTimeout, synchronous int
	require.NoError(t, database.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.NoError(t, database.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.NoError(t, database.QueryRow("PRAGMA synchronous").Scan(&synchronous))
	assert.Equal(t, 1, foreignKeys)
	assert.Equal(t, 5000, busyTimeout)
	assert.Equal(t, 1, synchronous, "NORMAL")
}

func TestOpen_MigratesToLatestSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maimp.db")
	database, err := Open(path)
	require.NoError(t, err)

	var n int
	require.NoError(t, database.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('sessions', 'events')",
	).Scan(&n))
	assert.Equal(t, 2, n)
	require.NoError(t, database.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Close())
}

func TestOpen_ConcurrentOpensMigrateSafely(t *testing.T) {
	dir := t.TempDir()
	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			database, err := Open(filepath.Join(dir, "db"+string(rune('a'+i))+".db"))
			if err == nil {
				err = database.Close()
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
