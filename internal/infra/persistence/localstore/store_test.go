package localstore

import (
	"testing"

	"educycle/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := Open(&config.LocalStoreConfig{InMemory: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestOpen_OnDisk(t *testing.T) {
	db, err := Open(&config.LocalStoreConfig{Path: t.TempDir()}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
