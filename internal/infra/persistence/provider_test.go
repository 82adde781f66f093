package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"educycle/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, cfg *config.Config) (Params, *fxtest.Lifecycle) {
	lc := fxtest.NewLifecycle(t)

	return Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, lc
}

func TestNewRepositories_Local(t *testing.T) {
	params, lc := newParams(t, &config.Config{
		Storage:    config.StorageConfig{Driver: "local"},
		LocalStore: &config.LocalStoreConfig{InMemory: true},
	})

	repos, err := NewRepositories(params)
	require.NoError(t, err)
	assert.NotNil(t, repos.TxManager)
	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Products)
	assert.NotNil(t, repos.Orders)
	assert.NotNil(t, repos.Messages)
	assert.NotNil(t, repos.Devices)

	lc.RequireStart()
	assert.NoError(t, repos.Health.Ping(context.Background()))
	lc.RequireStop()
	assert.Error(t, repos.Health.Ping(context.Background()))
}

func TestNewRepositories_PostgresRequiresConfig(t *testing.T) {
	params, _ := newParams(t, &config.Config{Storage: config.StorageConfig{Driver: "postgres"}})

	_, err := NewRepositories(params)
	assert.Error(t, err)
}

func TestNewRepositories_UnknownDriver(t *testing.T) {
	params, _ := newParams(t, &config.Config{Storage: config.StorageConfig{Driver: "mongo"}})

	_, err := NewRepositories(params)
	assert.Error(t, err)
}
