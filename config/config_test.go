package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: educycle
  log:
    level: info
http:
  port: 9090
storage:
  driver: local
localStore:
  inMemory: true
secretKey:
  access: from-file
auth:
  tokenTTL: 30m
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfigYAML), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	t.Chdir(writeTestConfig(t))

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
	require.NotNil(t, cfg.LocalStore)
	assert.True(t, cfg.LocalStore.InMemory)
	assert.Equal(t, "from-file", cfg.SecretKey.Access)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	t.Chdir(writeTestConfig(t))
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, 7070, cfg.HTTP.Port)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{
		Uploads: &UploadsConfig{},
		Metrics: &MetricsConfig{Enabled: true},
	}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultStorageDriver, cfg.Storage.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, int64(defaultUploadMaxBytes), cfg.Uploads.MaxBytes)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}
