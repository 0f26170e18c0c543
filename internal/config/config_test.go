package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "edutask_test")
	t.Setenv("MONGODB_TIMEOUT", "3")
	for _, k := range []string{"RATE_LIMIT_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "edutask_test", cfg.MongoDB.Database)
	require.Equal(t, 3*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, 5, cfg.MongoDB.ConnectAttempts)
	require.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 5.0, cfg.RateLimit.RPS)
	require.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoadConfig_MissingURI(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingMongoURI)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MONGODB_URI=mongodb://from-file:27017\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	// godotenv never overrides variables that exist, even empty ones
	for _, k := range []string{"MONGODB_URI", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://from-file:27017", cfg.MongoDB.URI)
	require.Equal(t, "debug", cfg.Log.Level)
}
