package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "immortalis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":9090\"\nfeed_limit: 3\nsession_ttl: 30m\nlog_level: debug\n"), 0o644))
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvDBPath, filepath.Join(dir, "x.db"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 3, cfg.FeedLimit)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "x.db"), cfg.DBPath)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("IMMORTALIS_REDIS_ADDR=localhost:6390\n"), 0o644))
	// godotenv never overrides variables already present, so start clean.
	t.Setenv(EnvRedisAddr, "")
	require.NoError(t, os.Unsetenv(EnvRedisAddr))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6390", cfg.RedisAddr)
}

func TestLoadRejectsBadSessionTTL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSessionTTL, "soon")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
