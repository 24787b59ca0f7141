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

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.u-health.app", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.State.Dir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	stateDir := t.TempDir()
	t.Setenv("UHEALTH_API_BASEURL", "http://localhost:8000")
	t.Setenv("UHEALTH_API_TIMEOUT", "5s")
	t.Setenv("UHEALTH_STATE_DIR", stateDir)
	t.Setenv("UHEALTH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, stateDir, cfg.State.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestStatePaths(t *testing.T) {
	var cfg Config
	cfg.State.Dir = "/tmp/uhealth-state"

	assert.Equal(t, filepath.Join("/tmp/uhealth-state", "token"), cfg.TokenPath())
	assert.Equal(t, filepath.Join("/tmp/uhealth-state", "uhealth.log"), cfg.LogPath())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"# local overrides\nUHEALTH_API_BASEURL=\"http://localhost:9000\"\nUHEALTH_LOG_LEVEL=warn\nmalformed line\n"), 0600))
	t.Setenv("UHEALTH_API_BASEURL", "")
	os.Unsetenv("UHEALTH_API_BASEURL")
	t.Setenv("UHEALTH_LOG_LEVEL", "")
	os.Unsetenv("UHEALTH_LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}
