package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFirstRunCreatesDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("EVENTHUB_API_BASE_URL", "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, MinRequestTimeoutSeconds, cfg.RequestTimeoutSeconds)

	// The file now exists with restrictive permissions.
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNormalizeEnforcesTimeoutFloor(t *testing.T) {
	// The backend can take the better part of a minute to cold-start;
	// configs asking for less get the floor.
	cfg := &Config{RequestTimeoutSeconds: 5}
	cfg.Normalize()
	assert.Equal(t, MinRequestTimeoutSeconds, cfg.RequestTimeoutSeconds)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())

	cfg = &Config{RequestTimeoutSeconds: 120}
	cfg.Normalize()
	assert.Equal(t, 120, cfg.RequestTimeoutSeconds)
}

func TestNormalizeEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://secondary.example/api")
	t.Setenv("EVENTHUB_API_BASE_URL", "")

	cfg := &Config{BaseURL: "https://from-file.example/api"}
	cfg.Normalize()
	assert.Equal(t, "https://secondary.example/api", cfg.BaseURL)

	// The primary override wins over the secondary.
	t.Setenv("EVENTHUB_API_BASE_URL", "https://primary.example/api")
	cfg = &Config{BaseURL: "https://from-file.example/api"}
	cfg.Normalize()
	assert.Equal(t, "https://primary.example/api", cfg.BaseURL)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	orig := DefaultConfig()
	orig.RefreshSeconds = 30
	orig.BasicAuth = &BasicAuthConfig{Username: "u", Password: "p"}
	assert.NoError(t, Save(path, orig))

	loaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 30, loaded.RefreshSeconds)
	assert.NotNil(t, loaded.BasicAuth)
	assert.Equal(t, "u", loaded.BasicAuth.Username)
}
