package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := loadConfiguration(nil)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://api.finna.fi", cfg.Finna.API)
	assert.Equal(t, "https://api.finna.fi", cfg.ImageOrigin)
	assert.Equal(t, 10, cfg.Finna.Timeout)
	assert.Equal(t, 5.0, cfg.Finna.RateLimit)
	assert.False(t, cfg.Debug)
}

func TestConfigFlags(t *testing.T) {
	cfg, err := loadConfiguration([]string{"-port", "9000", "-finna", "http://localhost:1234", "-rps", "0", "-images", "https://cdn.example"})
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "http://localhost:1234", cfg.Finna.API)
	assert.Equal(t, "https://cdn.example", cfg.ImageOrigin)
	assert.Equal(t, 0.0, cfg.Finna.RateLimit)
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finna.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 7000
debug: true
finna:
  api: http://finna.test
  timeout: 3
  rate_limit: 2.5
`), 0o600))

	cfg, err := loadConfiguration([]string{"-config", path, "-timeout", "20"})
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "http://finna.test", cfg.Finna.API)
	assert.Equal(t, "http://finna.test", cfg.ImageOrigin)
	assert.Equal(t, 20, cfg.Finna.Timeout)
	assert.Equal(t, 2.5, cfg.Finna.RateLimit)
}

func TestConfigErrors(t *testing.T) {
	_, err := loadConfiguration([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [not a number"), 0o600))
	_, err = loadConfiguration([]string{"-config", bad})
	assert.Error(t, err)

	_, err = loadConfiguration([]string{"-finna", ""})
	assert.EqualError(t, err, "finna param is required")

	_, err = loadConfiguration([]string{"-timeout", "0"})
	assert.Error(t, err)

	_, err = loadConfiguration([]string{"-nosuchflag"})
	assert.Error(t, err)
}
