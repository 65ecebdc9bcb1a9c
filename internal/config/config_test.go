package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoadPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	err := os.WriteFile(path, []byte(`
env: "dev"
storage: "memory"
time_zone: "Europe/Berlin"
http_server:
  address: "0.0.0.0:9090"
reminder:
  interval: 12h
`), 0o600)
	require.NoError(t, err)

	cfg := MustLoadPath(path)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTPServer.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.Reminder.Interval)
	assert.Equal(t, int64(1), cfg.LabID)
	assert.Equal(t, 5432, cfg.Database.Port)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestMustLoadPathMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}

func TestMustLoadPathBadTimeZone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`time_zone: "Mars/Olympus"`), 0o600))

	assert.Panics(t, func() {
		MustLoadPath(path)
	})
}
