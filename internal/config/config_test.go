package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Data")
	cfg.Server.Listen = "127.0.0.1:9000"
	cfg.Dashboard.DefaultPeriod = "6M"

	path := filepath.Join(t.TempDir(), "deepfinance.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Data.Dir, got.Data.Dir)
	assert.Equal(t, cfg.Server.Listen, got.Server.Listen)
	assert.Equal(t, cfg.Dashboard.DefaultPeriod, got.Dashboard.DefaultPeriod)
	assert.Equal(t, cfg.Dashboard.VelocityWindow, got.Dashboard.VelocityWindow)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Data")

	assert.Equal(t, "Data", cfg.Data.Dir)
	assert.Equal(t, ":8000", cfg.Server.Listen)
	assert.Equal(t, "3M", cfg.Dashboard.DefaultPeriod)
	assert.Equal(t, 30, cfg.Dashboard.VelocityWindow)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Data")
	path := filepath.Join(t.TempDir(), "deepfinance.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "dir: Data")
	assert.Contains(t, contents, "8000")
	assert.Contains(t, contents, "default_period: 3M")
}
