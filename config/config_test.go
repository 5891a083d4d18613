package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultUsesHomePrefix(t *testing.T) {
	t.Setenv("TV_USER_PREFIX", "/tmp/tv-home")
	t.Setenv("TV_SYSTEM_PREFIX", "/opt/tv-system")

	cfg, err := Default()
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/tv-home/modules", cfg.UserModulePath)
	assert.Equal(t, "/opt/tv-system/data", cfg.SystemDataPath)
	assert.Equal(t, 33, cfg.ExecutionLatencyMS)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	t.Setenv("TV_USER_PREFIX", "/tmp/tv-home")
	t.Setenv("TV_SYSTEM_PREFIX", "/opt/tv-system")

	dir := t.TempDir()
	path := filepath.Join(dir, "tv.toml")

	cfg, err := Default()
	assert.NoError(t, err)
	cfg.CameraDevice = "/dev/video1"
	cfg.ExecutionLatencyMS = 50
	assert.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "/dev/video1", loaded.CameraDevice)
	assert.Equal(t, 50, loaded.ExecutionLatencyMS)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEnsureDirsCreatesPrefixes(t *testing.T) {
	root := t.TempDir()
	t.Setenv("TV_USER_PREFIX", filepath.Join(root, "user"))
	t.Setenv("TV_SYSTEM_PREFIX", filepath.Join(root, "system"))
	cfg, err := Default()
	assert.NoError(t, err)
	assert.NoError(t, cfg.EnsureDirs())

	info, err := os.Stat(cfg.UserModulePath)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
