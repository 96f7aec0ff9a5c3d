package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Daemon.LogLevel)
	assert.Equal(t, "newest", cfg.Daemon.EvictionPolicy)
	assert.Empty(t, cfg.Paths.HistoryFile)
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignisd.toml")
	content := `[daemon]
eviction_policy = "oldest"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "oldest", cfg.Daemon.EvictionPolicy)
	assert.Equal(t, "info", cfg.Daemon.LogLevel, "unset keys keep defaults")
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignisd.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ignisd.toml")

	cfg := DefaultConfig()
	cfg.Daemon.LogLevel = "debug"
	cfg.Paths.HistoryFile = "/tmp/history.json"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_PathResolution(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg := DefaultConfig()

	history, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-cache/ignis/notifications.json", history)

	opts, err := cfg.OptionsPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-cache/ignis/options.json", opts)

	images, err := cfg.ImagesPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-cache/ignis/image_data", images)
}

func TestConfig_ExplicitPathsWin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths.HistoryFile = "/data/h.json"
	cfg.Paths.OptionsFile = "/data/o.json"
	cfg.Paths.ImagesDir = "/data/images"

	history, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, "/data/h.json", history)

	opts, err := cfg.OptionsPath()
	require.NoError(t, err)
	assert.Equal(t, "/data/o.json", opts)

	images, err := cfg.ImagesPath()
	require.NoError(t, err)
	assert.Equal(t, "/data/images", images)
}

func TestConfigPath_UsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	assert.Equal(t, "/tmp/xdg-config/ignis/ignisd.toml", ConfigPath())
}
