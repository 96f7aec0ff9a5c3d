// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultLogLevel       = "info"
	DefaultEvictionPolicy = "newest"
)

// Config represents the ignisd configuration.
type Config struct {
	Daemon DaemonConfig `toml:"daemon"`
	Paths  PathsConfig  `toml:"paths"`
}

// DaemonConfig holds daemon behavior settings.
type DaemonConfig struct {
	LogLevel string `toml:"log_level"` // debug, info, warn, error

	// EvictionPolicy selects which popup is dismissed when the popup
	// list is at capacity: "newest" or "oldest".
	EvictionPolicy string `toml:"eviction_policy"`
}

// PathsConfig holds file locations. Empty values resolve to XDG defaults.
type PathsConfig struct {
	HistoryFile string `toml:"history_file"` // notification history
	OptionsFile string `toml:"options_file"` // key/value option store
	ImagesDir   string `toml:"images_dir"`   // decoded image-data icons
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Daemon: DaemonConfig{
			LogLevel:       DefaultLogLevel,
			EvictionPolicy: DefaultEvictionPolicy,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ignis", "ignisd.toml")
}

// CacheDir returns the ignis cache directory.
// Uses XDG_CACHE_HOME if set, otherwise ~/.cache.
func CacheDir() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "ignis"), nil
}

// HistoryPath returns the resolved notification history file path.
func (c *Config) HistoryPath() (string, error) {
	if c.Paths.HistoryFile != "" {
		return c.Paths.HistoryFile, nil
	}
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notifications.json"), nil
}

// OptionsPath returns the resolved options file path.
func (c *Config) OptionsPath() (string, error) {
	if c.Paths.OptionsFile != "" {
		return c.Paths.OptionsFile, nil
	}
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "options.json"), nil
}

// ImagesPath returns the resolved directory for decoded icon files.
func (c *Config) ImagesPath() (string, error) {
	if c.Paths.ImagesDir != "" {
		return c.Paths.ImagesDir, nil
	}
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "image_data"), nil
}

// LoadConfig loads configuration from the specified path. If path is
// empty, the default config path is used. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path, creating parent
// directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
