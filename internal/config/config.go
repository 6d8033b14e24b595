// Package config loads and saves the mtg-collection configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/mtg-collection/internal/serialization"
)

// appDirName is the per-user directory holding the config file and card database.
const appDirName = ".mtg-collection"

// Config represents the application configuration.
type Config struct {
	// Card database configuration
	Database DatabaseConfig `toml:"database"`

	// Collection file defaults
	Collection CollectionConfig `toml:"collection"`

	// Application configuration
	App AppConfig `toml:"app"`

	// File watching configuration
	Watch WatchConfig `toml:"watch"`

	// Chart rendering configuration
	Charts ChartsConfig `toml:"charts"`
}

// DatabaseConfig locates the MTGJSON card database.
type DatabaseConfig struct {
	Path string `toml:"path"` // Path to AllSets JSON
}

// CollectionConfig contains collection file settings.
type CollectionConfig struct {
	Format string `toml:"format"` // Serializer format ("auto" picks by extension)
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// WatchConfig contains settings for the watch command.
type WatchConfig struct {
	Debounce string `toml:"debounce"` // Quiet period before re-merging (e.g., "500ms")
}

// ChartsConfig contains defaults for the stats chart.
type ChartsConfig struct {
	Width  string `toml:"width"`  // CSS width (e.g., "1200px")
	Height string `toml:"height"` // CSS height
	Theme  string `toml:"theme"`  // go-echarts theme name
	Output string `toml:"output"` // HTML file written by stats
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	database := "AllSets-x.json"
	if dir, err := appDir(); err == nil {
		database = filepath.Join(dir, database)
	}

	return &Config{
		Database: DatabaseConfig{
			Path: database,
		},
		Collection: CollectionConfig{
			Format: serialization.FormatAuto,
		},
		App: AppConfig{
			DebugMode: false,
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
		Charts: ChartsConfig{
			Width:  "1200px",
			Height: "600px",
			Theme:  "westeros",
			Output: "collection-stats.html",
		},
	}
}

func appDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, appDirName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the default path. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration at path. Values missing from the file
// keep their defaults.
func LoadFrom(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if !slices.Contains(serialization.Default().AllFormats(), c.Collection.Format) {
		return fmt.Errorf("invalid collection format %q", c.Collection.Format)
	}

	debounce, err := c.WatchDebounce()
	if err != nil {
		return fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	}
	if debounce < 0 {
		return fmt.Errorf("watch debounce cannot be negative: %s", c.Watch.Debounce)
	}

	return nil
}

// WatchDebounce returns the watch debounce as a duration.
func (c *Config) WatchDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Watch.Debounce)
}
