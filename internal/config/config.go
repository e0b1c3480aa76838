// Package config loads and persists engine configuration as TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/cturner512/edh-advisor/internal/similarity"
)

// Config represents the application configuration.
type Config struct {
	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Similarity engine weights
	Similarity similarity.Weights `toml:"similarity"`

	// Price client configuration
	Prices PricesConfig `toml:"prices"`

	// Report output configuration
	Reports ReportsConfig `toml:"reports"`

	// Default budget tier for analysis
	BudgetTier string `toml:"budget_tier"`
}

// DatabaseConfig contains corpus database settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Path to the SQLite database
	AutoMigrate bool   `toml:"auto_migrate"` // Run pending migrations on open
}

// PricesConfig contains price-fetching settings.
type PricesConfig struct {
	Enabled   bool   `toml:"enabled"`    // Hydrate prices before budget analysis
	UserAgent string `toml:"user_agent"` // HTTP User-Agent header
}

// ReportsConfig contains chart output settings.
type ReportsConfig struct {
	OutputDir string `toml:"output_dir"` // Directory for HTML chart reports
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Similarity: similarity.DefaultWeights(),
		Prices: PricesConfig{
			Enabled:   false,
			UserAgent: "edh-advisor/1.0",
		},
		Reports: ReportsConfig{
			OutputDir: "",
		},
		BudgetTier: "nolimit",
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".edh-advisor")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Path returns the on-disk location of the config file, creating its
// directory if needed. Watch callers use it to monitor the live config.
func Path() (string, error) {
	return configPath()
}

// Load loads the configuration from the default location. Returns the
// default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path. A missing file
// yields the defaults rather than an error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the default location.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Watch monitors the config file and invokes onChange with the freshly
// loaded configuration whenever it is rewritten. It blocks until the
// watcher fails or the stop channel closes.
func Watch(path string, onChange func(*Config), stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors replace files rather than write in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadFrom(path)
			if err != nil {
				continue // keep the previous config on parse errors
			}
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch config: %w", err)
		case <-stop:
			return nil
		}
	}
}
