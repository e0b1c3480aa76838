package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.BudgetTier != "nolimit" {
		t.Errorf("BudgetTier = %q, want nolimit", cfg.BudgetTier)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("AutoMigrate should default to true")
	}
	if cfg.Prices.UserAgent != "edh-advisor/1.0" {
		t.Errorf("UserAgent = %q", cfg.Prices.UserAgent)
	}
	if cfg.Similarity.ColorIdentity == 0 {
		t.Error("similarity weights not defaulted")
	}
}

func TestSaveToLoadFromRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.BudgetTier = "moderate"
	cfg.Database.Path = "/tmp/corpus.db"
	cfg.Prices.Enabled = true
	cfg.Similarity.CardOverlap = 0.2

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.BudgetTier != "moderate" {
		t.Errorf("BudgetTier = %q", loaded.BudgetTier)
	}
	if loaded.Database.Path != "/tmp/corpus.db" {
		t.Errorf("Database.Path = %q", loaded.Database.Path)
	}
	if !loaded.Prices.Enabled {
		t.Error("Prices.Enabled lost in round trip")
	}
	if loaded.Similarity.CardOverlap != 0.2 {
		t.Errorf("Similarity.CardOverlap = %v", loaded.Similarity.CardOverlap)
	}
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("budget_tier = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestPathCreatesConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if want := filepath.Join(home, ".edh-advisor", "config.toml"); path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("config directory not created: %v", err)
	}
}

func TestWatchReloadsOnRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Watch(path, func(c *Config) {
			select {
			case reloaded <- c:
			default:
			}
		}, stop)
	}()

	// Give the watcher a moment to register before rewriting.
	time.Sleep(100 * time.Millisecond)
	cfg.BudgetTier = "budget"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if c.BudgetTier != "budget" {
			t.Errorf("reloaded BudgetTier = %q, want budget", c.BudgetTier)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never fired")
	}

	close(stop)
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatchDeliversRetunedWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Similarity.CardOverlap = 0.1
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		_ = Watch(path, func(c *Config) {
			select {
			case reloaded <- c:
			default:
			}
		}, stop)
	}()

	// Give the watcher a moment to register before rewriting.
	time.Sleep(100 * time.Millisecond)
	cfg.Similarity.CardOverlap = 0.9
	cfg.BudgetTier = "optimized"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if c.Similarity.CardOverlap != 0.9 {
			t.Errorf("reloaded CardOverlap = %v, want 0.9", c.Similarity.CardOverlap)
		}
		if c.BudgetTier != "optimized" {
			t.Errorf("reloaded BudgetTier = %q, want optimized", c.BudgetTier)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never delivered the retuned weights")
	}
}
