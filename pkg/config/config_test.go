package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Search.DebounceMs != 300 {
		t.Fatalf("expected 300ms default debounce, got %d", cfg.Search.DebounceMs)
	}
	if cfg.Search.MaxQuery != 60 || cfg.Search.MinQuery != 1 {
		t.Fatalf("unexpected query bounds: %+v", cfg.Search)
	}
	if cfg.Client.MinSimilarity != 0.70 {
		t.Fatalf("unexpected similarity threshold: %v", cfg.Client.MinSimilarity)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[search]
debounce_ms = 150
max_limit = 8

[client]
base_url = "https://api.example.dev"
min_similarity = 0.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.DebounceMs != 150 || cfg.Search.MaxLimit != 8 {
		t.Fatalf("file values not applied: %+v", cfg.Search)
	}
	if cfg.Client.BaseURL != "https://api.example.dev" || cfg.Client.MinSimilarity != 0.5 {
		t.Fatalf("file values not applied: %+v", cfg.Client)
	}
	// Untouched sections keep defaults.
	if cfg.Search.MaxQuery != 60 || cfg.CLI.DefaultLimit != 10 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestInitConfigCreatesFileWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.DebounceMs != 300 {
		t.Fatalf("expected defaults, got %+v", cfg.Search)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
}
