package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("unexpected default base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("unexpected default timeout %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Registry.PollIntervalSeconds != 3 {
		t.Errorf("unexpected default poll interval %d", cfg.Registry.PollIntervalSeconds)
	}
	if len(cfg.Keybindings.Quit) == 0 {
		t.Error("quit keybinding missing from defaults")
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	loader := NewLoaderAt(path)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("fresh config should carry defaults, got %q", cfg.API.BaseURL)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not written: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	loader := NewLoaderAt(path)

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://todos.example.com"
	cfg.Registry.PollIntervalSeconds = 7
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.API.BaseURL != "https://todos.example.com" {
		t.Errorf("base URL not persisted: %q", loaded.API.BaseURL)
	}
	if loaded.Registry.PollIntervalSeconds != 7 {
		t.Errorf("poll interval not persisted: %d", loaded.Registry.PollIntervalSeconds)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: https://partial.example.com\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := NewLoaderAt(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://partial.example.com" {
		t.Errorf("explicit value lost: %q", cfg.API.BaseURL)
	}
	if cfg.Registry.PollIntervalSeconds != 3 {
		t.Errorf("unset fields should keep defaults, got %d", cfg.Registry.PollIntervalSeconds)
	}
}

func TestEnvOverridesBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	t.Setenv(EnvAPIURL, "https://override.example.com")

	cfg, err := NewLoaderAt(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://override.example.com" {
		t.Errorf("env override not applied: %q", cfg.API.BaseURL)
	}
}
