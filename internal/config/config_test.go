package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("StoreBackend = %s, want memory", cfg.StoreBackend)
	}
	if !cfg.FallbackEnabled {
		t.Error("FallbackEnabled default should be true")
	}
	if cfg.AIMaxRetries != 2 {
		t.Errorf("AIMaxRetries = %d, want 2", cfg.AIMaxRetries)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 || cfg.StoreBackend != "sqlite" || !cfg.Debug {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "etcd")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnd.yaml")
	body := `
server:
  port: 7000
store:
  backend: postgres
ai:
  max_retries: 5
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LEARND_CONFIG", path)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// File values win over env where set, env defaults apply elsewhere.
	if cfg.Port != 7000 {
		t.Errorf("Port = %d, want file's 7000", cfg.Port)
	}
	if cfg.StoreBackend != "postgres" {
		t.Errorf("StoreBackend = %s, want postgres", cfg.StoreBackend)
	}
	if cfg.AIMaxRetries != 5 {
		t.Errorf("AIMaxRetries = %d, want 5", cfg.AIMaxRetries)
	}
	if cfg.SQLitePath != "./learnd.db" {
		t.Errorf("SQLitePath = %s, want default", cfg.SQLitePath)
	}
}
