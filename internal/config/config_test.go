package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.Address() != ":8080" {
		t.Errorf("expected address :8080, got %s", cfg.HTTP.Address())
	}
	if cfg.HTTP.MaxUploadBytes() != 100<<20 {
		t.Errorf("expected 100MB upload limit, got %d", cfg.HTTP.MaxUploadBytes())
	}
	if cfg.History.Enabled {
		t.Error("expected history to be disabled by default")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yamlContent := `
logging:
  level: debug
  file: /tmp/stlcheck.log
http:
  port: 9090
history:
  enabled: true
  path: /tmp/history.db
watch:
  debounce: 250ms
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/stlcheck.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.MaxUploadMB != 100 {
		t.Errorf("expected upload limit default to survive, got %d", cfg.HTTP.MaxUploadMB)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/history.db" {
		t.Errorf("unexpected history config: %+v", cfg.History)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Port = 70000

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "http") {
		t.Errorf("expected http validation error, got %v", err)
	}
}

func TestValidateRejectsUnknownLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"

	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid log level to fail validation")
	}
}

func TestValidateHistoryNeedsPath(t *testing.T) {
	cfg := Default()
	cfg.History.Enabled = true
	cfg.History.Path = ""

	if err := cfg.Validate(); err == nil {
		t.Error("expected enabled history without path to fail validation")
	}
}

func TestValidateDebounceRange(t *testing.T) {
	cfg := Default()
	cfg.Watch.Debounce = time.Millisecond

	if err := cfg.Validate(); err == nil {
		t.Error("expected too short debounce to fail validation")
	}
}
