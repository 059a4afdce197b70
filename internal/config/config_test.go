package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"commandcenter/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host, got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 6280 {
		t.Errorf("expected default port 6280, got %d", cfg.Server.Port)
	}
	if cfg.Events.BufferSize != 256 {
		t.Errorf("expected default event buffer 256, got %d", cfg.Events.BufferSize)
	}
	if cfg.Admin.Username != "admin" {
		t.Errorf("expected default admin username, got %q", cfg.Admin.Username)
	}
	if got := cfg.Auth.GetSessionDuration(); got != 24*time.Hour {
		t.Errorf("expected default session duration 24h, got %v", got)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  host: "127.0.0.1"
  port: 9000
auth:
  session_duration: "1h"
events:
  buffer_size: 32
admin:
  username: "ops"
  password: "not-the-default"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if got := cfg.Auth.GetSessionDuration(); got != time.Hour {
		t.Errorf("expected 1h session duration, got %v", got)
	}
	if cfg.Events.BufferSize != 32 {
		t.Errorf("expected buffer 32, got %d", cfg.Events.BufferSize)
	}
	if cfg.Admin.Username != "ops" || cfg.Admin.Password != "not-the-default" {
		t.Errorf("unexpected admin config %+v", cfg.Admin)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetSessionDuration_Invalid(t *testing.T) {
	auth := config.Auth{SessionDuration: "bogus"}
	if got := auth.GetSessionDuration(); got != 24*time.Hour {
		t.Errorf("expected 24h fallback, got %v", got)
	}
}
