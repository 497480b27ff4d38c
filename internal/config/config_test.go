package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" || cfg.Server.BasePath != "/v1" {
		t.Fatalf("defaults = %+v", cfg.Server)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	data := []byte("server:\n  addr: \"0.0.0.0:9000\"\nlog:\n  level: debug\n")
	if err := os.WriteFile(filepath.Join(dir, "crewdesk.yml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.BasePath != "/v1" {
		t.Fatalf("base path should keep its default, got %q", cfg.Server.BasePath)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("level = %q", cfg.Log.Level)
	}
}

func TestValidateRejectsUnknownLevel(t *testing.T) {
	if _, err := FromYAML([]byte("log:\n  level: loud\n")); err == nil {
		t.Fatal("expected validation error")
	}
}
