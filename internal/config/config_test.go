package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"vrpls/internal/config"
)

func TestLoadDefaultsWithNoFile(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.JWTMode != "dev" {
		t.Errorf("JWTMode = %q, want dev", cfg.JWTMode)
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vrpls.yaml")
	if err := os.WriteFile(path, []byte("regretCoeff: 2.5\nlistenAddr: \":9090\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RegretCoeff != 2.5 {
		t.Errorf("RegretCoeff = %v, want 2.5", cfg.RegretCoeff)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", cfg.ListenAddr)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vrpls.yaml")
	if err := os.WriteFile(path, []byte("regretCoeff: 2.5\nlistenAddr: \":9090\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("VRPLS_REGRET_COEFF", "3.14")
	t.Setenv("PORT", "3000")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RegretCoeff != 3.14 {
		t.Errorf("RegretCoeff = %v, want 3.14", cfg.RegretCoeff)
	}
	if cfg.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q, want :3000", cfg.ListenAddr)
	}
}
