package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "esglens.yaml", "threads: 4\nmax_bytes: 123\nenable: vague,cherry\nrules: pack.yml\nlogging:\n  format: text\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("expected threads=4, got %#v", cfg.Threads)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 123 {
		t.Fatalf("expected max_bytes=123, got %#v", cfg.MaxBytes)
	}
	if cfg.Enable == nil || *cfg.Enable != "vague,cherry" {
		t.Fatalf("expected enable list, got %#v", cfg.Enable)
	}
	if cfg.Rules == nil || *cfg.Rules != "pack.yml" {
		t.Fatalf("expected rules=pack.yml, got %#v", cfg.Rules)
	}
	if cfg.LogFormat() != "text" || cfg.LogLevel() != "info" {
		t.Fatalf("unexpected logging config: %s/%s", cfg.LogFormat(), cfg.LogLevel())
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "esglens.yaml", "threads: [\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "esglens.yaml", "threads: 1\n")
	writeTemp(t, dir, ".esglens.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 7 {
		t.Fatalf("expected threads=7 from .esglens.yaml, got %#v", cfg.Threads)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected error when no local config exists")
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "esglens")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, cfgDir, "config.yml", "company: Acme\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Company == nil || *cfg.Company != "Acme" {
		t.Fatalf("expected company from global config, got %#v", cfg.Company)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); err == nil {
		t.Fatal("expected error when no global config dir exists")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ESGLENS_LOG_LEVEL", "debug")
	t.Setenv("ESGLENS_LOG_FORMAT", "")
	t.Setenv("ESGLENS_RULES", "/etc/esglens/rules.yml")
	text := "text"
	fc := FileConfig{Logging: &LoggingConfig{Format: &text}}
	got := fc.ApplyEnv()
	if got.LogLevel() != "debug" || got.LogFormat() != "text" {
		t.Fatalf("unexpected logging after env: %s/%s", got.LogFormat(), got.LogLevel())
	}
	if got.Rules == nil || *got.Rules != "/etc/esglens/rules.yml" {
		t.Fatalf("expected rules from env, got %#v", got.Rules)
	}
	if fc.Logging.Level != nil {
		t.Fatal("ApplyEnv must not mutate the receiver's logging block")
	}
}
