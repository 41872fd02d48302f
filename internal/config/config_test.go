package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, xdgHome, content string) {
	t.Helper()
	dir := filepath.Join(xdgHome, "planboard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config file present

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8888 {
		t.Errorf("Port = %d, want 8888", cfg.Port)
	}
	if cfg.InitialView != "plans" {
		t.Errorf("InitialView = %q, want plans", cfg.InitialView)
	}
	if strings.HasPrefix(cfg.PlansDir, "~") {
		t.Errorf("PlansDir not expanded: %q", cfg.PlansDir)
	}
	if strings.HasPrefix(cfg.TodosDir, "~") {
		t.Errorf("TodosDir not expanded: %q", cfg.TodosDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	writeConfig(t, xdg, `
port = 9999
plans_dir = "/tmp/plans"
todos_dir = "/tmp/todos"
initial_view = "todos"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.PlansDir != "/tmp/plans" {
		t.Errorf("PlansDir = %q, want /tmp/plans", cfg.PlansDir)
	}
	if cfg.InitialView != "todos" {
		t.Errorf("InitialView = %q, want todos", cfg.InitialView)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	writeConfig(t, xdg, `plans_dir = "/srv/plans"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8888 {
		t.Errorf("Port = %d, want default 8888", cfg.Port)
	}
	if cfg.PlansDir != "/srv/plans" {
		t.Errorf("PlansDir = %q, want /srv/plans", cfg.PlansDir)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	writeConfig(t, xdg, `port = "not a number`)

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestValidatePort(t *testing.T) {
	for _, port := range []int{0, -1, 65536, 700000} {
		cfg := DefaultConfig()
		cfg.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate accepted port %d", port)
		}
	}

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate rejected default config: %v", err)
	}
}

func TestValidateViewFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialView = "bogus"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.InitialView != "plans" {
		t.Errorf("InitialView = %q, want plans fallback", cfg.InitialView)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	got := expandHome("~/x/y")
	want := filepath.Join(home, "x", "y")
	if got != want {
		t.Errorf("expandHome = %q, want %q", got, want)
	}

	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expandHome changed absolute path: %q", got)
	}
}

func TestAddr(t *testing.T) {
	cfg := Config{Port: 8888}
	if got := cfg.Addr(); got != ":8888" {
		t.Errorf("Addr = %q, want :8888", got)
	}
}
