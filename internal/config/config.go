package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all planboard configuration.
type Config struct {
	Port        int    `toml:"port"`
	PlansDir    string `toml:"plans_dir"`
	TodosDir    string `toml:"todos_dir"`
	InitialView string `toml:"initial_view"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:        8888,
		PlansDir:    "~/.claude/plans",
		TodosDir:    "~/.claude/todos",
		InitialView: "plans",
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	paths := configPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	// Expand ~ in paths
	cfg.PlansDir = expandHome(cfg.PlansDir)
	cfg.TodosDir = expandHome(cfg.TodosDir)

	return cfg, nil
}

// Validate checks operator-supplied values. An invalid port is an error the
// caller should treat as fatal; an unknown initial view falls back to
// "plans" with a warning.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be in 1..65535", c.Port)
	}
	if c.InitialView != "plans" && c.InitialView != "todos" {
		log.Printf("warning: unknown initial_view %q, falling back to plans", c.InitialView)
		c.InitialView = "plans"
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "planboard", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "planboard", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
