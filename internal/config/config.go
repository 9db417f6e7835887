package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ExportsRoot   string `toml:"exports_root"`
	DBPath        string `toml:"db_path"`
	PreviewLength int    `toml:"preview_length"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ExportsRoot:   filepath.Join(home, "Downloads"),
		DBPath:        filepath.Join(home, ".local", "share", "wsd", "wsd.db"),
		PreviewLength: 80,
	}

	cfgPath := filepath.Join(home, ".config", "wsd", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ExportsRoot = expandHome(cfg.ExportsRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 80
	}

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
