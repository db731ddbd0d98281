package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ExportRoot string `toml:"export_root"`
	DBPath     string `toml:"db_path"`
	TopWords   int    `toml:"top_words"`
	TopEmojis  int    `toml:"top_emojis"`
	GapMinutes int    `toml:"gap_minutes"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ExportRoot: filepath.Join(home, "chats"),
		DBPath:     filepath.Join(home, ".config", "chatscope", "chatscope.db"),
		TopWords:   50,
		TopEmojis:  20,
		GapMinutes: 30,
	}

	cfgPath := filepath.Join(home, ".config", "chatscope", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ExportRoot = expandHome(cfg.ExportRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
