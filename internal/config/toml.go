// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game     GameConfig     `toml:"game"`
	Confetti ConfettiConfig `toml:"confetti"`
	Serve    ServeConfig    `toml:"serve"`
	Log      LogConfig      `toml:"log"`
}

// GameConfig maps round settings.
type GameConfig struct {
	Duration *float64  `toml:"duration"`
	Sequence *[]string `toml:"sequence"`
}

// ConfettiConfig maps win effect settings.
type ConfettiConfig struct {
	Enabled *bool `toml:"enabled"`
}

// ServeConfig maps SSH host settings.
type ServeConfig struct {
	Host    *string `toml:"host"`
	Port    *int    `toml:"port"`
	HostKey *string `toml:"host-key"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
