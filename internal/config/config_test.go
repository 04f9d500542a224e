package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Game.Duration != nil || cfg.Serve.Port != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[game]
duration = 4.5
sequence = ["ArrowUp", "ArrowUp", "ArrowLeft"]

[confetti]
enabled = false

[serve]
host = "127.0.0.1"
port = 2323
host-key = "/tmp/key"

[log]
level = "debug"
file = "/tmp/quicktime.log"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Duration == nil || *cfg.Game.Duration != 4.5 {
		t.Fatalf("unexpected duration: %v", cfg.Game.Duration)
	}
	if cfg.Game.Sequence == nil || !reflect.DeepEqual(*cfg.Game.Sequence, []string{"ArrowUp", "ArrowUp", "ArrowLeft"}) {
		t.Fatalf("unexpected sequence: %v", cfg.Game.Sequence)
	}
	if cfg.Confetti.Enabled == nil || *cfg.Confetti.Enabled {
		t.Fatalf("expected confetti disabled")
	}
	if *cfg.Serve.Host != "127.0.0.1" || *cfg.Serve.Port != 2323 || *cfg.Serve.HostKey != "/tmp/key" {
		t.Fatalf("unexpected serve config: %+v", cfg.Serve)
	}
	if *cfg.Log.Level != "debug" || *cfg.Log.File != "/tmp/quicktime.log" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nspeed = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.speed") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "quicktime", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/data", "quicktime", "quicktime.log") {
		t.Fatalf("unexpected log path %s", got)
	}
	if got := DefaultHostKeyPath(); got != filepath.Join("/data", "quicktime", "host_key") {
		t.Fatalf("unexpected host key path %s", got)
	}
}
