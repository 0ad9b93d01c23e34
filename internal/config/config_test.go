package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded default invalid: %v", err)
	}

	def := Default()
	if cfg.Game != def.Game || cfg.Storage != def.Storage || cfg.Log != def.Log || cfg.SSH != def.SSH {
		t.Errorf("embedded default %+v differs from Default() %+v", cfg, def)
	}
	if len(cfg.Theme) != len(def.Theme) {
		t.Errorf("theme has %d entries, want %d", len(cfg.Theme), len(def.Theme))
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
game:
  seed: 99
ssh:
  idle_timeout: 5m
theme:
  2: magenta
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Game.Seed != 99 {
		t.Errorf("Seed = %d, want 99", cfg.Game.Seed)
	}
	if cfg.Game.TickRate != 60 {
		t.Errorf("TickRate = %d, want default 60", cfg.Game.TickRate)
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, want 5m", cfg.SSH.IdleTimeout)
	}

	theme, err := cfg.TileTheme()
	if err != nil {
		t.Fatalf("TileTheme() failed: %v", err)
	}
	if theme[2] != core.ColorMagenta {
		t.Errorf("theme[2] = %v, want magenta", theme[2])
	}
	if theme[2048] != core.ColorBrightCyan {
		t.Errorf("theme[2048] = %v, want default bright_cyan", theme[2048])
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom config")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"tick rate", func(c *Config) { c.Game.TickRate = 0 }, "tick_rate"},
		{"db path", func(c *Config) { c.Storage.DBPath = "" }, "db_path"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"idle timeout", func(c *Config) { c.SSH.IdleTimeout = -time.Second }, "idle_timeout"},
		{"theme color", func(c *Config) { c.Theme[4] = "plaid" }, "unknown color"},
		{"theme value", func(c *Config) { c.Theme[6] = "red" }, "not a tile value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandHome("~/.t2048/x.db"); got != filepath.Join(home, ".t2048/x.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome should leave absolute paths alone, got %q", got)
	}
}

func TestRuntimeConfig(t *testing.T) {
	cfg := Default()
	cfg.Game.Seed = 7

	rc := cfg.RuntimeConfig(100, 40)
	if rc.ScreenW != 100 || rc.ScreenH != 40 || rc.Seed != 7 || rc.TickRate != 60 {
		t.Errorf("RuntimeConfig = %+v", rc)
	}
}
