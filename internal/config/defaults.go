package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			TickRate: 60,
			Seed:     0,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/sessions.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.t2048/t2048.log",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Theme: map[int]string{
			2:    "white",
			4:    "bright_white",
			8:    "yellow",
			16:   "orange",
			32:   "red",
			64:   "bright_red",
			128:  "bright_yellow",
			256:  "green",
			512:  "bright_green",
			1024: "cyan",
			2048: "bright_cyan",
			4096: "blue",
			8192: "bright_magenta",
		},
	}
}
