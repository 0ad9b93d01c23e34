// Package config provides YAML-based configuration loading for the game,
// the SSH server and the session log.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Config is the complete application configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	SSH      SSHConfig      `yaml:"ssh"`
	Spectate SpectateConfig `yaml:"spectate"`
	Theme    map[int]string `yaml:"theme"` // tile value -> color name
}

// GameConfig defines simulation parameters.
type GameConfig struct {
	TickRate int   `yaml:"tick_rate"`
	Seed     int64 `yaml:"seed"` // 0 = seed from current time
}

// StorageConfig locates the session log database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // used by local play; empty = discard
}

// SSHConfig configures the wish server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // empty = ~/.t2048/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// SpectateConfig configures the websocket spectator endpoint.
type SpectateConfig struct {
	Address string `yaml:"address"` // empty = disabled
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Game.TickRate <= 0 || c.Game.TickRate > 240 {
		errs = append(errs, fmt.Errorf("game.tick_rate must be in 1..240, got %d", c.Game.TickRate))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path must not be empty"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, errors.New("ssh.idle_timeout must not be negative"))
	}
	if _, err := c.TileTheme(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// TileTheme converts the theme section to tile colors.
func (c Config) TileTheme() (t2048.Theme, error) {
	theme := make(t2048.Theme, len(c.Theme))
	for value, name := range c.Theme {
		if value < 2 || value&(value-1) != 0 {
			return nil, fmt.Errorf("theme: %d is not a tile value", value)
		}
		color, err := core.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("theme: %w", err)
		}
		theme[value] = color
	}
	return theme, nil
}

// RuntimeConfig builds the platform runtime config for the given screen.
func (c Config) RuntimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: c.Game.TickRate,
		Seed:     c.Game.Seed,
	}
}
