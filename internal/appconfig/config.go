package appconfig

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Alvsch/steel-tui/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	DataDir       string        `mapstructure:"data_dir" yaml:"data_dir"`
	Server        ServerConfig  `mapstructure:"server" yaml:"server"`
	Console       ConsoleConfig `mapstructure:"console" yaml:"console"`
	SSH           SSHConfig     `mapstructure:"ssh" yaml:"ssh"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ServerConfig controls the game engine.
type ServerConfig struct {
	Worlds                  []WorldConfig `mapstructure:"worlds" yaml:"worlds"`
	AutosaveIntervalSeconds int           `mapstructure:"autosave_interval_seconds" yaml:"autosave_interval_seconds"`
	SpawnRadius             int           `mapstructure:"spawn_radius" yaml:"spawn_radius"`
	TickIntervalMillis      int           `mapstructure:"tick_interval_ms" yaml:"tick_interval_ms"`
}

// WorldConfig declares one world. A zero seed derives one from the name.
type WorldConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	Seed int64  `mapstructure:"seed" yaml:"seed"`
}

// ConsoleConfig controls the operator console.
type ConsoleConfig struct {
	ScrollbackLines int `mapstructure:"scrollback_lines" yaml:"scrollback_lines"`
}

// SSHConfig configures the remote console server.
type SSHConfig struct {
	Enabled            bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr               string `mapstructure:"addr" yaml:"addr"`
	HostKeyPath        string `mapstructure:"host_key_path" yaml:"host_key_path"`
	AuthorizedKeysPath string `mapstructure:"authorized_keys_path" yaml:"authorized_keys_path"`
}

// LoggingConfig controls the console log sink.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		DataDir:       filepath.Join(home, ".steel-tui", "data"),
		Server: ServerConfig{
			Worlds:                  []WorldConfig{{Name: "world"}},
			AutosaveIntervalSeconds: 300,
			SpawnRadius:             2,
			TickIntervalMillis:      50,
		},
		Console: ConsoleConfig{
			ScrollbackLines: schema.DefaultScrollbackLines,
		},
		SSH: SSHConfig{
			Enabled:            false,
			Addr:               ":2522",
			HostKeyPath:        filepath.Join(home, ".steel-tui", "ssh_host_key"),
			AuthorizedKeysPath: filepath.Join(home, ".steel-tui", "authorized_keys"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".steel-tui", "config.yaml"), nil
}

// EngineConfig converts the file form into the engine's config.
func (c Config) EngineConfig() schema.ServerConfig {
	worlds := make([]schema.WorldSpec, 0, len(c.Server.Worlds))
	for _, w := range c.Server.Worlds {
		worlds = append(worlds, schema.WorldSpec{Name: schema.WorldID(w.Name), Seed: w.Seed})
	}
	return schema.ServerConfig{
		DataDir:          c.DataDir,
		Worlds:           worlds,
		AutosaveInterval: time.Duration(c.Server.AutosaveIntervalSeconds) * time.Second,
		SpawnRadius:      c.Server.SpawnRadius,
		TickInterval:     time.Duration(c.Server.TickIntervalMillis) * time.Millisecond,
	}
}
