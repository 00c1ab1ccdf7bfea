package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("server.worlds", cfg.Server.Worlds)
	v.SetDefault("server.autosave_interval_seconds", cfg.Server.AutosaveIntervalSeconds)
	v.SetDefault("server.spawn_radius", cfg.Server.SpawnRadius)
	v.SetDefault("server.tick_interval_ms", cfg.Server.TickIntervalMillis)
	v.SetDefault("console.scrollback_lines", cfg.Console.ScrollbackLines)
	v.SetDefault("ssh.enabled", cfg.SSH.Enabled)
	v.SetDefault("ssh.addr", cfg.SSH.Addr)
	v.SetDefault("ssh.host_key_path", cfg.SSH.HostKeyPath)
	v.SetDefault("ssh.authorized_keys_path", cfg.SSH.AuthorizedKeysPath)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// A missing config file is fine: the server runs on defaults until
	// the operator writes one with "config init".
	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validateLoggingConfig(cfg.Logging); err != nil {
		return Config{}, err
	}
	if err := validateSSHConfig(cfg.SSH); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateLoggingConfig(cfg LoggingConfig) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "trace", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unsupported logging.level %q", cfg.Level)
}

func validateSSHConfig(cfg SSHConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("ssh.addr is required when ssh.enabled is true")
	}
	if strings.TrimSpace(cfg.HostKeyPath) == "" {
		return fmt.Errorf("ssh.host_key_path is required when ssh.enabled is true")
	}
	if strings.TrimSpace(cfg.AuthorizedKeysPath) == "" {
		return fmt.Errorf("ssh.authorized_keys_path is required when ssh.enabled is true")
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.DataDir = expandEnv(cfg.DataDir)
	cfg.SSH.HostKeyPath = expandEnv(cfg.SSH.HostKeyPath)
	cfg.SSH.AuthorizedKeysPath = expandEnv(cfg.SSH.AuthorizedKeysPath)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
