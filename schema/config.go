package schema

import (
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ServerConfig defines defaults and limits for the game engine.
type ServerConfig struct {
	DataDir          string
	Worlds           []WorldSpec
	AutosaveInterval time.Duration
	// SpawnRadius is the radius, in chunks, of the spawn region generated
	// around the origin when a world starts.
	SpawnRadius int
	TickInterval time.Duration
}

// WorldSpec declares a world to create at startup.
type WorldSpec struct {
	Name WorldID
	// Seed drives chunk generation. Zero means derive from the name.
	Seed int64
}

// DefaultScrollbackLines is the default console scrollback capacity.
const DefaultScrollbackLines = 1000

// DefaultTickInterval is the engine tick period (20 ticks per second).
const DefaultTickInterval = 50 * time.Millisecond

// NormalizeServerConfig applies defaults and validates the config.
func NormalizeServerConfig(cfg ServerConfig) (ServerConfig, error) {
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ServerConfig{}, err
		}
		cfg.DataDir = filepath.Join(home, ".steel-tui", "data")
	}
	if len(cfg.Worlds) == 0 {
		cfg.Worlds = []WorldSpec{{Name: "world"}}
	}
	seen := make(map[WorldID]bool, len(cfg.Worlds))
	for i, spec := range cfg.Worlds {
		if err := ValidateWorldID(spec.Name); err != nil {
			return ServerConfig{}, err
		}
		if seen[spec.Name] {
			return ServerConfig{}, ErrInvalidWorld
		}
		seen[spec.Name] = true
		if spec.Seed == 0 {
			cfg.Worlds[i].Seed = seedFromName(spec.Name)
		}
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = 5 * time.Minute
	}
	if cfg.SpawnRadius <= 0 {
		cfg.SpawnRadius = 2
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	return cfg, nil
}

// ValidateWorldID ensures a world id matches [a-z0-9._-] with no normalization.
func ValidateWorldID(id WorldID) error {
	raw := string(id)
	if raw == "" || strings.TrimSpace(raw) != raw {
		return ErrInvalidWorld
	}
	for _, r := range raw {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '.' || r == '_' || r == '-' {
			continue
		}
		return ErrInvalidWorld
	}
	return nil
}

func seedFromName(name WorldID) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	seed := int64(h.Sum64())
	if seed == 0 {
		seed = 1
	}
	return seed
}
