package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alvsch/steel-tui/schema"
	"pkt.systems/pslog"
)

// PlayerStore persists the whole player roster in one JSON file.
type PlayerStore struct {
	path string
	log  pslog.Logger
}

type rosterFile struct {
	Players []schema.Player `json:"players"`
}

// NewPlayerStore constructs a player store under dir.
func NewPlayerStore(dir string, logger pslog.Logger) (*PlayerStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("player store directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("player_file", filepath.Join(dir, "players.json"))
	}
	return &PlayerStore{path: filepath.Join(dir, "players.json"), log: logger}, nil
}

// SaveAll writes the roster and returns the number of players written.
func (s *PlayerStore) SaveAll(ctx context.Context, players []schema.Player) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := writeJSON(s.path, rosterFile{Players: players}); err != nil {
		return 0, err
	}
	if s.log != nil {
		s.log.Trace("roster save ok", "count", len(players))
	}
	return len(players), nil
}

// LoadAll reads the roster. A store that was never written reports an
// empty roster.
func (s *PlayerStore) LoadAll(ctx context.Context) ([]schema.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var roster rosterFile
	ok, err := readJSON(s.path, &roster)
	if err != nil {
		return nil, err
	}
	if !ok {
		if s.log != nil {
			s.log.Debug("roster load miss")
		}
		return nil, nil
	}
	return roster.Players, nil
}
