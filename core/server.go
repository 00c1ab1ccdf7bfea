// Package core is the game engine: worlds with seeded chunk maps and
// player sets, the tick loop, autosave, operator command scheduling
// and the ordered shutdown drain.
package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/Alvsch/steel-tui/internal/persist"
	"github.com/Alvsch/steel-tui/internal/tasks"
	"github.com/Alvsch/steel-tui/schema"
	"pkt.systems/pslog"
)

// Server owns the worlds and the server-level task tracker. Run serves
// until its context is cancelled, then drains: pending work first,
// then world data, then player data.
type Server struct {
	cfg      schema.ServerConfig
	worlds   []*World
	byID     map[schema.WorldID]*World
	tracker  *tasks.Tracker
	players  PlayerStore
	commands CommandHandler
	logger   pslog.Logger
	stopped  func()
}

// NewServer builds the engine from config, filling in file-backed
// stores under the data dir when none are injected.
func NewServer(cfg schema.ServerConfig, deps ServerDeps) (*Server, error) {
	normalized, err := schema.NormalizeServerConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized

	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	worldStore := deps.WorldStore
	if worldStore == nil {
		worldStore, err = persist.NewWorldStore(filepath.Join(cfg.DataDir, "worlds"), logger)
		if err != nil {
			return nil, err
		}
	}
	playerStore := deps.PlayerStore
	if playerStore == nil {
		playerStore, err = persist.NewPlayerStore(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
	}

	s := &Server{
		cfg:      cfg,
		byID:     make(map[schema.WorldID]*World, len(cfg.Worlds)),
		tracker:  &tasks.Tracker{},
		players:  playerStore,
		commands: deps.Commands,
		logger:   logger,
		stopped:  deps.OnStopped,
	}
	for _, spec := range cfg.Worlds {
		w := newWorld(spec, worldStore, logger)
		s.worlds = append(s.worlds, w)
		s.byID[w.id] = w
	}
	return s, nil
}

// SetCommands wires the command handler. Must happen before Run; the
// handler usually needs the server back, hence the two-step wiring.
func (s *Server) SetCommands(h CommandHandler) { s.commands = h }

// Run starts the worlds, serves until ctx is cancelled and then runs
// the shutdown drain. The drain is detached from cancellation so a
// second interrupt can never abort persistence.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("server starting", "worlds", len(s.worlds), "data_dir", s.cfg.DataDir)
	s.restorePlayers(ctx)
	for _, w := range s.worlds {
		w.start(ctx, s.cfg.SpawnRadius)
	}
	s.serve(ctx)
	s.drain(context.WithoutCancel(ctx))
	return nil
}

func (s *Server) restorePlayers(ctx context.Context) {
	players, err := s.players.LoadAll(ctx)
	if err != nil {
		s.logger.Warn("player data load failed", "err", err)
		return
	}
	for _, p := range players {
		w, ok := s.byID[p.World]
		if !ok {
			w = s.worlds[0]
		}
		w.putPlayer(p)
	}
	if len(players) > 0 {
		s.logger.Info("player data restored", "count", len(players))
	}
}

func (s *Server) serve(ctx context.Context) {
	tick := time.NewTicker(s.cfg.TickInterval)
	defer tick.Stop()
	autosave := time.NewTicker(s.cfg.AutosaveInterval)
	defer autosave.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			for _, w := range s.worlds {
				w.Tick()
			}
		case <-autosave.C:
			s.autosave(ctx)
		}
	}
}

func (s *Server) autosave(ctx context.Context) {
	chunks := 0
	for _, w := range s.worlds {
		chunks += w.saveDirtyChunks(ctx)
		w.saveMeta(ctx)
	}
	s.logger.Debug("autosave complete", "chunks", chunks)
}

// Dispatch schedules a command line on the server tracker. Once the
// drain has closed the tracker the line is dropped.
func (s *Server) Dispatch(ctx context.Context, origin schema.CommandOrigin, line string) {
	accepted := s.tracker.Go(func() {
		if s.commands == nil {
			s.logger.Warn("no command handler wired", "line", line)
			return
		}
		s.commands.Handle(ctx, origin, line)
	})
	if !accepted {
		s.logger.Debug("command dropped, server stopping", "line", line)
	}
}

// drain runs the ordered shutdown sequence exactly once, after serve
// returns. Persistence failures are logged and never stop the
// remaining steps.
func (s *Server) drain(ctx context.Context) {
	s.logger.Info("Waiting for pending tasks...")
	s.tracker.Close()
	s.tracker.Wait()
	for _, w := range s.worlds {
		w.tracker.Close()
		w.tracker.Wait()
	}

	s.logger.Info("Saving world data...")
	total := 0
	for _, w := range s.worlds {
		total += w.saveDirtyChunks(ctx)
		w.saveMeta(ctx)
	}
	s.logger.Info(fmt.Sprintf("Saved %d chunks", total))

	s.logger.Info("Saving player data...")
	var players []schema.Player
	for _, w := range s.worlds {
		players = append(players, w.Players()...)
	}
	count, err := s.players.SaveAll(ctx, players)
	if err != nil {
		s.logger.Error("Failed to save player data", "err", err)
	} else {
		s.logger.Info(fmt.Sprintf("Saved %d players", count))
	}

	s.logger.Info("Server stopped")
	if s.stopped != nil {
		s.stopped()
	}
}

// Players returns every player across all worlds, sorted by name.
func (s *Server) Players() []schema.Player {
	var out []schema.Player
	for _, w := range s.worlds {
		out = append(out, w.Players()...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Worlds lists the world ids in configuration order.
func (s *Server) Worlds() []schema.WorldID {
	out := make([]schema.WorldID, len(s.worlds))
	for i, w := range s.worlds {
		out[i] = w.id
	}
	return out
}

// World returns a world by id.
func (s *Server) World(id schema.WorldID) (*World, bool) {
	w, ok := s.byID[id]
	return w, ok
}

// WorldTime reports a world's clock.
func (s *Server) WorldTime(id schema.WorldID) (int64, error) {
	w, ok := s.byID[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", schema.ErrWorldNotFound, id)
	}
	return w.Time(), nil
}

// SetWorldTime sets a world's clock.
func (s *Server) SetWorldTime(id schema.WorldID, t int64) error {
	w, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", schema.ErrWorldNotFound, id)
	}
	w.SetTime(t)
	return nil
}

// WorldSeed reports a world's generation seed.
func (s *Server) WorldSeed(id schema.WorldID) (int64, error) {
	w, ok := s.byID[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", schema.ErrWorldNotFound, id)
	}
	return w.Seed(), nil
}

// SaveAll persists dirty chunks, level data and the player roster on
// demand, returning what was written.
func (s *Server) SaveAll(ctx context.Context) (chunks, players int, err error) {
	for _, w := range s.worlds {
		chunks += w.saveDirtyChunks(ctx)
		w.saveMeta(ctx)
	}
	var roster []schema.Player
	for _, w := range s.worlds {
		roster = append(roster, w.Players()...)
	}
	players, err = s.players.SaveAll(ctx, roster)
	return chunks, players, err
}
