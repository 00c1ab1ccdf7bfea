package core

import (
	"context"
	"sync"

	"github.com/Alvsch/steel-tui/internal/tasks"
	"github.com/Alvsch/steel-tui/schema"
	"pkt.systems/pslog"
)

// World owns one level: its seeded chunk map, its player set, the
// world clock and a tracker for background chunk work. All mutable
// state is guarded by mu; store I/O never runs under the lock.
type World struct {
	id      schema.WorldID
	seed    int64
	store   WorldStore
	tracker *tasks.Tracker
	logger  pslog.Logger

	mu      sync.Mutex
	chunks  map[schema.ChunkPos]*chunk
	players map[schema.PlayerID]schema.Player
	time    int64
}

func newWorld(spec schema.WorldSpec, store WorldStore, logger pslog.Logger) *World {
	return &World{
		id:      spec.Name,
		seed:    spec.Seed,
		store:   store,
		tracker: &tasks.Tracker{},
		logger:  logger.With("world", spec.Name),
		chunks:  make(map[schema.ChunkPos]*chunk),
		players: make(map[schema.PlayerID]schema.Player),
	}
}

func (w *World) ID() schema.WorldID { return w.id }

func (w *World) Seed() int64 { return w.seed }

// Time returns the world clock in ticks.
func (w *World) Time() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.time
}

func (w *World) SetTime(t int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.time = t
}

// Tick advances the world clock by one.
func (w *World) Tick() {
	w.mu.Lock()
	w.time++
	w.mu.Unlock()
}

// start restores the level clock and schedules spawn region generation
// on the world tracker.
func (w *World) start(ctx context.Context, spawnRadius int) {
	meta, ok, err := w.store.LoadMeta(ctx, w.id)
	if err != nil {
		w.logger.Warn("world meta load failed", "err", err)
	}
	if ok {
		w.SetTime(meta.Time)
	}
	r := int32(spawnRadius)
	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			pos := schema.ChunkPos{X: x, Z: z}
			if !w.tracker.Go(func() { w.ensureChunk(ctx, pos) }) {
				return
			}
		}
	}
	w.logger.Info("world ready", "seed", w.seed, "spawn_radius", spawnRadius)
}

// ensureChunk returns the chunk at pos, loading it from the store or
// generating it on first use. Freshly generated chunks start dirty so
// the next save persists them.
func (w *World) ensureChunk(ctx context.Context, pos schema.ChunkPos) *chunk {
	w.mu.Lock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.Unlock()
		return c
	}
	w.mu.Unlock()

	rec, ok, err := w.store.LoadChunk(ctx, w.id, pos)
	if err != nil {
		w.logger.Warn("chunk load failed", "chunk", pos.String(), "err", err)
	}
	var c *chunk
	if ok {
		c = &chunk{pos: pos, heights: rec.Heights}
	} else {
		c = generateChunk(w.seed, pos)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.chunks[pos]; ok {
		// Lost the race against another loader.
		return existing
	}
	w.chunks[pos] = c
	return c
}

// ChunkCount reports how many chunks are loaded.
func (w *World) ChunkCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.chunks)
}

// saveDirtyChunks persists every dirty chunk. Failures are logged and
// skipped, never aborting the walk. A chunk is only marked clean when
// it did not change while its snapshot was being written.
func (w *World) saveDirtyChunks(ctx context.Context) int {
	type snapshot struct {
		c   *chunk
		rec schema.ChunkRecord
		gen uint64
	}
	w.mu.Lock()
	var snaps []snapshot
	for _, c := range w.chunks {
		if c.dirty {
			snaps = append(snaps, snapshot{c: c, rec: c.record(), gen: c.gen})
		}
	}
	w.mu.Unlock()

	saved := 0
	for _, s := range snaps {
		if err := w.store.SaveChunk(ctx, w.id, s.rec); err != nil {
			w.logger.Warn("chunk save failed", "chunk", s.rec.Pos.String(), "err", err)
			continue
		}
		w.mu.Lock()
		if s.c.gen == s.gen {
			s.c.dirty = false
		}
		w.mu.Unlock()
		saved++
	}
	return saved
}

// saveMeta persists the level data. Time moves every tick, so this
// always writes.
func (w *World) saveMeta(ctx context.Context) {
	w.mu.Lock()
	meta := schema.WorldMeta{Seed: w.seed, Time: w.time}
	w.mu.Unlock()
	if err := w.store.SaveMeta(ctx, w.id, meta); err != nil {
		w.logger.Warn("world meta save failed", "err", err)
	}
}
