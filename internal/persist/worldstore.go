package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alvsch/steel-tui/schema"
	"pkt.systems/pslog"
)

// WorldStore persists chunk records and level data as JSON files, one
// directory per world under the root.
type WorldStore struct {
	root string
	log  pslog.Logger
}

// NewWorldStore constructs a world store rooted at dir.
func NewWorldStore(dir string, logger pslog.Logger) (*WorldStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("world store directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("world_dir", dir)
	}
	return &WorldStore{root: dir, log: logger}, nil
}

// SaveChunk writes one chunk record.
func (s *WorldStore) SaveChunk(ctx context.Context, world schema.WorldID, rec schema.ChunkRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeJSON(s.chunkPath(world, rec.Pos), rec); err != nil {
		return err
	}
	if s.log != nil {
		s.log.Trace("chunk save ok", "world", world, "chunk", rec.Pos.String())
	}
	return nil
}

// LoadChunk reads one chunk record. A chunk that was never saved
// reports (zero, false, nil).
func (s *WorldStore) LoadChunk(ctx context.Context, world schema.WorldID, pos schema.ChunkPos) (schema.ChunkRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return schema.ChunkRecord{}, false, err
	}
	var rec schema.ChunkRecord
	ok, err := readJSON(s.chunkPath(world, pos), &rec)
	if err != nil {
		return schema.ChunkRecord{}, false, err
	}
	if !ok {
		return schema.ChunkRecord{}, false, nil
	}
	if len(rec.Heights) != schema.ChunkSize*schema.ChunkSize {
		return schema.ChunkRecord{}, false, fmt.Errorf("chunk %s: malformed heightmap", pos)
	}
	return rec, true, nil
}

// SaveMeta writes the level data for a world.
func (s *WorldStore) SaveMeta(ctx context.Context, world schema.WorldID, meta schema.WorldMeta) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeJSON(s.metaPath(world), meta); err != nil {
		return err
	}
	if s.log != nil {
		s.log.Trace("level save ok", "world", world, "time", meta.Time)
	}
	return nil
}

// LoadMeta reads the level data for a world.
func (s *WorldStore) LoadMeta(ctx context.Context, world schema.WorldID) (schema.WorldMeta, bool, error) {
	if err := ctx.Err(); err != nil {
		return schema.WorldMeta{}, false, err
	}
	var meta schema.WorldMeta
	ok, err := readJSON(s.metaPath(world), &meta)
	if err != nil {
		return schema.WorldMeta{}, false, err
	}
	if !ok {
		if s.log != nil {
			s.log.Debug("level load miss", "world", world)
		}
		return schema.WorldMeta{}, false, nil
	}
	return meta, true, nil
}

func (s *WorldStore) worldDir(world schema.WorldID) string {
	name := sanitize(string(world))
	if name == "" {
		name = "world"
	}
	return filepath.Join(s.root, name)
}

func (s *WorldStore) chunkPath(world schema.WorldID, pos schema.ChunkPos) string {
	return filepath.Join(s.worldDir(world), fmt.Sprintf("c.%d.%d.json", pos.X, pos.Z))
}

func (s *WorldStore) metaPath(world schema.WorldID) string {
	return filepath.Join(s.worldDir(world), "level.json")
}
