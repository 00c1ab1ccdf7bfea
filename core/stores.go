package core

import (
	"context"

	"github.com/Alvsch/steel-tui/schema"
)

// WorldStore persists chunk records and level data per world. The
// load methods report a missing entry as (zero, false, nil).
type WorldStore interface {
	SaveChunk(ctx context.Context, world schema.WorldID, rec schema.ChunkRecord) error
	LoadChunk(ctx context.Context, world schema.WorldID, pos schema.ChunkPos) (schema.ChunkRecord, bool, error)
	SaveMeta(ctx context.Context, world schema.WorldID, meta schema.WorldMeta) error
	LoadMeta(ctx context.Context, world schema.WorldID) (schema.WorldMeta, bool, error)
}

// PlayerStore persists the player roster in one batch. SaveAll returns
// the number of players written.
type PlayerStore interface {
	SaveAll(ctx context.Context, players []schema.Player) (int, error)
	LoadAll(ctx context.Context) ([]schema.Player, error)
}

// CommandHandler runs operator command lines dispatched to the server.
type CommandHandler interface {
	Handle(ctx context.Context, origin schema.CommandOrigin, line string)
}
