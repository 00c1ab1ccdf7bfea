package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// WorldID identifies a world by its level name.
type WorldID string

// PlayerID identifies a player. The wire form is a UUID string.
type PlayerID string

// NewPlayerID returns a fresh random player id.
func NewPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// ParsePlayerID validates a player id string.
func ParsePlayerID(raw string) (PlayerID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidPlayer
	}
	return PlayerID(id.String()), nil
}

// CommandOrigin identifies where a command was issued from.
type CommandOrigin string

const (
	// OriginConsole marks commands typed at the local operator console.
	OriginConsole CommandOrigin = "console"
	// OriginRemote marks commands issued through a remote console session.
	OriginRemote CommandOrigin = "remote"
)

// ChunkPos addresses a chunk column within a world.
type ChunkPos struct {
	X int32 `json:"x"`
	Z int32 `json:"z"`
}

func (p ChunkPos) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Z)
}

// Position is a player position in block coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GameMode is the player game mode.
type GameMode string

const (
	GameModeSurvival  GameMode = "survival"
	GameModeCreative  GameMode = "creative"
	GameModeAdventure GameMode = "adventure"
	GameModeSpectator GameMode = "spectator"
)

// Player is the persistable player record shared between the engine and the
// player store.
type Player struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	World    WorldID  `json:"world"`
	Position Position `json:"position"`
	GameMode GameMode `json:"game_mode"`
}

// ChunkSize is the chunk edge length in cells. Heightmaps hold
// ChunkSize*ChunkSize bytes in row-major order.
const ChunkSize = 16

// ChunkRecord is the persistable form of one chunk column: the chunk
// position and its 16x16 terrain heightmap in row-major order.
type ChunkRecord struct {
	Pos     ChunkPos `json:"pos"`
	Heights []byte   `json:"heights"`
}

// WorldMeta is the persistable per-world level data.
type WorldMeta struct {
	Seed int64 `json:"seed"`
	Time int64 `json:"time"`
}
