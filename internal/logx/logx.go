// Package logx carries the log annotation helpers shared by the
// server core, command handler and console transports.
package logx

import (
	"context"

	"github.com/Alvsch/steel-tui/schema"
	"pkt.systems/pslog"
)

type contextKey int

const (
	worldKey contextKey = iota
	originKey
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithWorld annotates the logger with the world id if present.
func WithWorld(ctx context.Context, worldID schema.WorldID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if worldID != "" {
		if current, ok := ctx.Value(worldKey).(schema.WorldID); ok && current == worldID {
			return log
		}
		log = log.With("world", worldID)
	}
	return log
}

// WithOrigin annotates the logger with the command origin if present.
func WithOrigin(ctx context.Context, origin schema.CommandOrigin) pslog.Logger {
	log := pslog.Ctx(ctx)
	if origin != "" {
		if current, ok := ctx.Value(originKey).(schema.CommandOrigin); ok && current == origin {
			return log
		}
		log = log.With("origin", origin)
	}
	return log
}

// WithPlayer annotates the logger with player metadata when available.
func WithPlayer(log pslog.Logger, p schema.Player) pslog.Logger {
	if p.Name != "" {
		log = log.With("player", p.Name)
	}
	if p.ID != "" {
		log = log.With("player_id", string(p.ID))
	}
	return log
}

// ContextWithWorld stores the world marker on the context for log de-duplication.
func ContextWithWorld(ctx context.Context, worldID schema.WorldID) context.Context {
	if ctx == nil || worldID == "" {
		return ctx
	}
	return context.WithValue(ctx, worldKey, worldID)
}

// ContextWithOrigin stores the origin marker on the context for log de-duplication.
func ContextWithOrigin(ctx context.Context, origin schema.CommandOrigin) context.Context {
	if ctx == nil || origin == "" {
		return ctx
	}
	return context.WithValue(ctx, originKey, origin)
}
