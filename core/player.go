package core

import (
	"sort"

	"github.com/Alvsch/steel-tui/schema"
)

// AddPlayer places a player in this world, claiming the record by
// overwriting its world field.
func (w *World) AddPlayer(p schema.Player) {
	w.putPlayer(p)
	w.logger.Info("player joined", "player", p.Name)
}

// putPlayer stores a player record without the join log line, used
// when restoring persisted players at startup.
func (w *World) putPlayer(p schema.Player) {
	p.World = w.id
	w.mu.Lock()
	w.players[p.ID] = p
	w.mu.Unlock()
}

// RemovePlayer takes a player out of the world and returns the final
// record for persistence.
func (w *World) RemovePlayer(id schema.PlayerID) (schema.Player, bool) {
	w.mu.Lock()
	p, ok := w.players[id]
	if ok {
		delete(w.players, id)
	}
	w.mu.Unlock()
	if ok {
		w.logger.Info("player left", "player", p.Name)
	}
	return p, ok
}

// Players returns the world's players sorted by name.
func (w *World) Players() []schema.Player {
	w.mu.Lock()
	out := make([]schema.Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	w.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PlayerCount reports how many players are in the world.
func (w *World) PlayerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.players)
}
