package core

import "pkt.systems/pslog"

// ServerDeps captures optional dependencies for the game server.
type ServerDeps struct {
	WorldStore  WorldStore
	PlayerStore PlayerStore
	Commands    CommandHandler
	Logger      pslog.Logger

	// OnStopped runs after the shutdown drain has finished, once the
	// final "Server stopped" line has been logged. The composition
	// root uses it to push the exit notice into the console.
	OnStopped func()
}
