package schema

import "errors"

var (
	// ErrInvalidWorld indicates an invalid world identifier.
	ErrInvalidWorld = errors.New("invalid world")
	// ErrWorldNotFound indicates a requested world does not exist.
	ErrWorldNotFound = errors.New("world not found")
	// ErrInvalidPlayer indicates an invalid player identifier.
	ErrInvalidPlayer = errors.New("invalid player")
	// ErrUnknownCommand indicates a command name with no handler.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrServerStopping indicates the server no longer accepts work.
	ErrServerStopping = errors.New("server is stopping")
)
