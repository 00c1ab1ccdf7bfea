package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Alvsch/steel-tui/internal/logx"
	"github.com/Alvsch/steel-tui/schema"
	"pkt.systems/pslog"
)

const dayLength = 24000

const (
	timeDay      = 1000
	timeNoon     = 6000
	timeNight    = 13000
	timeMidnight = 18000
)

// ServerOps is the engine surface the operator commands drive.
type ServerOps interface {
	Players() []schema.Player
	Worlds() []schema.WorldID
	WorldTime(id schema.WorldID) (int64, error)
	SetWorldTime(id schema.WorldID, t int64) error
	WorldSeed(id schema.WorldID) (int64, error)
	SaveAll(ctx context.Context) (int, int, error)
}

// HandlerConfig configures operator command behavior.
type HandlerConfig struct {
	Server ServerOps
	// StopServer requests server-level shutdown, the same request the
	// first interrupt makes.
	StopServer func()
	Version    string
}

// Handler routes operator commands to engine operations. Output goes
// through the logger, which is what the console displays.
type Handler struct {
	server  ServerOps
	stop    func()
	version string
}

// NewHandler constructs a command handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Server == nil {
		return nil, errors.New("server ops are required")
	}
	if cfg.StopServer == nil {
		return nil, errors.New("stop server func is required")
	}
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = "unknown"
	}
	return &Handler{server: cfg.Server, stop: cfg.StopServer, version: version}, nil
}

// Handle runs one operator command line.
func (h *Handler) Handle(ctx context.Context, origin schema.CommandOrigin, line string) {
	cmd, ok := Parse(line)
	if !ok {
		return
	}
	log := logx.WithOrigin(ctx, origin)
	log.Debug("command request", "command", cmd.Name, "args", len(cmd.Args))
	if err := h.dispatch(ctx, log, cmd); err != nil {
		if errors.Is(err, schema.ErrUnknownCommand) {
			log.Warn(fmt.Sprintf("%v. Type \"help\" for help.", err))
			return
		}
		log.Warn(err.Error())
	}
}

func (h *Handler) dispatch(ctx context.Context, log pslog.Logger, cmd Command) error {
	switch cmd.Name {
	case "help":
		h.handleHelp(log)
		return nil
	case "say":
		return h.handleSay(log, cmd)
	case "list":
		h.handleList(log)
		return nil
	case "time":
		return h.handleTime(log, cmd)
	case "seed":
		return h.handleSeed(log, cmd)
	case "save-all":
		return h.handleSaveAll(ctx, log)
	case "stop":
		log.Info("Stopping the server...")
		h.stop()
		return nil
	case "version":
		log.Info("steel-tui " + h.version)
		return nil
	default:
		return fmt.Errorf("%w: %s", schema.ErrUnknownCommand, cmd.Name)
	}
}

func (h *Handler) handleHelp(log pslog.Logger) {
	log.Info("help - show this list")
	log.Info("list - list online players")
	log.Info("say <message> - broadcast a message")
	log.Info("seed [world] - show a world's generation seed")
	log.Info("time [set <day|noon|night|midnight|value>] [world] - query or set the world clock")
	log.Info("save-all - save worlds and players now")
	log.Info("version - show the server version")
	log.Info("stop - stop the server")
}

func (h *Handler) handleSay(log pslog.Logger, cmd Command) error {
	if cmd.Remainder == "" {
		return errors.New("usage: say <message>")
	}
	log.Info("[Server] " + cmd.Remainder)
	return nil
}

func (h *Handler) handleList(log pslog.Logger) {
	players := h.server.Players()
	if len(players) == 0 {
		log.Info("There are 0 players online")
		return
	}
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	log.Info(fmt.Sprintf("There are %d players online: %s", len(players), strings.Join(names, ", ")))
}

func (h *Handler) handleTime(log pslog.Logger, cmd Command) error {
	if len(cmd.Args) == 0 {
		for _, id := range h.server.Worlds() {
			when, err := h.server.WorldTime(id)
			if err != nil {
				return err
			}
			log.Info(fmt.Sprintf("Time in %s is %d", id, when))
		}
		return nil
	}
	if cmd.Args[0] != "set" || len(cmd.Args) < 2 {
		return errors.New("usage: time [set <day|noon|night|midnight|value>] [world]")
	}
	value, err := parseTimeValue(cmd.Args[1])
	if err != nil {
		return err
	}
	worlds := h.server.Worlds()
	if len(cmd.Args) >= 3 {
		worlds = []schema.WorldID{schema.WorldID(cmd.Args[2])}
	}
	for _, id := range worlds {
		if err := h.server.SetWorldTime(id, value); err != nil {
			return err
		}
	}
	log.Info(fmt.Sprintf("Set the time to %d", value))
	return nil
}

func (h *Handler) handleSeed(log pslog.Logger, cmd Command) error {
	worlds := h.server.Worlds()
	if len(cmd.Args) > 0 {
		worlds = []schema.WorldID{schema.WorldID(cmd.Args[0])}
	}
	for _, id := range worlds {
		seed, err := h.server.WorldSeed(id)
		if err != nil {
			return err
		}
		log.Info(fmt.Sprintf("Seed of %s: [%d]", id, seed))
	}
	return nil
}

func (h *Handler) handleSaveAll(ctx context.Context, log pslog.Logger) error {
	log.Info("Saving the game...")
	chunks, players, err := h.server.SaveAll(ctx)
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	log.Info(fmt.Sprintf("Saved the game (%d chunks, %d players)", chunks, players))
	return nil
}

// parseTimeValue resolves a clock keyword or a tick count. Numeric
// values wrap into one day.
func parseTimeValue(raw string) (int64, error) {
	switch strings.ToLower(raw) {
	case "day":
		return timeDay, nil
	case "noon":
		return timeNoon, nil
	case "night":
		return timeNight, nil
	case "midnight":
		return timeMidnight, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time value: %s", raw)
	}
	return ((n % dayLength) + dayLength) % dayLength, nil
}
