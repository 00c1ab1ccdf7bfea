// Package steeltui composes the game server with its operator
// consoles: the local terminal always, an SSH listener when enabled.
// The app owns the two-level cancellation pair behind the two-stage
// shutdown: the first interrupt stops the server, the second stops the
// whole application.
package steeltui

import (
	"context"
	"fmt"
	"os"

	"github.com/Alvsch/steel-tui/console"
	"github.com/Alvsch/steel-tui/core"
	"github.com/Alvsch/steel-tui/internal/appconfig"
	"github.com/Alvsch/steel-tui/internal/command"
	"github.com/Alvsch/steel-tui/schema"
	"github.com/Alvsch/steel-tui/sshconsole"
	"pkt.systems/pslog"
)

// Options configures the application beyond the config file.
type Options struct {
	// Version is what the version command reports.
	Version string

	// Device overrides the local terminal, used by tests. When nil,
	// Run opens the real tty in raw mode.
	Device console.Device
}

// App is the composition root: one scrollback, one logger writing into
// it, the engine, and a console per attached terminal.
type App struct {
	cfg    appconfig.Config
	opts   Options
	buf    *console.Scrollback
	logger pslog.Logger
	server *core.Server
	keys   *sshconsole.AuthorizedKeys
}

// New builds the application from config. SSH key material is loaded
// here so a broken remote-console setup fails before the terminal is
// touched.
func New(cfg appconfig.Config, opts Options) (*App, error) {
	buf := console.NewScrollback(cfg.Console.ScrollbackLines)
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(console.NewLogWriter(buf)),
		pslog.WithEnvOptions(levelOptions(cfg.Logging.Level)),
	)

	server, err := core.NewServer(cfg.EngineConfig(), core.ServerDeps{
		Logger: logger,
		OnStopped: func() {
			buf.Append(
				console.Plain(""),
				console.Styled("Press Ctrl+C again to exit.", console.Style{Bold: true}),
			)
		},
	})
	if err != nil {
		return nil, err
	}

	var keys *sshconsole.AuthorizedKeys
	if cfg.SSH.Enabled {
		keys, err = sshconsole.LoadAuthorizedKeys(cfg.SSH.AuthorizedKeysPath)
		if err != nil {
			return nil, fmt.Errorf("ssh console: %w", err)
		}
	}

	return &App{
		cfg:    cfg,
		opts:   opts,
		buf:    buf,
		logger: logger,
		server: server,
		keys:   keys,
	}, nil
}

// Buffer returns the shared scrollback.
func (a *App) Buffer() *console.Scrollback { return a.buf }

// Run drives the application until the operator exits it. The engine
// runs on its own goroutine against the server context; the local
// console loop runs on this one against the app context. Run returns
// only after both the console loop and the engine drain have finished,
// so a started shutdown always persists before the process may exit.
// Cancelling ctx, an outside signal, is an app-level stop.
func (a *App) Run(ctx context.Context) error {
	base := pslog.ContextWithLogger(ctx, a.logger)
	appCtx, stopApp := context.WithCancel(base)
	defer stopApp()
	serverCtx, stopServer := context.WithCancel(appCtx)
	defer stopServer()

	handler, err := command.NewHandler(command.HandlerConfig{
		Server:     a.server,
		StopServer: stopServer,
		Version:    a.opts.Version,
	})
	if err != nil {
		return err
	}
	a.server.SetCommands(handler)

	dev := a.opts.Device
	restore := func() {}
	var inputFailed func(error)
	if dev == nil {
		tty, err := console.OpenTTY()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		dev = tty
		restore = tty.Restore
		inputFailed = func(err error) {
			// The local terminal is gone, there is nothing left to
			// show anything on.
			tty.Restore()
			fmt.Fprintf(os.Stderr, "terminal input failed: %v\n", err)
			os.Exit(1)
		}
	}
	defer restore()

	cons, err := console.New(console.Options{
		Device:      dev,
		Buffer:      a.buf,
		Dispatch:    a.dispatcher(schema.OriginConsole),
		StopServer:  stopServer,
		StopApp:     stopApp,
		ServerDone:  serverCtx.Done(),
		InputFailed: inputFailed,
	})
	if err != nil {
		return err
	}

	engineDone := make(chan error, 1)
	go func() { engineDone <- a.server.Run(serverCtx) }()

	if a.cfg.SSH.Enabled {
		ssh := &sshconsole.Server{
			Addr:        a.cfg.SSH.Addr,
			HostKeyPath: a.cfg.SSH.HostKeyPath,
			Keys:        a.keys,
			Buffer:      a.buf,
			Dispatch:    a.dispatcher(schema.OriginRemote),
			StopServer:  stopServer,
			StopApp:     stopApp,
			ServerDone:  serverCtx.Done(),
		}
		a.logger.Info("ssh console listening", "addr", a.cfg.SSH.Addr)
		go func() {
			if err := ssh.ListenAndServe(appCtx); err != nil {
				a.logger.Error("ssh console failed", "err", err)
			}
		}()
	}

	consoleErr := cons.Run(appCtx)
	stopApp()
	engineErr := <-engineDone
	if consoleErr != nil {
		return consoleErr
	}
	return engineErr
}

func (a *App) dispatcher(origin schema.CommandOrigin) func(context.Context, string) {
	return func(ctx context.Context, line string) {
		a.server.Dispatch(ctx, origin, line)
	}
}

// levelOptions maps the validated logging.level config value onto the
// console-mode logger options.
func levelOptions(level string) pslog.Options {
	opts := pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.InfoLevel}
	switch level {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "warn":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return opts
}
