// Package sshconsole exposes the operator console over SSH. Every
// accepted session runs its own console against the shared scrollback,
// so remote operators see the same output and drive the same two-stage
// shutdown as the local terminal. Sessions authenticate with public
// keys from an authorized_keys file.
package sshconsole

import (
	"context"
	"errors"
	"io"
	"net"

	gliderssh "github.com/gliderlabs/ssh"
	"golang.org/x/crypto/ssh"

	"github.com/Alvsch/steel-tui/console"
	"pkt.systems/pslog"
)

// Server accepts SSH connections and attaches a console to each.
type Server struct {
	Addr        string
	HostKeyPath string
	Listener    net.Listener

	// Keys holds the public keys allowed to open a session.
	Keys *AuthorizedKeys

	// Buffer, Dispatch, StopServer, StopApp and ServerDone are handed
	// to every session console. Dispatch is expected to tag submitted
	// lines with the remote origin.
	Buffer     *console.Scrollback
	Dispatch   func(ctx context.Context, line string)
	StopServer func()
	StopApp    func()
	ServerDone <-chan struct{}

	logger pslog.Logger
}

// ListenAndServe starts the SSH listener and shuts down on context
// cancellation.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.logger == nil {
		s.logger = pslog.Ctx(ctx)
	}
	if s.Keys.Len() == 0 {
		return errors.New("authorized keys are required for SSH")
	}

	signer, err := EnsureHostKey(s.HostKeyPath)
	if err != nil {
		return err
	}

	server := &gliderssh.Server{
		Addr:             s.Addr,
		Handler:          s.handleSession,
		PublicKeyHandler: s.handlePublicKey,
	}
	server.AddHostKey(signer)

	errCh := make(chan error, 1)
	go func() {
		if s.Listener != nil {
			errCh <- server.Serve(s.Listener)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handlePublicKey(ctx gliderssh.Context, key gliderssh.PublicKey) bool {
	log := s.logger
	if log == nil {
		log = pslog.Ctx(ctx)
	}
	log = log.With("remote", remoteAddr(ctx), "fingerprint", ssh.FingerprintSHA256(key))
	if user := ctx.User(); user != "" {
		log = log.With("user", user)
	}
	if !s.Keys.Contains(key) {
		log.Warn("ssh pubkey rejected", "reason", "no matching key")
		return false
	}
	log.Info("ssh pubkey accepted")
	return true
}

func remoteAddr(ctx gliderssh.Context) string {
	if ctx == nil || ctx.RemoteAddr() == nil {
		return ""
	}
	return ctx.RemoteAddr().String()
}

func (s *Server) handleSession(sess gliderssh.Session) {
	log := s.logger
	if log == nil {
		log = pslog.Ctx(sess.Context())
	}
	remote := sess.RemoteAddr().String()
	slog := log.With("remote", remote)
	if user := sess.User(); user != "" {
		slog = slog.With("user", user)
	}
	if id := sess.Context().SessionID(); id != "" {
		slog = slog.With("ssh_session", id)
	}

	pty, winCh, ok := sess.Pty()
	if !ok {
		slog.Info("ssh session rejected", "reason", "pty required")
		_, _ = io.WriteString(sess, "pty required\n")
		return
	}

	// Detach (Ctrl+D) and a dead connection both end only this session,
	// the session context keeps the server and the other consoles out
	// of it.
	sessCtx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	dev := console.NewSessionDevice(sess, pty.Window.Width, pty.Window.Height)
	go func() {
		for win := range winCh {
			dev.Resize(win.Width, win.Height)
		}
	}()

	cons, err := console.New(console.Options{
		Device:     dev,
		Buffer:     s.Buffer,
		Dispatch:   s.Dispatch,
		StopServer: s.StopServer,
		StopApp:    s.StopApp,
		ServerDone: s.ServerDone,
		Detach:     cancel,
		InputFailed: func(err error) {
			slog.Debug("ssh session input closed", "err", err)
			cancel()
		},
	})
	if err != nil {
		slog.Warn("ssh session rejected", "err", err)
		return
	}

	slog.Info("ssh session opened", "term", pty.Term)
	runLog := log
	if user := sess.User(); user != "" {
		runLog = runLog.With("user", user)
	}
	if err := cons.Run(pslog.ContextWithLogger(sessCtx, runLog)); err != nil {
		slog.Warn("ssh console failed", "err", err)
	}
	slog.Info("ssh session closed")
}
