//go:build unix

package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TTY is the local terminal Device. Opening it switches stdin to raw
// mode, Restore must run before the process exits.
type TTY struct {
	out   *os.File
	fd    int
	br    *bufio.Reader
	saved *term.State
	lastW int
	lastH int
}

func OpenTTY() (*TTY, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	t := &TTY{
		out:   os.Stdout,
		fd:    fd,
		br:    bufio.NewReader(os.Stdin),
		saved: saved,
	}
	t.lastW, t.lastH = t.Size()
	return t, nil
}

// Restore puts the terminal back into its saved mode. Safe to call
// more than once.
func (t *TTY) Restore() {
	if t.saved != nil {
		_ = term.Restore(t.fd, t.saved)
		t.saved = nil
	}
}

// Poll waits up to timeout for input. A window size change observed
// between polls comes back as an EventOther so the caller repaints.
func (t *TTY) Poll(timeout time.Duration) (Event, error) {
	if t.br.Buffered() > 0 {
		return readEvent(t.br)
	}
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if err == unix.EINTR {
			// SIGWINCH lands here, check for a resize right away.
			return t.sizeEvent(), nil
		}
		return Event{}, fmt.Errorf("poll terminal: %w", err)
	}
	if n == 0 {
		return t.sizeEvent(), nil
	}
	return readEvent(t.br)
}

func (t *TTY) sizeEvent() Event {
	w, h := t.Size()
	if w != t.lastW || h != t.lastH {
		t.lastW, t.lastH = w, h
		return Event{Kind: EventOther}
	}
	return Event{Kind: EventNone}
}

func (t *TTY) Size() (int, int) {
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return 80, 24
	}
	return w, h
}

func (t *TTY) Writer() io.Writer { return t.out }
