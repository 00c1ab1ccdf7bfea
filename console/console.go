// Package console is an interactive terminal front end for a running
// game server. It renders the shared scrollback buffer above a single
// command input line, keeps the view pinned to the newest output
// unless the operator scrolls away, and drives the two-stage Ctrl+C
// shutdown.
package console

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// pollInterval is how long a Device.Poll may block before the poller
// rechecks its context.
const pollInterval = 100 * time.Millisecond

// Options wires a Console to its terminal and to the server it
// fronts. Device, Buffer, Dispatch, StopServer and StopApp are
// required.
type Options struct {
	Device Device
	Buffer *Scrollback

	// Dispatch runs a submitted command line.
	Dispatch func(ctx context.Context, line string)

	// StopServer begins the server shutdown, StopApp ends the whole
	// application. Both must be idempotent. ServerDone is closed once
	// the server shutdown has begun, after which Ctrl+C stops the app
	// and submitted commands are discarded.
	StopServer func()
	StopApp    func()
	ServerDone <-chan struct{}

	// Detach, when set, is invoked by Ctrl+D on an empty input line.
	// Remote consoles use it to leave the session without touching
	// the server.
	Detach func()

	// InputFailed is invoked when the device fails permanently. The
	// local console exits the process here, remote consoles tear the
	// session down. When unset, a dead device stops the app.
	InputFailed func(error)
}

// Console runs the render loop for one terminal. Each terminal gets
// its own Console, all sharing one Scrollback.
type Console struct {
	dev    Device
	buf    *Scrollback
	scr    *screen
	ed     lineEditor
	offset int
	follow bool
	// contentH is the content height of the last rendered frame, used
	// to tell when a scroll-down gesture reaches the bottom.
	contentH int
	opts     Options
}

func New(opts Options) (*Console, error) {
	if opts.Device == nil {
		return nil, errors.New("console device is required")
	}
	if opts.Buffer == nil {
		return nil, errors.New("scrollback buffer is required")
	}
	if opts.Dispatch == nil {
		return nil, errors.New("dispatch func is required")
	}
	if opts.StopServer == nil || opts.StopApp == nil {
		return nil, errors.New("stop funcs are required")
	}
	return &Console{
		dev:    opts.Device,
		buf:    opts.Buffer,
		scr:    newScreen(opts.Device.Writer()),
		follow: true,
		opts:   opts,
	}, nil
}

// Run drives the console until ctx is cancelled or the device dies.
// It repaints after every input event and whenever the scrollback
// buffer signals new output.
func (c *Console) Run(ctx context.Context) error {
	if err := c.scr.Begin(); err != nil {
		return err
	}
	defer func() { _ = c.scr.End() }()

	events := make(chan Event, 16)
	go c.pollInput(ctx, events)

	wake, unsubscribe := c.buf.Subscribe()
	defer unsubscribe()

	for ctx.Err() == nil {
		if err := c.render(); err != nil {
			return fmt.Errorf("render console: %w", err)
		}

		var ev Event
		var ok bool
		// Pending input wins over redraw wakeups.
		select {
		case ev, ok = <-events:
		default:
			select {
			case <-ctx.Done():
				return nil
			case ev, ok = <-events:
			case <-wake:
				continue
			}
		}
		if !ok {
			// The poller is gone, nothing can reach this console
			// anymore. InputFailed decides what that means for the
			// rest of the application; without one the only safe
			// move is to stop it.
			if c.opts.InputFailed == nil {
				c.opts.StopApp()
			}
			return nil
		}
		c.handleEvent(ctx, ev)
	}
	return nil
}

// pollInput reads device events into the channel until ctx is
// cancelled or the device fails. The channel is closed on exit so the
// run loop notices either way.
func (c *Console) pollInput(ctx context.Context, events chan<- Event) {
	defer close(events)
	for ctx.Err() == nil {
		ev, err := c.dev.Poll(pollInterval)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if c.opts.InputFailed != nil {
				c.opts.InputFailed(err)
			}
			return
		}
		if ev.Kind == EventNone {
			continue
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Console) handleEvent(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventKey:
		c.handleKey(ctx, ev.Key)
	case EventMouse:
		c.handleMouse(ev.Mouse)
	case EventPaste:
		c.ed.InsertString(ev.Paste)
	}
}

func (c *Console) handleKey(ctx context.Context, k Key) {
	switch k.kind {
	case keyEnter:
		c.submit(ctx)
	case keyCtrlC:
		if c.serverStopped() {
			c.opts.StopApp()
		} else {
			c.opts.StopServer()
		}
	case keyCtrlD:
		if c.opts.Detach != nil && c.ed.Len() == 0 {
			c.opts.Detach()
		}
	case keyUp:
		c.scrollUp()
	case keyDown:
		c.scrollDown()
	case keyCtrlDown:
		c.follow = true
	case keyRune:
		c.ed.InsertRune(k.r)
	case keyBackspace:
		c.ed.Backspace()
	case keyDelete:
		c.ed.Delete()
	case keyLeft:
		c.ed.MoveLeft()
	case keyRight:
		c.ed.MoveRight()
	case keyHome, keyCtrlA:
		c.ed.MoveStart()
	case keyEnd, keyCtrlE:
		c.ed.MoveEnd()
	case keyCtrlU:
		c.ed.KillLineStart()
	case keyCtrlK:
		c.ed.KillLineEnd()
	case keyCtrlW:
		c.ed.DeleteWordBackward()
	case keyAltB:
		c.ed.MoveWordLeft()
	case keyAltF:
		c.ed.MoveWordRight()
	}
}

func (c *Console) handleMouse(m Mouse) {
	switch m.kind {
	case mouseWheelUp:
		c.scrollUp()
	case mouseWheelDown:
		if m.ctrl {
			c.follow = true
		} else {
			c.scrollDown()
		}
	}
}

// submit takes the input line, echoes it into the scrollback and
// dispatches it. The editor resets even when the line is discarded.
func (c *Console) submit(ctx context.Context) {
	line := c.ed.Take()
	if line == "" || c.serverStopped() {
		return
	}
	c.buf.Append(Plain("> " + line))
	c.opts.Dispatch(ctx, line)
}

func (c *Console) serverStopped() bool {
	select {
	case <-c.opts.ServerDone:
		return true
	default:
		return false
	}
}

// scrollUp leaves follow mode and moves the view one line back.
func (c *Console) scrollUp() {
	c.follow = false
	if c.offset > 0 {
		c.offset--
	}
}

// scrollDown moves the view one line forward. Reaching the exact
// bottom re-engages follow mode, anywhere short of it the view stays
// unpinned.
func (c *Console) scrollDown() {
	c.offset++
	maxOff := c.buf.Len() - c.contentH
	if maxOff < 0 {
		maxOff = 0
	}
	if c.offset >= maxOff {
		c.follow = true
	}
}

func (c *Console) render() error {
	w, h := c.dev.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	lines, row, col := c.frame(w, h)
	return c.scr.Render(lines, row, col)
}
