package console

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// Device is the terminal a console runs on. Poll returns the next
// input event, or an EventNone event when the timeout expires with
// nothing pending. An error from Poll means the device is gone for
// good and the console cannot continue.
type Device interface {
	Poll(timeout time.Duration) (Event, error)
	Size() (width, height int)
	Writer() io.Writer
}

// SessionDevice adapts a remote byte stream, such as an SSH channel,
// into a Device. A pump goroutine decodes events off the stream into
// a channel so Poll can time out without blocking on the read.
type SessionDevice struct {
	out    io.Writer
	events chan Event

	mu      sync.Mutex
	w, h    int
	resized bool
	err     error
}

// NewSessionDevice starts decoding events from rw. The given size is
// used until Resize reports a new one.
func NewSessionDevice(rw io.ReadWriter, width, height int) *SessionDevice {
	d := &SessionDevice{
		out:    rw,
		events: make(chan Event, 64),
		w:      width,
		h:      height,
	}
	go d.pump(rw)
	return d
}

func (d *SessionDevice) pump(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		ev, err := readEvent(br)
		if err != nil {
			d.mu.Lock()
			d.err = err
			d.mu.Unlock()
			close(d.events)
			return
		}
		select {
		case d.events <- ev:
		default:
			// Nobody is polling anymore, drop rather than block the
			// pump forever.
		}
	}
}

func (d *SessionDevice) Poll(timeout time.Duration) (Event, error) {
	d.mu.Lock()
	if d.resized {
		d.resized = false
		d.mu.Unlock()
		return Event{Kind: EventOther}, nil
	}
	d.mu.Unlock()
	select {
	case ev, ok := <-d.events:
		if !ok {
			return Event{}, d.failure()
		}
		return ev, nil
	case <-time.After(timeout):
		return Event{Kind: EventNone}, nil
	}
}

func (d *SessionDevice) failure() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	return io.EOF
}

// Resize records a new window size and queues a repaint event.
func (d *SessionDevice) Resize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if width == d.w && height == d.h {
		return
	}
	d.w, d.h = width, height
	d.resized = true
}

func (d *SessionDevice) Size() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w, d.h
}

func (d *SessionDevice) Writer() io.Writer { return d.out }
