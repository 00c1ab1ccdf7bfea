package console

// EventKind discriminates terminal input events.
type EventKind int

const (
	// EventNone is returned by Device.Poll when the timeout expired
	// without input.
	EventNone EventKind = iota
	EventKey
	EventMouse
	EventPaste
	// EventOther covers input the console does not act on directly but
	// that should still trigger a repaint, such as a resize or an
	// unrecognized escape sequence.
	EventOther
)

// Event is a single input event produced by a Device.
type Event struct {
	Kind  EventKind
	Key   Key
	Mouse Mouse
	Paste string
}

type keyKind int

const (
	keyRune keyKind = iota
	keyEnter
	keyBackspace
	keyDelete
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyUp
	keyDown
	keyCtrlDown
	keyPageUp
	keyPageDown
	keyTab
	keyCtrlA
	keyCtrlC
	keyCtrlD
	keyCtrlE
	keyCtrlK
	keyCtrlU
	keyCtrlW
	keyAltB
	keyAltF
)

// Key is a decoded keypress. The rune is only set for kind keyRune.
type Key struct {
	kind keyKind
	r    rune
}

type mouseKind int

const (
	mouseOther mouseKind = iota
	mouseWheelUp
	mouseWheelDown
)

// Mouse is a decoded pointer event. Only wheel movement is
// distinguished, everything else is mouseOther.
type Mouse struct {
	kind mouseKind
	ctrl bool
}
