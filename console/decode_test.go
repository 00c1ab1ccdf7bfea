package console

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func decodeOne(t *testing.T, input string) Event {
	t.Helper()
	ev, err := readEvent(bufio.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("readEvent(%q) returned error: %v", input, err)
	}
	return ev
}

func TestDecodeRunes(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("ab"))
	for _, want := range []rune{'a', 'b'} {
		ev, err := readEvent(br)
		if err != nil {
			t.Fatalf("readEvent returned error: %v", err)
		}
		if ev.Kind != EventKey || ev.Key.kind != keyRune || ev.Key.r != want {
			t.Fatalf("expected rune %q, got %+v", want, ev)
		}
	}
}

func TestDecodeMultibyteRune(t *testing.T) {
	ev := decodeOne(t, "å")
	if ev.Kind != EventKey || ev.Key.kind != keyRune || ev.Key.r != 'å' {
		t.Fatalf("expected rune %q, got %+v", 'å', ev)
	}
}

func TestDecodeKeys(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  keyKind
	}{
		{"enter-cr", "\r", keyEnter},
		{"enter-lf", "\n", keyEnter},
		{"backspace-del", "\x7f", keyBackspace},
		{"backspace-bs", "\x08", keyBackspace},
		{"tab", "\t", keyTab},
		{"ctrl-a", "\x01", keyCtrlA},
		{"ctrl-c", "\x03", keyCtrlC},
		{"ctrl-d", "\x04", keyCtrlD},
		{"ctrl-e", "\x05", keyCtrlE},
		{"ctrl-k", "\x0b", keyCtrlK},
		{"ctrl-u", "\x15", keyCtrlU},
		{"ctrl-w", "\x17", keyCtrlW},
		{"up", "\x1b[A", keyUp},
		{"down", "\x1b[B", keyDown},
		{"right", "\x1b[C", keyRight},
		{"left", "\x1b[D", keyLeft},
		{"home", "\x1b[H", keyHome},
		{"end", "\x1b[F", keyEnd},
		{"home-tilde", "\x1b[1~", keyHome},
		{"end-tilde", "\x1b[4~", keyEnd},
		{"delete", "\x1b[3~", keyDelete},
		{"pageup", "\x1b[5~", keyPageUp},
		{"pagedown", "\x1b[6~", keyPageDown},
		{"ctrl-up", "\x1b[1;5A", keyUp},
		{"ctrl-down", "\x1b[1;5B", keyCtrlDown},
		{"ctrl-right", "\x1b[1;5C", keyAltF},
		{"ctrl-left", "\x1b[1;5D", keyAltB},
		{"alt-b", "\x1bb", keyAltB},
		{"alt-f", "\x1bf", keyAltF},
		{"ss3-up", "\x1bOA", keyUp},
		{"ss3-home", "\x1bOH", keyHome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := decodeOne(t, tc.input)
			if ev.Kind != EventKey || ev.Key.kind != tc.want {
				t.Fatalf("expected key kind %d, got %+v", tc.want, ev)
			}
		})
	}
}

func TestDecodeMouseWheel(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  mouseKind
		ctrl  bool
	}{
		{"wheel-up", "\x1b[<64;10;5M", mouseWheelUp, false},
		{"wheel-down", "\x1b[<65;10;5M", mouseWheelDown, false},
		{"ctrl-wheel-up", "\x1b[<80;10;5M", mouseWheelUp, true},
		{"ctrl-wheel-down", "\x1b[<81;10;5M", mouseWheelDown, true},
		{"button-press", "\x1b[<0;3;4M", mouseOther, false},
		{"wheel-release", "\x1b[<64;10;5m", mouseOther, false},
		{"x10-wheel-up", "\x1b[M\x60!!", mouseWheelUp, false},
		{"x10-wheel-down", "\x1b[Ma!!", mouseWheelDown, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := decodeOne(t, tc.input)
			if ev.Kind != EventMouse {
				t.Fatalf("expected mouse event, got %+v", ev)
			}
			if ev.Mouse.kind != tc.kind || ev.Mouse.ctrl != tc.ctrl {
				t.Fatalf("expected kind %d ctrl %v, got %+v", tc.kind, tc.ctrl, ev.Mouse)
			}
		})
	}
}

func TestDecodePaste(t *testing.T) {
	ev := decodeOne(t, "\x1b[200~hello world\x1b[201~")
	if ev.Kind != EventPaste {
		t.Fatalf("expected paste event, got %+v", ev)
	}
	if ev.Paste != "hello world" {
		t.Fatalf("expected paste %q, got %q", "hello world", ev.Paste)
	}
}

func TestDecodeEmptyPaste(t *testing.T) {
	ev := decodeOne(t, "\x1b[200~\x1b[201~")
	if ev.Kind != EventPaste || ev.Paste != "" {
		t.Fatalf("expected empty paste, got %+v", ev)
	}
}

func TestDecodeOther(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"lone-escape", "\x1b"},
		{"unknown-csi", "\x1b[99X"},
		{"focus-in", "\x1b[I"},
		{"unknown-ss3", "\x1bOP"},
		{"stray-control", "\x02"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := decodeOne(t, tc.input)
			if ev.Kind != EventOther {
				t.Fatalf("expected EventOther, got %+v", ev)
			}
		})
	}
}

func TestDecodeSequenceStream(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("a\x1b[A\r"))
	kinds := []keyKind{keyRune, keyUp, keyEnter}
	for _, want := range kinds {
		ev, err := readEvent(br)
		if err != nil {
			t.Fatalf("readEvent returned error: %v", err)
		}
		if ev.Kind != EventKey || ev.Key.kind != want {
			t.Fatalf("expected key kind %d, got %+v", want, ev)
		}
	}
}

func TestDecodeEOF(t *testing.T) {
	_, err := readEvent(bufio.NewReader(strings.NewReader("")))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
