package console

import (
	"bufio"
	"strconv"
	"strings"
	"unicode/utf8"
)

// readEvent decodes the next input event from br. It blocks until a
// complete event is available or the underlying reader fails.
func readEvent(br *bufio.Reader) (Event, error) {
	b, err := br.ReadByte()
	if err != nil {
		return Event{}, err
	}
	switch b {
	case 0x1b:
		return readEscape(br)
	case '\r', '\n':
		return keyEvent(Key{kind: keyEnter}), nil
	case 0x7f, 0x08:
		return keyEvent(Key{kind: keyBackspace}), nil
	case '\t':
		return keyEvent(Key{kind: keyTab}), nil
	case 0x01:
		return keyEvent(Key{kind: keyCtrlA}), nil
	case 0x03:
		return keyEvent(Key{kind: keyCtrlC}), nil
	case 0x04:
		return keyEvent(Key{kind: keyCtrlD}), nil
	case 0x05:
		return keyEvent(Key{kind: keyCtrlE}), nil
	case 0x0b:
		return keyEvent(Key{kind: keyCtrlK}), nil
	case 0x15:
		return keyEvent(Key{kind: keyCtrlU}), nil
	case 0x17:
		return keyEvent(Key{kind: keyCtrlW}), nil
	}
	if b < 0x20 {
		return Event{Kind: EventOther}, nil
	}
	if b < utf8.RuneSelf {
		return keyEvent(Key{kind: keyRune, r: rune(b)}), nil
	}
	if err := br.UnreadByte(); err != nil {
		return Event{}, err
	}
	r, _, err := br.ReadRune()
	if err != nil {
		return Event{}, err
	}
	if r == utf8.RuneError {
		return Event{Kind: EventOther}, nil
	}
	return keyEvent(Key{kind: keyRune, r: r}), nil
}

func keyEvent(k Key) Event { return Event{Kind: EventKey, Key: k} }

func readEscape(br *bufio.Reader) (Event, error) {
	if br.Buffered() == 0 {
		// A lone ESC press arrives with no follow-up byte.
		return Event{Kind: EventOther}, nil
	}
	b, err := br.ReadByte()
	if err != nil {
		return Event{}, err
	}
	switch b {
	case '[':
		return readCSI(br)
	case 'O':
		return readSS3(br)
	case 'b':
		return keyEvent(Key{kind: keyAltB}), nil
	case 'f':
		return keyEvent(Key{kind: keyAltF}), nil
	}
	return Event{Kind: EventOther}, nil
}

func readCSI(br *bufio.Reader) (Event, error) {
	b, err := br.ReadByte()
	if err != nil {
		return Event{}, err
	}
	if b == '<' {
		return readSGRMouse(br)
	}
	if b == 'M' {
		return readX10Mouse(br)
	}
	var seq []byte
	for {
		seq = append(seq, b)
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if len(seq) > 16 {
			return Event{Kind: EventOther}, nil
		}
		b, err = br.ReadByte()
		if err != nil {
			return Event{}, err
		}
	}
	switch string(seq) {
	case "A":
		return keyEvent(Key{kind: keyUp}), nil
	case "B":
		return keyEvent(Key{kind: keyDown}), nil
	case "C":
		return keyEvent(Key{kind: keyRight}), nil
	case "D":
		return keyEvent(Key{kind: keyLeft}), nil
	case "H", "1~", "7~":
		return keyEvent(Key{kind: keyHome}), nil
	case "F", "4~", "8~":
		return keyEvent(Key{kind: keyEnd}), nil
	case "1;5A":
		return keyEvent(Key{kind: keyUp}), nil
	case "1;5B":
		return keyEvent(Key{kind: keyCtrlDown}), nil
	case "1;5C": // ctrl+right, word movement
		return keyEvent(Key{kind: keyAltF}), nil
	case "1;5D": // ctrl+left
		return keyEvent(Key{kind: keyAltB}), nil
	case "3~":
		return keyEvent(Key{kind: keyDelete}), nil
	case "5~":
		return keyEvent(Key{kind: keyPageUp}), nil
	case "6~":
		return keyEvent(Key{kind: keyPageDown}), nil
	case "200~":
		return readPaste(br)
	}
	return Event{Kind: EventOther}, nil
}

func readSS3(br *bufio.Reader) (Event, error) {
	b, err := br.ReadByte()
	if err != nil {
		return Event{}, err
	}
	switch b {
	case 'A':
		return keyEvent(Key{kind: keyUp}), nil
	case 'B':
		return keyEvent(Key{kind: keyDown}), nil
	case 'H':
		return keyEvent(Key{kind: keyHome}), nil
	case 'F':
		return keyEvent(Key{kind: keyEnd}), nil
	}
	return Event{Kind: EventOther}, nil
}

// readSGRMouse parses the remainder of an SGR mouse report,
// ESC [ < btn ; x ; y M/m, with ESC [ < already consumed. Only wheel
// movement matters to the console so the coordinates are discarded.
func readSGRMouse(br *bufio.Reader) (Event, error) {
	var params []byte
	var final byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return Event{}, err
		}
		if b == 'M' || b == 'm' {
			final = b
			break
		}
		if (b < '0' || b > '9') && b != ';' {
			return Event{Kind: EventOther}, nil
		}
		params = append(params, b)
		if len(params) > 24 {
			return Event{Kind: EventOther}, nil
		}
	}
	fields := strings.Split(string(params), ";")
	if len(fields) != 3 {
		return Event{Kind: EventOther}, nil
	}
	btn, err := strconv.Atoi(fields[0])
	if err != nil {
		return Event{Kind: EventOther}, nil
	}
	return Event{Kind: EventMouse, Mouse: wheelMouse(btn, final == 'M')}, nil
}

// readX10Mouse parses a legacy X10 mouse report of three raw bytes.
func readX10Mouse(br *bufio.Reader) (Event, error) {
	var raw [3]byte
	for i := range raw {
		b, err := br.ReadByte()
		if err != nil {
			return Event{}, err
		}
		raw[i] = b
	}
	return Event{Kind: EventMouse, Mouse: wheelMouse(int(raw[0])-32, true)}, nil
}

// wheelMouse maps an xterm button code to a Mouse event. Bit 64 marks
// scroll, the low bits pick the direction and bit 16 is the Ctrl
// modifier. Anything that is not a wheel press decodes as mouseOther.
func wheelMouse(btn int, press bool) Mouse {
	m := Mouse{ctrl: btn&16 != 0}
	if press && btn&64 != 0 {
		if btn&0x03 == 0 {
			m.kind = mouseWheelUp
		} else {
			m.kind = mouseWheelDown
		}
	}
	return m
}

// readPaste consumes a bracketed paste payload up to the closing
// ESC [ 2 0 1 ~ marker.
func readPaste(br *bufio.Reader) (Event, error) {
	const endMark = "\x1b[201~"
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return Event{}, err
		}
		sb.WriteByte(b)
		if b == '~' && strings.HasSuffix(sb.String(), endMark) {
			text := strings.TrimSuffix(sb.String(), endMark)
			return Event{Kind: EventPaste, Paste: text}, nil
		}
		if sb.Len() > 1<<20 {
			return Event{Kind: EventOther}, nil
		}
	}
}
