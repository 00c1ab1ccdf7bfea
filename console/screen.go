package console

import (
	"fmt"
	"io"
	"strings"
)

const (
	ansiEnterAlt = "\x1b[?1049h"
	ansiExitAlt  = "\x1b[?1049l"
	ansiMouseOn  = "\x1b[?1000;1006h"
	ansiMouseOff = "\x1b[?1000;1006l"
	ansiPasteOn  = "\x1b[?2004h"
	ansiPasteOff = "\x1b[?2004l"
)

// screen drives a raw terminal. Begin switches to the alternate screen
// and enables mouse and bracketed-paste reporting, End undoes all of
// it so the shell gets its terminal back intact.
type screen struct {
	out io.Writer
}

func newScreen(out io.Writer) *screen {
	return &screen{out: out}
}

func (s *screen) Begin() error {
	_, err := io.WriteString(s.out, ansiEnterAlt+ansiHome+ansiClear+ansiMouseOn+ansiPasteOn)
	if err != nil {
		return fmt.Errorf("enter terminal modes: %w", err)
	}
	return nil
}

func (s *screen) End() error {
	_, err := io.WriteString(s.out, ansiPasteOff+ansiMouseOff+ansiExitAlt+ansiShowCursor)
	if err != nil {
		return fmt.Errorf("restore terminal modes: %w", err)
	}
	return nil
}

// Render repaints the whole frame in one write. Rows and columns are
// 1-based as the terminal counts them.
func (s *screen) Render(lines []string, cursorRow, cursorCol int) error {
	if cursorRow < 1 {
		cursorRow = 1
	}
	if cursorCol < 1 {
		cursorCol = 1
	}
	var b strings.Builder
	b.WriteString(ansiHideCursor)
	b.WriteString(ansiHome)
	b.WriteString(ansiClear)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(line)
	}
	fmt.Fprintf(&b, "\x1b[%d;%dH", cursorRow, cursorCol)
	b.WriteString(ansiShowCursor)
	_, err := io.WriteString(s.out, b.String())
	return err
}
