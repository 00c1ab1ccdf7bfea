package console

// lineEditor is a single-line input editor with a cursor. It covers
// the readline-style movement and kill operations the console binds.
type lineEditor struct {
	buf    []rune
	cursor int
}

func (e *lineEditor) String() string { return string(e.buf) }

func (e *lineEditor) Len() int { return len(e.buf) }

func (e *lineEditor) Clear() {
	e.buf = e.buf[:0]
	e.cursor = 0
}

// Take returns the current line and resets the editor.
func (e *lineEditor) Take() string {
	s := string(e.buf)
	e.Clear()
	return s
}

// InsertRune inserts r at the cursor. Control characters are dropped.
func (e *lineEditor) InsertRune(r rune) {
	if r < 0x20 || r == 0x7f {
		return
	}
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
}

// InsertString inserts s at the cursor, one rune at a time.
func (e *lineEditor) InsertString(s string) {
	for _, r := range s {
		e.InsertRune(r)
	}
}

func (e *lineEditor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
}

func (e *lineEditor) Delete() {
	if e.cursor >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
}

func (e *lineEditor) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *lineEditor) MoveRight() {
	if e.cursor < len(e.buf) {
		e.cursor++
	}
}

func (e *lineEditor) MoveStart() { e.cursor = 0 }

func (e *lineEditor) MoveEnd() { e.cursor = len(e.buf) }

func (e *lineEditor) MoveWordLeft() {
	for e.cursor > 0 && isSpace(e.buf[e.cursor-1]) {
		e.cursor--
	}
	for e.cursor > 0 && !isSpace(e.buf[e.cursor-1]) {
		e.cursor--
	}
}

func (e *lineEditor) MoveWordRight() {
	for e.cursor < len(e.buf) && isSpace(e.buf[e.cursor]) {
		e.cursor++
	}
	for e.cursor < len(e.buf) && !isSpace(e.buf[e.cursor]) {
		e.cursor++
	}
}

// DeleteWordBackward removes the word left of the cursor along with
// any spaces between it and the cursor.
func (e *lineEditor) DeleteWordBackward() {
	if e.cursor == 0 {
		return
	}
	start := e.cursor
	for start > 0 && isSpace(e.buf[start-1]) {
		start--
	}
	for start > 0 && !isSpace(e.buf[start-1]) {
		start--
	}
	e.buf = append(e.buf[:start], e.buf[e.cursor:]...)
	e.cursor = start
}

func (e *lineEditor) KillLineStart() {
	if e.cursor == 0 {
		return
	}
	e.buf = append(e.buf[:0], e.buf[e.cursor:]...)
	e.cursor = 0
}

func (e *lineEditor) KillLineEnd() {
	e.buf = e.buf[:e.cursor]
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }
