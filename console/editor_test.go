package console

import "testing"

func TestEditorInsertAndTake(t *testing.T) {
	var ed lineEditor
	ed.InsertString("hello")
	if got := ed.String(); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
	if got := ed.Take(); got != "hello" {
		t.Fatalf("expected take to return %q, got %q", "hello", got)
	}
	if ed.Len() != 0 || ed.cursor != 0 {
		t.Fatalf("expected editor reset after take, got len=%d cursor=%d", ed.Len(), ed.cursor)
	}
}

func TestEditorInsertAtCursor(t *testing.T) {
	var ed lineEditor
	ed.InsertString("ac")
	ed.MoveLeft()
	ed.InsertRune('b')
	if got := ed.String(); got != "abc" {
		t.Fatalf("expected %q, got %q", "abc", got)
	}
	if ed.cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", ed.cursor)
	}
}

func TestEditorInsertStringAppendsAtEnd(t *testing.T) {
	var ed lineEditor
	ed.InsertString("ba")
	ed.InsertString("foo")
	if got := ed.String(); got != "bafoo" {
		t.Fatalf("expected %q, got %q", "bafoo", got)
	}
}

func TestEditorInsertStringSkipsControl(t *testing.T) {
	var ed lineEditor
	ed.InsertString("a\x1bb\r\nc\x7f")
	if got := ed.String(); got != "abc" {
		t.Fatalf("expected control characters dropped, got %q", got)
	}
}

func TestEditorBackspaceAndDelete(t *testing.T) {
	var ed lineEditor
	ed.InsertString("abcd")
	ed.MoveLeft()
	ed.MoveLeft()
	ed.Backspace()
	if got := ed.String(); got != "acd" {
		t.Fatalf("expected %q after backspace, got %q", "acd", got)
	}
	ed.Delete()
	if got := ed.String(); got != "ad" {
		t.Fatalf("expected %q after delete, got %q", "ad", got)
	}
	ed.MoveStart()
	ed.Backspace()
	if got := ed.String(); got != "ad" {
		t.Fatalf("expected backspace at start to be a no-op, got %q", got)
	}
	ed.MoveEnd()
	ed.Delete()
	if got := ed.String(); got != "ad" {
		t.Fatalf("expected delete at end to be a no-op, got %q", got)
	}
}

func TestEditorMoveClamps(t *testing.T) {
	var ed lineEditor
	ed.InsertString("ab")
	for i := 0; i < 5; i++ {
		ed.MoveRight()
	}
	if ed.cursor != 2 {
		t.Fatalf("expected cursor clamped to 2, got %d", ed.cursor)
	}
	for i := 0; i < 5; i++ {
		ed.MoveLeft()
	}
	if ed.cursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", ed.cursor)
	}
}

func TestEditorWordMovement(t *testing.T) {
	var ed lineEditor
	ed.InsertString("say hello world")
	ed.MoveWordLeft()
	if ed.cursor != 10 {
		t.Fatalf("expected cursor at start of %q, got %d", "world", ed.cursor)
	}
	ed.MoveWordLeft()
	if ed.cursor != 4 {
		t.Fatalf("expected cursor at start of %q, got %d", "hello", ed.cursor)
	}
	ed.MoveWordRight()
	if ed.cursor != 9 {
		t.Fatalf("expected cursor after %q, got %d", "hello", ed.cursor)
	}
}

func TestEditorDeleteWordBackward(t *testing.T) {
	var ed lineEditor
	ed.InsertString("save all  ")
	ed.DeleteWordBackward()
	if got := ed.String(); got != "save " {
		t.Fatalf("expected %q, got %q", "save ", got)
	}
	ed.DeleteWordBackward()
	if got := ed.String(); got != "" {
		t.Fatalf("expected empty line, got %q", got)
	}
	ed.DeleteWordBackward()
	if got := ed.String(); got != "" {
		t.Fatalf("expected delete word on empty line to be a no-op, got %q", got)
	}
}

func TestEditorKillLine(t *testing.T) {
	var ed lineEditor
	ed.InsertString("time set day")
	ed.MoveWordLeft()
	ed.KillLineEnd()
	if got := ed.String(); got != "time set " {
		t.Fatalf("expected %q, got %q", "time set ", got)
	}
	ed.KillLineStart()
	if got := ed.String(); got != "" {
		t.Fatalf("expected empty line, got %q", got)
	}
	if ed.cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", ed.cursor)
	}
}
