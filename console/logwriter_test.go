package console

import "testing"

func TestLogWriterAppendsDecodedLines(t *testing.T) {
	buf := NewScrollback(10)
	w := NewLogWriter(buf)

	n, err := w.Write([]byte("\x1b[31merror:\x1b[0m boom\n"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != len("\x1b[31merror:\x1b[0m boom\n") {
		t.Fatalf("expected full write, got %d", n)
	}
	lines, total := buf.Window(0, 10)
	if total != 1 {
		t.Fatalf("expected 1 line, got %d", total)
	}
	if got := lines[0].Text(); got != "error: boom" {
		t.Fatalf("expected %q, got %q", "error: boom", got)
	}
	if lines[0].Spans[0].Style.FG != basicColor(1) {
		t.Fatalf("expected red first span, got %+v", lines[0].Spans[0])
	}
}

func TestLogWriterMultiLinePayload(t *testing.T) {
	buf := NewScrollback(10)
	w := NewLogWriter(buf)
	if _, err := w.Write([]byte("one\ntwo\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines, total := buf.Window(0, 10)
	if total != 2 {
		t.Fatalf("expected 2 lines, got %d", total)
	}
	if lines[0].Text() != "one" || lines[1].Text() != "two" {
		t.Fatalf("unexpected lines: %q, %q", lines[0].Text(), lines[1].Text())
	}
}

func TestLogWriterEmptyWriteIsNoop(t *testing.T) {
	buf := NewScrollback(10)
	wake, unsubscribe := buf.Subscribe()
	defer unsubscribe()
	w := NewLogWriter(buf)

	n, err := w.Write(nil)
	if err != nil || n != 0 {
		t.Fatalf("expected (0, nil), got (%d, %v)", n, err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no lines, got %d", buf.Len())
	}
	select {
	case <-wake:
		t.Fatalf("expected no wake for empty write")
	default:
	}
}

func TestLogWriterWakesConsole(t *testing.T) {
	buf := NewScrollback(10)
	wake, unsubscribe := buf.Subscribe()
	defer unsubscribe()
	w := NewLogWriter(buf)

	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-wake:
	default:
		t.Fatalf("expected a pending wake after write")
	}
}
