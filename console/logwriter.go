package console

// LogWriter adapts the scrollback into an io.Writer so any logging producer
// can feed the console. Each write is decoded into styled lines and appended
// in one call; the append wakes every attached console. Safe for concurrent
// use by arbitrary goroutines.
type LogWriter struct {
	buf *Scrollback
}

// NewLogWriter returns a writer appending to buf.
func NewLogWriter(buf *Scrollback) *LogWriter {
	return &LogWriter{buf: buf}
}

// Write never fails; an empty payload is a no-op that wakes nobody.
func (w *LogWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	w.buf.Append(DecodeLines(string(p))...)
	return len(p), nil
}
