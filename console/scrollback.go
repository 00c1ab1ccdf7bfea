package console

import (
	"strings"
	"sync"

	"github.com/Alvsch/steel-tui/schema"
)

// Style is the visual attribute set of one span.
type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Reverse   bool
}

// IsZero reports whether the style carries no attributes.
func (s Style) IsZero() bool {
	return s == Style{}
}

type colorKind uint8

const (
	colorNone colorKind = iota
	colorBasic
	colorIndexed
	colorRGB
)

// Color is a terminal color: unset, one of the 16 basic colors, a 256-color
// palette index, or a 24-bit RGB value.
type Color struct {
	kind    colorKind
	index   uint8
	r, g, b uint8
}

// IsSet reports whether the color is anything other than the default.
func (c Color) IsSet() bool {
	return c.kind != colorNone
}

func basicColor(n uint8) Color {
	return Color{kind: colorBasic, index: n}
}

func indexedColor(n uint8) Color {
	return Color{kind: colorIndexed, index: n}
}

func rgbColor(r, g, b uint8) Color {
	return Color{kind: colorRGB, r: r, g: g, b: b}
}

// Span is a contiguous run of text sharing one style.
type Span struct {
	Text  string
	Style Style
}

// Line is one scrollback line as a sequence of style runs.
type Line struct {
	Spans []Span
}

// Plain returns an unstyled line.
func Plain(text string) Line {
	return Line{Spans: []Span{{Text: text}}}
}

// Styled returns a line with a single styled span.
func Styled(text string, style Style) Line {
	return Line{Spans: []Span{{Text: text, Style: style}}}
}

// Text returns the line's text with styling stripped.
func (l Line) Text() string {
	if len(l.Spans) == 1 {
		return l.Spans[0].Text
	}
	var b strings.Builder
	for _, span := range l.Spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

// Width returns the line's width in cells. Styling carries no width.
func (l Line) Width() int {
	width := 0
	for _, span := range l.Spans {
		width += len([]rune(span.Text))
	}
	return width
}

// Scrollback is the bounded styled line history shared between log producers
// and every attached console. Appends from arbitrary goroutines are safe; the
// mutex is held only for the append or read itself.
type Scrollback struct {
	mu       sync.Mutex
	lines    []Line
	maxLines int
	subs     []chan struct{}
}

// NewScrollback constructs a scrollback bounded to maxLines. Values <= 0 fall
// back to the default capacity.
func NewScrollback(maxLines int) *Scrollback {
	if maxLines <= 0 {
		maxLines = schema.DefaultScrollbackLines
	}
	return &Scrollback{maxLines: maxLines}
}

// Append adds lines to the history, evicting from the front once the capacity
// is exceeded, then wakes every subscriber. Appending nothing is a no-op and
// wakes nobody.
func (s *Scrollback) Append(lines ...Line) {
	if len(lines) == 0 {
		return
	}
	s.mu.Lock()
	s.lines = append(s.lines, lines...)
	if len(s.lines) > s.maxLines {
		trim := len(s.lines) - s.maxLines
		s.lines = append(s.lines[:0], s.lines[trim:]...)
	}
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a redraw wake channel. The channel holds at most one
// pending wake; signals sent while one is pending coalesce. The returned
// function unsubscribes.
func (s *Scrollback) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
	return ch, unsubscribe
}

// Len returns the current number of lines.
func (s *Scrollback) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Window returns a copy of the lines visible from a top-based offset over a
// window of the given height, plus the total line count. The offset is
// clamped so the window never extends past the end of the history.
func (s *Scrollback) Window(offset, height int) ([]Line, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := len(s.lines)
	if height <= 0 {
		return nil, total
	}
	start := offset
	if max := total - height; start > max {
		start = max
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
	}
	lines := make([]Line, end-start)
	copy(lines, s.lines[start:end])
	return lines, total
}
