package console

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	ansiReset      = "\x1b[0m"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
)

// DecodeLines decodes raw producer output into styled lines. The payload is
// split on newlines (one trailing newline is dropped) and SGR escape
// sequences become style runs. Non-SGR escapes, malformed sequences, and
// control characters degrade to plain text: the sequence is dropped, the
// surrounding text survives. Styles persist across newlines within one call.
func DecodeLines(data string) []Line {
	if data == "" {
		return nil
	}
	data = strings.TrimSuffix(data, "\n")
	var (
		lines []Line
		spans []Span
		text  strings.Builder
		style Style
	)
	flush := func() {
		if text.Len() > 0 {
			spans = append(spans, Span{Text: text.String(), Style: style})
			text.Reset()
		}
	}
	endLine := func() {
		flush()
		if len(spans) == 0 {
			spans = []Span{{Text: ""}}
		}
		lines = append(lines, Line{Spans: spans})
		spans = nil
	}
	for i := 0; i < len(data); {
		ch := data[i]
		if ch == 0x1b {
			next, updated, ok := decodeSGR(data, i+1, style)
			if ok && updated != style {
				flush()
				style = updated
			}
			i = next
			continue
		}
		if ch == '\n' {
			endLine()
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if r == '\t' {
			text.WriteString("    ")
			i += size
			continue
		}
		if r == '\r' || r < 0x20 || r == 0x7f {
			i += size
			continue
		}
		text.WriteRune(r)
		i += size
	}
	endLine()
	return lines
}

// decodeSGR consumes one escape sequence starting after the ESC byte. It
// returns the index past the sequence, the updated style, and whether the
// sequence was a well-formed SGR. Anything else is skipped unchanged.
func decodeSGR(text string, i int, style Style) (int, Style, bool) {
	if i >= len(text) {
		return i, style, false
	}
	switch text[i] {
	case '[':
		start := i + 1
		end := skipCSI(text, start)
		if end <= start || end > len(text) || text[end-1] != 'm' {
			return end, style, false
		}
		params, ok := splitSGRParams(text[start : end-1])
		if !ok {
			return end, style, false
		}
		return end, applySGR(style, params), true
	case ']':
		return skipOSC(text, i+1), style, false
	default:
		return i + 1, style, false
	}
}

func skipCSI(text string, i int) int {
	for i < len(text) {
		b := text[i]
		if b >= 0x40 && b <= 0x7e {
			return i + 1
		}
		i++
	}
	return i
}

func skipOSC(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case 0x07:
			return i + 1
		case 0x1b:
			if i+1 < len(text) && text[i+1] == '\\' {
				return i + 2
			}
		}
		i++
	}
	return i
}

// splitSGRParams parses the parameter bytes of an SGR sequence. Empty
// parameters read as zero, per convention. Anything non-numeric marks the
// sequence malformed.
func splitSGRParams(raw string) ([]int, bool) {
	if raw == "" {
		return []int{0}, true
	}
	parts := strings.Split(strings.ReplaceAll(raw, ":", ";"), ";")
	params := make([]int, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			params = append(params, 0)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, false
		}
		params = append(params, n)
	}
	return params, true
}

func applySGR(style Style, params []int) Style {
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			style = Style{}
		case p == 1:
			style.Bold = true
		case p == 2:
			style.Dim = true
		case p == 3:
			style.Italic = true
		case p == 4:
			style.Underline = true
		case p == 7:
			style.Reverse = true
		case p == 22:
			style.Bold = false
			style.Dim = false
		case p == 23:
			style.Italic = false
		case p == 24:
			style.Underline = false
		case p == 27:
			style.Reverse = false
		case p >= 30 && p <= 37:
			style.FG = basicColor(uint8(p - 30))
		case p == 38:
			if c, skip, ok := extendedColor(params[i+1:]); ok {
				style.FG = c
				i += skip
			} else {
				return style
			}
		case p == 39:
			style.FG = Color{}
		case p >= 40 && p <= 47:
			style.BG = basicColor(uint8(p - 40))
		case p == 48:
			if c, skip, ok := extendedColor(params[i+1:]); ok {
				style.BG = c
				i += skip
			} else {
				return style
			}
		case p == 49:
			style.BG = Color{}
		case p >= 90 && p <= 97:
			style.FG = basicColor(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			style.BG = basicColor(uint8(p - 100 + 8))
		}
	}
	return style
}

// extendedColor reads the tail of a 38/48 parameter list: 5;n or 2;r;g;b.
func extendedColor(rest []int) (Color, int, bool) {
	if len(rest) >= 2 && rest[0] == 5 && rest[1] <= 255 {
		return indexedColor(uint8(rest[1])), 2, true
	}
	if len(rest) >= 4 && rest[0] == 2 && rest[1] <= 255 && rest[2] <= 255 && rest[3] <= 255 {
		return rgbColor(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), 4, true
	}
	return Color{}, 0, false
}

// encodeStyle returns the SGR prefix selecting the style, or "" for the zero
// style.
func encodeStyle(s Style) string {
	if s.IsZero() {
		return ""
	}
	var codes []string
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Dim {
		codes = append(codes, "2")
	}
	if s.Italic {
		codes = append(codes, "3")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.Reverse {
		codes = append(codes, "7")
	}
	codes = appendColorCodes(codes, s.FG, false)
	codes = appendColorCodes(codes, s.BG, true)
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func appendColorCodes(codes []string, c Color, background bool) []string {
	base := 30
	ext := "38"
	if background {
		base = 40
		ext = "48"
	}
	switch c.kind {
	case colorBasic:
		n := int(c.index)
		if n < 8 {
			codes = append(codes, strconv.Itoa(base+n))
		} else {
			codes = append(codes, strconv.Itoa(base+60+n-8))
		}
	case colorIndexed:
		codes = append(codes, ext, "5", strconv.Itoa(int(c.index)))
	case colorRGB:
		codes = append(codes, ext, "2", strconv.Itoa(int(c.r)), strconv.Itoa(int(c.g)), strconv.Itoa(int(c.b)))
	}
	return codes
}

// encodeLine re-encodes a styled line to ANSI, trimmed to width cells.
func encodeLine(line Line, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	budget := width
	styled := false
	for _, span := range line.Spans {
		if budget <= 0 {
			break
		}
		text := span.Text
		if runes := []rune(text); len(runes) > budget {
			text = string(runes[:budget])
		}
		if text == "" {
			continue
		}
		if sgr := encodeStyle(span.Style); sgr != "" {
			b.WriteString(sgr)
			styled = true
		} else if styled {
			b.WriteString(ansiReset)
			styled = false
		}
		b.WriteString(text)
		budget -= utf8.RuneCountInString(text)
	}
	if styled {
		b.WriteString(ansiReset)
	}
	return b.String()
}
