package command

import (
	"strings"
)

// Command represents a parsed operator command.
type Command struct {
	Name      string
	Args      []string
	Raw       string
	Remainder string
}

// Parse parses an operator line. Commands are bare words; a leading
// "/" is tolerated for operators used to typing it. Blank lines
// report ok=false.
func Parse(input string) (Command, bool) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, false
	}
	fields := strings.Fields(raw)
	name := strings.ToLower(fields[0])
	args := []string{}
	if len(fields) > 1 {
		args = fields[1:]
	}
	return Command{
		Name:      name,
		Args:      args,
		Raw:       raw,
		Remainder: remainderAfterTokens(raw, 1),
	}, true
}

// remainderAfterTokens returns raw with the first count tokens
// stripped, preserving the spacing inside what remains.
func remainderAfterTokens(raw string, count int) string {
	i := 0
	remaining := count
	for remaining > 0 && i < len(raw) {
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		for i < len(raw) && !isSpace(raw[i]) {
			i++
		}
		remaining--
	}
	if i >= len(raw) {
		return ""
	}
	return strings.TrimSpace(raw[i:])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
