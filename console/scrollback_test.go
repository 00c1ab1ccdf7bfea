package console

import "testing"

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text()
	}
	return out
}

func TestScrollbackKeepsOrder(t *testing.T) {
	s := NewScrollback(10)
	s.Append(Plain("one"), Plain("two"), Plain("three"))
	lines, total := s.Window(0, 10)
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	got := lineTexts(lines)
	want := []string{"one", "two", "three"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected line %d to be %q, got %q", i, want[i], got[i])
		}
	}
}

func TestScrollbackEvictsOldestFirst(t *testing.T) {
	s := NewScrollback(2)
	s.Append(Plain("hello"), Plain("world"))
	lines, _ := s.Window(0, 10)
	if got := lineTexts(lines); got[0] != "hello" || got[1] != "world" {
		t.Fatalf("unexpected lines before eviction: %v", got)
	}
	s.Append(Plain("third"))
	lines, total := s.Window(0, 10)
	if total != 2 {
		t.Fatalf("expected total 2 after eviction, got %d", total)
	}
	if got := lineTexts(lines); got[0] != "world" || got[1] != "third" {
		t.Fatalf("unexpected lines after eviction: %v", got)
	}
}

func TestScrollbackNeverExceedsCapacity(t *testing.T) {
	s := NewScrollback(5)
	for i := 0; i < 50; i++ {
		s.Append(Plain("line"))
		if s.Len() > 5 {
			t.Fatalf("capacity exceeded: %d lines", s.Len())
		}
	}
	if s.Len() != 5 {
		t.Fatalf("expected 5 lines, got %d", s.Len())
	}
}

func TestScrollbackAppendWakesSubscribers(t *testing.T) {
	s := NewScrollback(10)
	wake, unsubscribe := s.Subscribe()
	defer unsubscribe()

	s.Append(Plain("one"))
	select {
	case <-wake:
	default:
		t.Fatalf("expected a pending wake after append")
	}

	// Wakes coalesce: many appends leave at most one pending signal.
	s.Append(Plain("two"))
	s.Append(Plain("three"))
	select {
	case <-wake:
	default:
		t.Fatalf("expected a pending wake after repeated appends")
	}
	select {
	case <-wake:
		t.Fatalf("expected coalesced wakes, got a second pending signal")
	default:
	}
}

func TestScrollbackEmptyAppendDoesNotWake(t *testing.T) {
	s := NewScrollback(10)
	wake, unsubscribe := s.Subscribe()
	defer unsubscribe()

	s.Append()
	select {
	case <-wake:
		t.Fatalf("expected no wake for an empty append")
	default:
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty buffer, got %d lines", s.Len())
	}
}

func TestScrollbackUnsubscribeStopsWakes(t *testing.T) {
	s := NewScrollback(10)
	wake, unsubscribe := s.Subscribe()
	unsubscribe()
	s.Append(Plain("one"))
	select {
	case <-wake:
		t.Fatalf("expected no wake after unsubscribe")
	default:
	}
}

func TestScrollbackWindowClampsOffset(t *testing.T) {
	s := NewScrollback(10)
	s.Append(Plain("a"), Plain("b"), Plain("c"), Plain("d"), Plain("e"))

	lines, _ := s.Window(100, 2)
	if got := lineTexts(lines); len(got) != 2 || got[0] != "d" || got[1] != "e" {
		t.Fatalf("expected window clamped to bottom, got %v", got)
	}

	lines, _ = s.Window(-3, 2)
	if got := lineTexts(lines); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected window clamped to top, got %v", got)
	}

	lines, total := s.Window(0, 0)
	if lines != nil || total != 5 {
		t.Fatalf("expected empty window for zero height, got %v total %d", lines, total)
	}
}

func TestScrollbackWindowCopiesLines(t *testing.T) {
	s := NewScrollback(3)
	s.Append(Plain("a"), Plain("b"), Plain("c"))
	lines, _ := s.Window(0, 3)
	s.Append(Plain("d"), Plain("e"), Plain("f"))
	if got := lineTexts(lines); got[0] != "a" || got[2] != "c" {
		t.Fatalf("window mutated by later appends: %v", got)
	}
}
