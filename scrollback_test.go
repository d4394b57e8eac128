package vtcore

import "testing"

func line(s string) ScrollbackLine {
	cells := make([]Cell, len(s))
	for i, r := range s {
		cells[i] = Cell{Codepoint: r, Width: 1}
	}
	return ScrollbackLine{Cells: cells}
}

func TestScrollbackRingPushGet(t *testing.T) {
	r := NewScrollbackRing(3)
	r.Push(line("a"))
	r.Push(line("b"))
	r.Push(line("c"))

	if r.Len() != 3 {
		t.Fatalf("expected len 3, got %d", r.Len())
	}
	got, ok := r.Get(0)
	if !ok || got.text() != "a" {
		t.Errorf("expected oldest line 'a', got %+v", got)
	}
	got, ok = r.Get(2)
	if !ok || got.text() != "c" {
		t.Errorf("expected newest line 'c', got %+v", got)
	}
}

func TestScrollbackRingEvictsOldest(t *testing.T) {
	r := NewScrollbackRing(2)
	r.Push(line("a"))
	r.Push(line("b"))
	r.Push(line("c")) // evicts "a"

	if r.Len() != 2 {
		t.Fatalf("expected len 2, got %d", r.Len())
	}
	got, _ := r.Get(0)
	if got.text() != "b" {
		t.Errorf("expected oldest surviving line 'b', got %q", got.text())
	}
	got, _ = r.Get(1)
	if got.text() != "c" {
		t.Errorf("expected newest line 'c', got %q", got.text())
	}
}

func TestScrollbackRingPopLast(t *testing.T) {
	r := NewScrollbackRing(4)
	r.Push(line("a"))
	r.Push(line("b"))

	popped, ok := r.PopLast()
	if !ok || popped.text() != "b" {
		t.Errorf("expected to pop 'b', got %+v ok=%v", popped, ok)
	}
	if r.Len() != 1 {
		t.Errorf("expected len 1 after pop, got %d", r.Len())
	}

	popped, ok = r.PopLast()
	if !ok || popped.text() != "a" {
		t.Errorf("expected to pop 'a', got %+v ok=%v", popped, ok)
	}
	if r.Len() != 0 {
		t.Errorf("expected empty ring, got len %d", r.Len())
	}
	if _, ok := r.PopLast(); ok {
		t.Error("expected PopLast on empty ring to report false")
	}
}

func TestScrollbackRingClear(t *testing.T) {
	r := NewScrollbackRing(4)
	r.Push(line("a"))
	r.Push(line("b"))
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("expected empty ring after Clear, got len %d", r.Len())
	}
	r.Push(line("c"))
	got, _ := r.Get(0)
	if got.text() != "c" {
		t.Errorf("expected ring usable after Clear, got %q", got.text())
	}
}

func TestScrollbackRingZeroCapacity(t *testing.T) {
	r := NewScrollbackRing(0)
	r.Push(line("a"))
	if r.Len() != 0 {
		t.Error("expected push on zero-capacity ring to be a no-op")
	}
}

func TestScrollbackLineTrimsTrailingBlanks(t *testing.T) {
	cells := []Cell{
		{Codepoint: 'h', Width: 1},
		{Codepoint: 'i', Width: 1},
		{Codepoint: ' ', Width: 1},
		{Codepoint: ' ', Width: 1},
	}
	sl := newScrollbackLine(cells, false, nil)
	if len(sl.Cells) != 2 {
		t.Errorf("expected trailing blanks trimmed to length 2, got %d", len(sl.Cells))
	}
}

func TestScrollbackSearch(t *testing.T) {
	r := NewScrollbackRing(8)
	r.Push(line("hello world"))
	r.Push(line("goodbye"))
	r.Push(line("Hello again"))

	matches := r.Search("hello", false)
	if len(matches) != 2 {
		t.Errorf("expected 2 case-insensitive matches, got %d: %v", len(matches), matches)
	}

	matches = r.Search("hello", true)
	if len(matches) != 1 || matches[0] != 0 {
		t.Errorf("expected 1 case-sensitive match at index 0, got %v", matches)
	}
}
