package vtcore

import "testing"

func TestNewCellBuffer(t *testing.T) {
	b := newCellBuffer(24, 80)
	if b.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", b.Rows())
	}
	if b.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", b.Cols())
	}
}

func TestCellBufferCell(t *testing.T) {
	b := newCellBuffer(24, 80)
	cell := b.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected cell at (0,0)")
	}
	cell.Codepoint = 'A'

	retrieved := b.Cell(0, 0)
	if retrieved.Codepoint != 'A' {
		t.Errorf("expected 'A', got %q", retrieved.Codepoint)
	}
}

func TestCellBufferCellOutOfBounds(t *testing.T) {
	b := newCellBuffer(24, 80)
	if b.Cell(-1, 0) != nil {
		t.Error("expected nil for negative row")
	}
	if b.Cell(0, -1) != nil {
		t.Error("expected nil for negative col")
	}
	if b.Cell(24, 0) != nil {
		t.Error("expected nil for row >= rows")
	}
	if b.Cell(0, 80) != nil {
		t.Error("expected nil for col >= cols")
	}
}

func TestCellBufferClearRow(t *testing.T) {
	b := newCellBuffer(24, 80)
	b.Cell(0, 0).Codepoint = 'A'
	b.Cell(0, 1).Codepoint = 'B'

	b.ClearRow(0, Default)

	if b.Cell(0, 0).Codepoint != ' ' {
		t.Error("expected cell to be cleared")
	}
	if b.Cell(0, 1).Codepoint != ' ' {
		t.Error("expected cell to be cleared")
	}
}

func TestCellBufferScrollUp(t *testing.T) {
	b := newCellBuffer(5, 10)
	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Codepoint = rune('0' + row)
	}

	b.ScrollUp(0, 5, 1, Default, nil)

	if b.Cell(0, 0).Codepoint != '1' {
		t.Errorf("expected '1', got %q", b.Cell(0, 0).Codepoint)
	}
	if b.Cell(4, 0).Codepoint != ' ' {
		t.Errorf("expected space, got %q", b.Cell(4, 0).Codepoint)
	}
}

func TestCellBufferScrollDown(t *testing.T) {
	b := newCellBuffer(5, 10)
	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Codepoint = rune('0' + row)
	}

	b.ScrollDown(0, 5, 1, Default)

	if b.Cell(1, 0).Codepoint != '0' {
		t.Errorf("expected '0', got %q", b.Cell(1, 0).Codepoint)
	}
	if b.Cell(0, 0).Codepoint != ' ' {
		t.Errorf("expected space, got %q", b.Cell(0, 0).Codepoint)
	}
}

func TestCellBufferScrollUpFeedsScrollback(t *testing.T) {
	ring := NewScrollbackRing(100)
	b := newCellBuffer(5, 10)
	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Codepoint = rune('A' + row)
	}

	b.ScrollUp(0, 5, 1, Default, ring)

	if ring.Len() != 1 {
		t.Fatalf("expected 1 scrollback line, got %d", ring.Len())
	}
	l, _ := ring.Get(0)
	if l.Cells[0].Codepoint != 'A' {
		t.Errorf("expected 'A' in scrollback, got %q", l.Cells[0].Codepoint)
	}
}

func TestCellBufferScrollUpDoesNotFeedScrollbackWhenNotFromTop(t *testing.T) {
	ring := NewScrollbackRing(100)
	b := newCellBuffer(5, 10)
	b.ScrollUp(1, 5, 1, Default, ring)
	if ring.Len() != 0 {
		t.Errorf("expected scrolling a sub-region not to feed scrollback, got %d lines", ring.Len())
	}
}

func TestCellBufferLineContent(t *testing.T) {
	b := newCellBuffer(24, 80)
	for i, r := range "Hello" {
		b.Cell(0, i).Codepoint = r
	}
	if content := b.LineContent(0); content != "Hello" {
		t.Errorf("expected 'Hello', got %q", content)
	}
}

func TestCellBufferTabStops(t *testing.T) {
	b := newCellBuffer(24, 80)

	if next := b.NextTabStop(0); next != 8 {
		t.Errorf("expected next tab at 8, got %d", next)
	}
	if next := b.NextTabStop(8); next != 16 {
		t.Errorf("expected next tab at 16, got %d", next)
	}
	if prev := b.PrevTabStop(16); prev != 8 {
		t.Errorf("expected prev tab at 8, got %d", prev)
	}
}

func TestCellBufferResize(t *testing.T) {
	b := newCellBuffer(10, 20)
	b.Cell(0, 0).Codepoint = 'A'
	b.Cell(5, 10).Codepoint = 'B'

	b.Resize(20, 40)

	if b.Rows() != 20 || b.Cols() != 40 {
		t.Errorf("expected 20x40, got %dx%d", b.Rows(), b.Cols())
	}
	if b.Cell(0, 0).Codepoint != 'A' {
		t.Error("expected content to be preserved")
	}
	if b.Cell(5, 10).Codepoint != 'B' {
		t.Error("expected content to be preserved")
	}
}

func TestCellBufferDirtyTracking(t *testing.T) {
	b := newCellBuffer(24, 80)
	b.ClearDirty()

	if b.HasDirty() {
		t.Error("expected no dirty cells")
	}

	b.markDirty(3, 5)

	if !b.HasDirty() {
		t.Error("expected dirty cells")
	}
	min, max := b.DirtyRange()
	if min != 3 || max != 3 {
		t.Errorf("expected dirty range [3,3], got [%d,%d]", min, max)
	}
	if !b.cells[3][5].Dirty {
		t.Error("expected cell (3,5) marked dirty")
	}
}

func TestCellBufferInsertBlanks(t *testing.T) {
	b := newCellBuffer(24, 80)
	b.Cell(0, 0).Codepoint = 'A'
	b.Cell(0, 1).Codepoint = 'B'
	b.Cell(0, 2).Codepoint = 'C'

	b.InsertBlanks(0, 1, 2, Default)

	if b.Cell(0, 0).Codepoint != 'A' {
		t.Errorf("expected 'A', got %q", b.Cell(0, 0).Codepoint)
	}
	if b.Cell(0, 1).Codepoint != ' ' || b.Cell(0, 2).Codepoint != ' ' {
		t.Error("expected inserted blanks")
	}
	if b.Cell(0, 3).Codepoint != 'B' {
		t.Errorf("expected 'B', got %q", b.Cell(0, 3).Codepoint)
	}
}

func TestCellBufferDeleteChars(t *testing.T) {
	b := newCellBuffer(24, 80)
	for i, r := range "ABCD" {
		b.Cell(0, i).Codepoint = r
	}

	b.DeleteChars(0, 1, 2, Default)

	if b.Cell(0, 0).Codepoint != 'A' {
		t.Errorf("expected 'A', got %q", b.Cell(0, 0).Codepoint)
	}
	if b.Cell(0, 1).Codepoint != 'D' {
		t.Errorf("expected 'D', got %q", b.Cell(0, 1).Codepoint)
	}
}

func TestCellBufferRowWrappedTracking(t *testing.T) {
	b := newCellBuffer(5, 10)

	if b.RowWrapped(0) {
		t.Error("expected line 0 not wrapped initially")
	}

	b.SetRowWrapped(0, true)
	if !b.RowWrapped(0) {
		t.Error("expected line 0 to be wrapped")
	}

	b.SetRowWrapped(0, false)
	if b.RowWrapped(0) {
		t.Error("expected line 0 not wrapped after clear")
	}

	b.SetRowWrapped(-1, true)
	b.SetRowWrapped(100, true)
	if b.RowWrapped(-1) || b.RowWrapped(100) {
		t.Error("expected false for out of bounds")
	}
}

func TestCellBufferWrappedTrackingMovesWithScroll(t *testing.T) {
	b := newCellBuffer(5, 10)
	b.SetRowWrapped(0, true)
	b.SetRowWrapped(1, false)
	b.SetRowWrapped(2, true)

	b.ScrollUp(0, 5, 1, Default, nil)

	if b.RowWrapped(0) {
		t.Error("expected line 0 (was line 1) not wrapped after scroll")
	}
	if !b.RowWrapped(1) {
		t.Error("expected line 1 (was line 2) wrapped after scroll")
	}
	if b.RowWrapped(4) {
		t.Error("expected new bottom line not wrapped")
	}
}

func TestCellBufferFillWithE(t *testing.T) {
	b := newCellBuffer(3, 3)
	b.FillWithE()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if b.Cell(row, col).Codepoint != 'E' {
				t.Errorf("expected 'E' at (%d,%d)", row, col)
			}
		}
	}
}

func TestCellBufferGraphemeOverrideRoundTrip(t *testing.T) {
	const cluster = "\U0001F468‍\U0001F469‍\U0001F467"
	b := newCellBuffer(3, 10)
	if !b.SetGraphemeOverride(0, 0, cluster) {
		t.Fatal("expected SetGraphemeOverride to succeed in bounds")
	}
	if b.Cell(0, 0).Codepoint != graphemeSentinel {
		t.Error("expected sentinel codepoint after override")
	}
	got, ok := b.GraphemeOverride(0, 0)
	if !ok || got != cluster {
		t.Errorf("unexpected override readback: %q, %v", got, ok)
	}
	if content := b.LineContent(0); content != cluster {
		t.Errorf("expected LineContent to substitute the override, got %q", content)
	}
}

func TestCellBufferGraphemeOverrideOutOfBounds(t *testing.T) {
	b := newCellBuffer(3, 10)
	if b.SetGraphemeOverride(-1, 0, "x") {
		t.Error("expected out-of-range row to fail")
	}
	if b.SetGraphemeOverride(0, 10, "x") {
		t.Error("expected out-of-range col to fail")
	}
}

func TestCellBufferGraphemeOverrideClearedOnOverwrite(t *testing.T) {
	b := newCellBuffer(3, 10)
	b.SetGraphemeOverride(1, 2, "x")
	b.SetCell(1, 2, Cell{Codepoint: 'z', Width: 1})
	if _, ok := b.GraphemeOverride(1, 2); ok {
		t.Error("expected override cleared once the cell is overwritten")
	}
}

func TestCellBufferGraphemeOverrideSurvivesScrollToScrollback(t *testing.T) {
	b := newCellBuffer(2, 10)
	b.Cell(0, 0).Codepoint = 'h'
	b.Cell(0, 0).Width = 1
	b.SetGraphemeOverride(0, 1, "\U0001F469‍\U0001F4BB")
	b.Cell(0, 1).Width = 1

	ring := NewScrollbackRing(4)
	b.ScrollUp(0, 2, 1, Default, ring)

	sl, ok := ring.Get(0)
	if !ok {
		t.Fatal("expected evicted row to land in scrollback")
	}
	if sl.GraphemeOverrides[1] != "\U0001F469‍\U0001F4BB" {
		t.Errorf("expected grapheme override to survive scrolling into scrollback, got %v", sl.GraphemeOverrides)
	}
}
