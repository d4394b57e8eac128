package vtcore

import "testing"

func TestSnapshotPacksPrintedGlyphs(t *testing.T) {
	g := NewGrid(10, 3)
	g.Feed([]byte("Hi"))

	snap := g.Snapshot()
	if snap.Columns != 10 || snap.Rows != 3 {
		t.Fatalf("unexpected dimensions: %dx%d", snap.Columns, snap.Rows)
	}
	if got := snap.Cells[0].Glyph; got != uint32('H') {
		t.Errorf("cells[0].Glyph = %d, want 'H'", got)
	}
	if got := snap.Cells[1].Glyph; got != uint32('i') {
		t.Errorf("cells[1].Glyph = %d, want 'i'", got)
	}
	if snap.Cells[2].Glyph != uint32(' ') {
		t.Errorf("cells[2].Glyph = %d, want blank space", snap.Cells[2].Glyph)
	}
}

func TestSnapshotBrightensBoldIndexedForeground(t *testing.T) {
	g := NewGrid(10, 3)
	g.Feed([]byte("\x1b[1;31mX"))

	snap := g.Snapshot()
	wantFg := packColor(Indexed(9), &g.palette, g.defaultFg, g.defaultBg, true)
	if snap.Cells[0].Fg != wantFg {
		t.Errorf("expected bold-brightened fg packed as %#x, got %#x", wantFg, snap.Cells[0].Fg)
	}
}

func TestSnapshotCursorFlag(t *testing.T) {
	g := NewGrid(10, 3)
	g.Feed([]byte("\x1b[2;3H"))

	snap := g.Snapshot()
	idx := 1*10 + 2
	if snap.Cells[idx].Flags&CellFlagCursor == 0 {
		t.Error("expected cursor flag set at the cursor's cell")
	}
	for i, c := range snap.Cells {
		if i == idx {
			continue
		}
		if c.Flags&CellFlagCursor != 0 {
			t.Errorf("unexpected cursor flag at cell %d", i)
		}
	}
}

func TestSnapshotConsumesDirty(t *testing.T) {
	g := NewGrid(10, 3)
	g.Feed([]byte("hi"))

	if !g.activeBuffer().HasDirty() {
		t.Fatal("expected dirty state after printing")
	}
	snap := g.Snapshot()
	if snap.DirtyRange == nil {
		t.Error("expected a non-nil dirty range on the snapshot that observed the mutation")
	}
	if g.activeBuffer().HasDirty() {
		t.Error("expected Snapshot to consume dirty state")
	}

	snap2 := g.Snapshot()
	if snap2.DirtyRange != nil {
		t.Error("expected no dirty range on a snapshot with no intervening mutation")
	}
}

func TestSnapshotAtCompositesScrollback(t *testing.T) {
	g := NewGrid(5, 3, WithMaxScrollback(10))
	g.Feed([]byte("row0\r\nrow1\r\nrow2\r\nrow3\r\nrow4"))

	snap := g.SnapshotAt(2)
	if snap.Rows != 3 {
		t.Fatalf("unexpected row count: %d", snap.Rows)
	}
	// With 2 scrollback lines composited at the top, the first row should
	// come from scrollback ("row0"), not from whatever currently sits in
	// row 0 of the live screen ("row2").
	if got := snap.Cells[3].Glyph; got != uint32('0') {
		t.Errorf("expected frame row 0 to be scrollback line \"row0\", got glyph %q at col 3", rune(got))
	}
}

func TestSnapshotAtDoesNotConsumeDirty(t *testing.T) {
	g := NewGrid(5, 3, WithMaxScrollback(10))
	g.Feed([]byte("hi"))
	_ = g.SnapshotAt(0)
	if !g.activeBuffer().HasDirty() {
		t.Error("expected SnapshotAt to leave dirty state untouched")
	}
}
