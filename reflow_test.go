package vtcore

import "testing"

func cellsOf(s string, width int) []Cell {
	cells := make([]Cell, width)
	for i := 0; i < width; i++ {
		cells[i] = BlankCell(Default)
	}
	for i, r := range s {
		if i >= width {
			break
		}
		cells[i] = Cell{Codepoint: r, Fg: Default, Bg: Default, Ul: Default, Width: 1}
	}
	return cells
}

func rowsText(rows [][]Cell) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = newScrollbackLine(row, false, nil).text()
	}
	return out
}

func TestReflowNarrowToWideMergesWrappedLines(t *testing.T) {
	// "hello worl" wraps into "d" on row 1 at width 10.
	screen := [][]Cell{
		cellsOf("hello worl", 10),
		cellsOf("d", 10),
		cellsOf("", 10),
	}
	screen[0][9].SetAttr(AttrWrapped)

	_, newScreen, _, _ := reflow(nil, screen, 10, 20, 3, 1, 1, Default)

	got := rowsText(newScreen)
	if got[0] != "hello world" {
		t.Errorf("expected merged line 'hello world', got %q", got[0])
	}
}

func TestReflowWideToNarrowSplitsLines(t *testing.T) {
	screen := [][]Cell{
		cellsOf("hello world", 20),
		cellsOf("", 20),
		cellsOf("", 20),
	}

	newScrollback, newScreen, _, _ := reflow(nil, screen, 20, 5, 4, 0, 0, Default)

	// "hello world" rewraps into "hello", " worl", "d", followed by the two
	// blank rows: five rows for a 4-row screen, so "hello" moves into
	// scrollback.
	if len(newScrollback) != 1 || newScrollback[0].text() != "hello" || !newScrollback[0].Wrapped {
		t.Errorf("expected wrapped first chunk 'hello' in scrollback, got %+v", newScrollback)
	}
	got := rowsText(newScreen)
	if got[0] != " worl" || got[1] != "d" {
		t.Errorf("unexpected rewrap: %q / %q", got[0], got[1])
	}
	if !newScreen[0][4].HasAttr(AttrWrapped) {
		t.Error("expected second chunk's last cell marked wrapped")
	}
}

func TestReflowTracksCursorThroughRewrap(t *testing.T) {
	screen := [][]Cell{
		cellsOf("hello world", 20),
		cellsOf("", 20),
		cellsOf("", 20),
	}
	// cursor sits on the 'w' of "world" (index 6) on row 0. The rewrap
	// yields five rows for a 4-row screen, so "hello" moves into scrollback
	// and " worl" becomes screen row 0.
	_, newScreen, newRow, newCol := reflow(nil, screen, 20, 5, 4, 0, 6, Default)

	if newRow != 0 || newCol != 1 {
		t.Errorf("expected cursor at (0,1) after rewrap, got (%d,%d)", newRow, newCol)
	}
	got := rowsText(newScreen)
	if got[newRow][newCol] != 'w' {
		t.Errorf("expected cursor to land on 'w', landed on %q", got[newRow][newCol])
	}
}

func TestReflowPushesOverflowIntoScrollback(t *testing.T) {
	screen := [][]Cell{
		cellsOf("aaaaa", 5),
		cellsOf("bbbbb", 5),
		cellsOf("ccccc", 5),
	}

	newScrollback, newScreen, _, _ := reflow(nil, screen, 5, 5, 2, 0, 0, Default)

	if len(newScrollback) != 1 {
		t.Fatalf("expected 1 line pushed to scrollback, got %d", len(newScrollback))
	}
	if newScrollback[0].text() != "aaaaa" {
		t.Errorf("expected oldest row pushed first, got %q", newScrollback[0].text())
	}
	got := rowsText(newScreen)
	if got[0] != "bbbbb" || got[1] != "ccccc" {
		t.Errorf("unexpected screen after shrink: %v", got)
	}
}

func TestReflowSameWidthIsRowCountAdjustment(t *testing.T) {
	screen := [][]Cell{
		cellsOf("one", 10),
		cellsOf("two", 10),
	}

	_, newScreen, _, _ := reflow(nil, screen, 10, 10, 3, 0, 0, Default)

	got := rowsText(newScreen)
	if got[0] != "one" || got[1] != "two" || got[2] != "" {
		t.Errorf("unexpected rows after same-width grow: %v", got)
	}
}
