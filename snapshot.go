package vtcore

// PackedCell is the 24-byte GPU-ready encoding of one grid cell (spec §3):
// position, glyph, three packed RGBA colors, attribute bits, and a byte of
// render flags plus the underline sub-style. It carries no pointers and no
// Go-specific representation, so a Snapshot's Cells slice can be copied to
// a renderer (or across a process boundary) by raw bytes if the caller
// wants to, though this package only ever hands out the Go struct form.
type PackedCell struct {
	Row, Col       uint16
	Glyph          uint32
	Fg, Bg, Ul     uint32
	Attributes     uint16
	Flags          uint8
	UnderlineStyle uint8
}

// Flag bits for PackedCell.Flags.
const (
	CellFlagDirty    uint8 = 1 << iota
	CellFlagCursor         // this cell is at the current cursor position
	CellFlagSelected       // reserved: vtcore has no selection model of its own
)

// Range is an inclusive-exclusive span over a Snapshot's flat Cells index,
// in [Start, End) form. It is the Go realization of the spec's
// `Option<Range>` for dirtyRange: a Snapshot with no dirty cells carries a
// nil *Range rather than a zero-value one, so callers can't mistake "no
// dirty cells" for "cell 0 is dirty".
type Range struct {
	Start, End int
}

// Snapshot is an immutable, flat, row-major packing of one grid frame,
// ready to hand to a renderer (spec §3/§4.I). Once built it shares no
// mutable state with the Grid that produced it.
type Snapshot struct {
	Cells         []PackedCell
	DirtyRange    *Range
	CursorRow     int
	CursorCol     int
	CursorVisible bool
	CursorStyle   CursorStyle
	Columns       int
	Rows          int
}

// packColor converts a Color to 32-bit RGBA (alpha fixed at 0xFF), using
// palette/defFg/defBg to resolve indexed and default colors. The default
// color resolves to fully transparent (alpha 0) per spec §4.I step 2,
// letting a renderer tell "explicitly set to this RGB" apart from
// "inherits the terminal's default" without a second field.
func packColor(c Color, palette *[256]RGB8, defFg, defBg RGB8, isFg bool) uint32 {
	if c.Tag == ColorDefault {
		rgb := defBg
		if isFg {
			rgb = defFg
		}
		return uint32(rgb.R)<<24 | uint32(rgb.G)<<16 | uint32(rgb.B)<<8
	}
	rgb := resolve(c, palette, defFg, defBg, isFg)
	return uint32(rgb.R)<<24 | uint32(rgb.G)<<16 | uint32(rgb.B)<<8 | 0xFF
}

// packCell converts one grid Cell at (row, col) into its PackedCell form,
// applying the dirty/cursor flags. The foreground is packed as stored: the
// bold-is-bright substitution already happened when the cell was written
// (see CursorState.templateCell).
func (g *Grid) packCell(row, col int, c Cell, dirty, cursorHere bool) PackedCell {
	fg := c.Fg
	glyph := uint32(c.Codepoint)
	if c.Codepoint < 0 {
		glyph = 0
	}
	var flags uint8
	if dirty {
		flags |= CellFlagDirty
	}
	if cursorHere {
		flags |= CellFlagCursor
	}
	return PackedCell{
		Row:            uint16(row),
		Col:            uint16(col),
		Glyph:          glyph,
		Fg:             packColor(fg, &g.palette, g.defaultFg, g.defaultBg, true),
		Bg:             packColor(c.Bg, &g.palette, g.defaultFg, g.defaultBg, false),
		Ul:             packColor(c.Ul, &g.palette, g.defaultFg, g.defaultBg, true),
		Attributes:     uint16(c.Attrs),
		Flags:          flags,
		UnderlineStyle: uint8(c.UnderlineStyle),
	}
}

// blankRow returns a row of n blank cells with the given background, used
// to pad a composited scrollback/screen frame out to the grid's full row
// count (e.g. when scrollback doesn't hold enough lines yet).
func blankRow(n int, bg Color) []Cell {
	row := make([]Cell, n)
	for i := range row {
		row[i] = BlankCell(bg)
	}
	return row
}

// padCells returns cells padded (or truncated) to exactly n entries with
// blank cells, since scrollback lines are stored trimmed of trailing
// blanks (spec §4.B) but a Snapshot row must be exactly Columns wide.
func padCells(cells []Cell, n int) []Cell {
	if len(cells) == n {
		return cells
	}
	if len(cells) > n {
		return cells[:n]
	}
	out := make([]Cell, n)
	copy(out, cells)
	for i := len(cells); i < n; i++ {
		out[i] = BlankCell(Default)
	}
	return out
}

// buildSnapshot assembles a fresh Snapshot from the current grid state
// without touching dirty tracking or the sync-output cache — the caller
// (Snapshot, or the sync-exit-transition handler) decides what to do with
// those. scrollOffset > 0 composites that many scrollback lines into the
// top of the frame, pushing the bottom-most screen rows off (spec §4.I's
// `snapshot(scrollOffset)` variant); it is only meaningful for the primary
// buffer, since the alternate buffer never feeds scrollback.
func (g *Grid) buildSnapshot(scrollOffset int) Snapshot {
	buf := g.activeBuffer()
	cols, rows := g.columns, g.rows

	liveView := scrollOffset == 0
	dirtyMin, dirtyMax := 1, 0 // empty range by default
	if liveView && buf.HasDirty() {
		dirtyMin, dirtyMax = buf.DirtyRange()
	}

	rowCells := make([][]Cell, 0, rows)
	if scrollOffset > 0 && !g.usingAlternate {
		avail := g.scrollback.Len()
		if scrollOffset > avail {
			scrollOffset = avail
		}
		start := avail - scrollOffset
		for i := start; i < avail && len(rowCells) < rows; i++ {
			line, ok := g.scrollback.Get(i)
			if !ok {
				continue
			}
			rowCells = append(rowCells, padCells(line.Cells, cols))
		}
	}
	for r := 0; r < buf.Rows() && len(rowCells) < rows; r++ {
		rowCells = append(rowCells, buf.cells[r])
	}
	for len(rowCells) < rows {
		rowCells = append(rowCells, blankRow(cols, Default))
	}

	cells := make([]PackedCell, 0, rows*cols)
	for r, row := range rowCells {
		for c, cell := range row {
			dirty := liveView && r >= dirtyMin && r <= dirtyMax
			cursorHere := liveView && g.cursor.Visible && r == g.cursor.Row && c == g.cursor.Col
			cells = append(cells, g.packCell(r, c, cell, dirty, cursorHere))
		}
	}

	var dr *Range
	if liveView && dirtyMax >= dirtyMin {
		dr = &Range{Start: dirtyMin * cols, End: (dirtyMax + 1) * cols}
	}

	return Snapshot{
		Cells:         cells,
		DirtyRange:    dr,
		CursorRow:     g.cursor.Row,
		CursorCol:     g.cursor.Col,
		CursorVisible: g.cursor.Visible,
		CursorStyle:   g.cursor.Style,
		Columns:       cols,
		Rows:          rows,
	}
}

// Snapshot returns the current frame. While synchronized-output mode
// (DEC 2026) is active, it returns the cached syncExitSnapshot (if one was
// captured on entry) or the last live snapshot instead of reflecting
// further mutations, per spec §4.E's freeze contract: consecutive calls
// return byte-identical frames until mode 2026 is cleared. Otherwise it
// builds a fresh frame and consumes the grid's dirty state.
func (g *Grid) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.modes.Has(ModeSyncOutput) {
		if g.syncExitSnapshot != nil {
			return *g.syncExitSnapshot
		}
		if g.syncSnapshot != nil {
			return *g.syncSnapshot
		}
	}
	snap := g.buildSnapshot(0)
	g.activeBuffer().ClearDirty()
	g.syncSnapshot = &snap
	return snap
}

// SnapshotAt returns a frame with scrollOffset scrollback lines composited
// into the top, for a renderer showing a scrolled-back view. It never
// consumes dirty state and ignores the sync-output freeze, since a
// scrolled-back view is not "the live frame" the freeze protocol governs.
func (g *Grid) SnapshotAt(scrollOffset int) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if scrollOffset <= 0 {
		return g.buildSnapshot(0)
	}
	return g.buildSnapshot(scrollOffset)
}
