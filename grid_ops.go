package vtcore

// decSpecialGraphics maps the 31 DEC Special Graphics codepoints (0x60-0x7E)
// to the Unicode box-drawing / symbol glyphs they represent when G0/G1 is
// designated as CharsetLineDrawing, per spec §4.E.5's literal table.
var decSpecialGraphics = map[rune]rune{
	0x60: '◆', // ♦
	0x61: '▒', // ▒ (checkerboard)
	0x62: '␉', // HT symbol
	0x63: '␌', // FF symbol
	0x64: '␍', // CR symbol
	0x65: '␊', // LF symbol
	0x66: '°', // degree
	0x67: '±', // plus/minus
	0x68: '␤', // NL symbol
	0x69: '␋', // VT symbol
	0x6A: '┘', // ┘
	0x6B: '┐', // ┐
	0x6C: '┌', // ┌
	0x6D: '└', // └
	0x6E: '┼', // ┼
	0x6F: '⎺', // scan line 1
	0x70: '⎻', // scan line 3
	0x71: '─', // ─
	0x72: '⎼', // scan line 7
	0x73: '⎽', // scan line 9
	0x74: '├', // ├
	0x75: '┤', // ┤
	0x76: '┴', // ┴
	0x77: '┬', // ┬
	0x78: '│', // │
	0x79: '≤', // ≤
	0x7A: '≥', // ≥
	0x7B: 'π', // π
	0x7C: '≠', // ≠
	0x7D: '£', // £
	0x7E: '·', // ·
}

// translateCharset applies the active G0/G1 charset's substitution to r,
// per spec §4.E.5: only DEC Special Graphics does anything, and only for
// the enumerated 0x60-0x7E range.
func (g *Grid) translateCharset(r rune) rune {
	slot := g.cursor.ActiveCharset
	if g.cursor.G[slot] != CharsetLineDrawing {
		return r
	}
	if mapped, ok := decSpecialGraphics[r]; ok {
		return mapped
	}
	return r
}

// Print implements Performer: decode a printable scalar, translate it
// through the active charset, and write it into the grid per the
// five-step algorithm in spec §4.E.
func (g *Grid) Print(r rune) {
	r = g.translateCharset(r)
	width := RuneWidth(r)
	if width <= 0 {
		width = 1
	}
	g.printChar(r, width)
}

func (g *Grid) printChar(r rune, width int) {
	buf := g.activeBuffer()
	if g.cursor.PendingWrap {
		g.wrapCursor(buf)
	}
	if width == 2 && g.cursor.Col == g.columns-1 && g.modes.Has(ModeAutoWrap) {
		g.wrapCursor(buf)
	}
	if g.modes.Has(ModeInsert) {
		buf.InsertBlanks(g.cursor.Row, g.cursor.Col, width, g.cursor.TemplateBg)
	}

	if width == 2 && g.cursor.Col+1 >= g.columns {
		// No room for the paired spacer cell (autowrap is off, so the
		// earlier wrap above didn't fire): fall back to a single narrow
		// cell rather than stamping a wide cell with no pair.
		width = 1
	}

	cell := g.cursor.templateCell()
	cell.Codepoint = r
	cell.Width = uint8(width)
	if width == 2 {
		cell.SetAttr(AttrWideChar)
	}
	buf.SetCell(g.cursor.Row, g.cursor.Col, cell)
	if width == 2 {
		spacer := g.cursor.templateCell()
		spacer.Codepoint = 0
		spacer.Width = 0
		buf.SetCell(g.cursor.Row, g.cursor.Col+1, spacer)
	}

	g.cursor.Col += width
	if g.cursor.Col > g.columns-1 {
		g.cursor.Col = g.columns - 1
		if g.modes.Has(ModeAutoWrap) {
			g.cursor.PendingWrap = true
		}
	}
}

// wrapCursor performs the lazy wrap: mark the vacated row's last cell
// wrapped, move to column 0, and either advance a row or scroll the
// region if already at its bottom.
func (g *Grid) wrapCursor(buf *cellBuffer) {
	buf.SetRowWrapped(g.cursor.Row, true)
	g.cursor.Col = 0
	g.cursor.PendingWrap = false
	if g.cursor.Row == g.scrollBottom {
		g.scrollUp(1)
	} else if g.cursor.Row < g.rows-1 {
		g.cursor.Row++
	}
}

// Execute implements Performer for C0 control bytes.
func (g *Grid) Execute(b byte) {
	switch b {
	case 0x00: // NUL
	case 0x07: // BEL
		g.bellCount++
	case 0x08: // BS
		if g.cursor.Col > 0 {
			g.cursor.Col--
		}
		g.cursor.PendingWrap = false
	case 0x09: // HT
		g.tabForward(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		g.lineFeed()
	case 0x0D: // CR
		g.cursor.Col = 0
		g.cursor.PendingWrap = false
	case 0x0E: // SO
		g.cursor.ActiveCharset = CharsetSlotG1
	case 0x0F: // SI
		g.cursor.ActiveCharset = CharsetSlotG0
	case 0x18, 0x1A: // CAN, SUB — sequence already aborted by the parser
	}
}

// lineFeed advances the cursor a row, scrolling if at the scroll region's
// bottom. When LNM (mode 20) is set it also returns to column 0.
func (g *Grid) lineFeed() {
	g.cursor.PendingWrap = false
	if g.cursor.Row == g.scrollBottom {
		g.scrollUp(1)
	} else if g.cursor.Row < g.rows-1 {
		g.cursor.Row++
	}
	if g.modes.Has(ModeLineFeedNewLine) {
		g.cursor.Col = 0
	}
}

// scrollUp scrolls the active buffer's scroll region up by n, feeding
// scrollback only for the primary buffer.
func (g *Grid) scrollUp(n int) {
	buf := g.activeBuffer()
	var ring *ScrollbackRing
	if !g.usingAlternate {
		ring = g.scrollback
	}
	buf.ScrollUp(g.scrollTop, g.scrollBottom+1, n, g.cursor.TemplateBg, ring)
}

// scrollDown scrolls the active buffer's scroll region down by n. Never
// interacts with scrollback.
func (g *Grid) scrollDown(n int) {
	g.activeBuffer().ScrollDown(g.scrollTop, g.scrollBottom+1, n, g.cursor.TemplateBg)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// moveCursorTo sets the cursor's absolute position, clamping to the grid
// (or, in origin mode, to the scroll region) and clearing pending-wrap.
func (g *Grid) moveCursorTo(row, col int) {
	minRow, maxRow := 0, g.rows-1
	if g.modes.Has(ModeOrigin) {
		minRow, maxRow = g.scrollTop, g.scrollBottom
	}
	g.cursor.Row = clampInt(row, minRow, maxRow)
	g.cursor.Col = clampInt(col, 0, g.columns-1)
	g.cursor.PendingWrap = false
}

// moveCursorRelative shifts the cursor by (dRow, dCol), clamping to the
// grid bounds.
func (g *Grid) moveCursorRelative(dRow, dCol int) {
	g.cursor.Row = clampInt(g.cursor.Row+dRow, 0, g.rows-1)
	g.cursor.Col = clampInt(g.cursor.Col+dCol, 0, g.columns-1)
	g.cursor.PendingWrap = false
}

// tabForward advances the cursor to the nth next tab stop, stopping at
// the last column.
func (g *Grid) tabForward(n int) {
	buf := g.activeBuffer()
	for i := 0; i < n; i++ {
		g.cursor.Col = buf.NextTabStop(g.cursor.Col)
	}
	g.cursor.PendingWrap = false
}

// tabBackward moves the cursor to the nth previous tab stop.
func (g *Grid) tabBackward(n int) {
	buf := g.activeBuffer()
	for i := 0; i < n; i++ {
		g.cursor.Col = buf.PrevTabStop(g.cursor.Col)
	}
	g.cursor.PendingWrap = false
}

// eraseInLine implements EL: mode 0 erases cursor..end, 1 erases
// start..cursor inclusive, 2 erases the whole row. All fill with the
// current SGR background.
func (g *Grid) eraseInLine(mode int) {
	buf := g.activeBuffer()
	bg := g.cursor.TemplateBg
	switch mode {
	case 0:
		buf.ClearRowRange(g.cursor.Row, g.cursor.Col, g.columns, bg)
	case 1:
		buf.ClearRowRange(g.cursor.Row, 0, g.cursor.Col+1, bg)
	case 2:
		buf.ClearRow(g.cursor.Row, bg)
	}
}

// eraseInDisplay implements ED: mode 0 cursor..end of screen, 1
// start..cursor, 2 whole screen, 3 whole screen plus scrollback.
func (g *Grid) eraseInDisplay(mode int) {
	buf := g.activeBuffer()
	bg := g.cursor.TemplateBg
	switch mode {
	case 0:
		buf.ClearRowRange(g.cursor.Row, g.cursor.Col, g.columns, bg)
		for r := g.cursor.Row + 1; r < g.rows; r++ {
			buf.ClearRow(r, bg)
		}
	case 1:
		for r := 0; r < g.cursor.Row; r++ {
			buf.ClearRow(r, bg)
		}
		buf.ClearRowRange(g.cursor.Row, 0, g.cursor.Col+1, bg)
	case 2:
		buf.ClearAll(bg)
	case 3:
		buf.ClearAll(bg)
		g.scrollback.Clear()
	}
}

// eraseChars implements ECH: blank n cells starting at the cursor without
// moving it.
func (g *Grid) eraseChars(n int) {
	if n <= 0 {
		n = 1
	}
	g.activeBuffer().ClearRowRange(g.cursor.Row, g.cursor.Col, g.cursor.Col+n, g.cursor.TemplateBg)
}

// insertChars implements ICH: shift the row tail right by n, discarding
// overflow past the right margin.
func (g *Grid) insertChars(n int) {
	if n <= 0 {
		n = 1
	}
	g.activeBuffer().InsertBlanks(g.cursor.Row, g.cursor.Col, n, g.cursor.TemplateBg)
}

// deleteChars implements DCH: shift the row tail left by n.
func (g *Grid) deleteChars(n int) {
	if n <= 0 {
		n = 1
	}
	g.activeBuffer().DeleteChars(g.cursor.Row, g.cursor.Col, n, g.cursor.TemplateBg)
}

// insertLines implements IL: insert n blank lines at the cursor row
// within the scroll region.
func (g *Grid) insertLines(n int) {
	if n <= 0 {
		n = 1
	}
	if g.cursor.Row < g.scrollTop || g.cursor.Row > g.scrollBottom {
		return
	}
	g.activeBuffer().InsertLines(g.cursor.Row, n, g.scrollBottom+1, g.cursor.TemplateBg)
	g.cursor.Col = 0
	g.cursor.PendingWrap = false
}

// deleteLines implements DL: delete n lines at the cursor row within the
// scroll region.
func (g *Grid) deleteLines(n int) {
	if n <= 0 {
		n = 1
	}
	if g.cursor.Row < g.scrollTop || g.cursor.Row > g.scrollBottom {
		return
	}
	g.activeBuffer().DeleteLines(g.cursor.Row, n, g.scrollBottom+1, g.cursor.TemplateBg)
	g.cursor.Col = 0
	g.cursor.PendingWrap = false
}

// repeatLastChar implements REP: reprint the last-printed codepoint n
// more times at the cursor. vtcore tracks "last printed" as whatever sits
// immediately to the left of the cursor, matching the common
// implementation of REP rather than keeping a separate field.
func (g *Grid) repeatLastChar(n int) {
	if n <= 0 {
		n = 1
	}
	buf := g.activeBuffer()
	col := g.cursor.Col - 1
	if g.cursor.PendingWrap {
		col = g.cursor.Col
	}
	if col < 0 {
		return
	}
	cell := buf.Cell(g.cursor.Row, col)
	if cell == nil || cell.Codepoint == 0 {
		return
	}
	r := cell.Codepoint
	w := int(cell.Width)
	if w <= 0 {
		w = 1
	}
	for i := 0; i < n; i++ {
		g.printChar(r, w)
	}
}

// setScrollRegion implements DECSTBM. top/bottom are 1-based inputs; an
// invalid region (top >= bottom) is a no-op per spec §7 item 3.
func (g *Grid) setScrollRegion(top, bottom int) {
	top--
	bottom--
	if top < 0 {
		top = 0
	}
	if bottom < 0 || bottom >= g.rows {
		bottom = g.rows - 1
	}
	if top >= bottom {
		return
	}
	g.scrollTop, g.scrollBottom = top, bottom
	g.moveCursorTo(0, 0)
}

// decaln implements DECALN: fill the whole active buffer with 'E'.
func (g *Grid) decaln() {
	g.activeBuffer().FillWithE()
}

// enterAlternateScreen implements the mode-1049 entry half: save cursor
// state, switch buffers, clear the new active buffer, home the cursor.
func (g *Grid) enterAlternateScreen() {
	if g.usingAlternate {
		return
	}
	saved := g.cursor.Save(g.modes.Has(ModeOrigin), g.modes.Has(ModeAutoWrap))
	g.savedPrimary = &saved
	g.usingAlternate = true
	g.alternate.ClearAll(Default)
	g.cursor.Row, g.cursor.Col = 0, 0
	g.cursor.PendingWrap = false
}

// leaveAlternateScreen implements the mode-1049 exit half: restore the
// saved primary cursor/SGR/modes and clear synchronized output, since
// sync-output never survives a buffer switch (spec §4.E).
func (g *Grid) leaveAlternateScreen() {
	if !g.usingAlternate {
		return
	}
	g.usingAlternate = false
	if g.savedPrimary != nil {
		origin, autoWrap := g.cursor.Restore(*g.savedPrimary)
		g.setModeBit(ModeOrigin, origin)
		g.setModeBit(ModeAutoWrap, autoWrap)
		g.savedPrimary = nil
	}
	g.modes &^= ModeSyncOutput
	g.syncSnapshot = nil
	g.syncExitSnapshot = nil
}

func (g *Grid) setModeBit(m Mode, set bool) {
	if set {
		g.modes |= m
	} else {
		g.modes &^= m
	}
}

// saveCursor implements DECSC (ESC 7) / CSI s.
func (g *Grid) saveCursor() {
	saved := g.cursor.Save(g.modes.Has(ModeOrigin), g.modes.Has(ModeAutoWrap))
	if g.usingAlternate {
		g.savedAlternate = &saved
	} else {
		g.savedPrimary = &saved
	}
}

// restoreCursor implements DECRC (ESC 8) / CSI u. A missing saved slot is
// a no-op per spec §7 item 5.
func (g *Grid) restoreCursor() {
	var saved *SavedCursorState
	if g.usingAlternate {
		saved = g.savedAlternate
	} else {
		saved = g.savedPrimary
	}
	if saved == nil {
		return
	}
	origin, autoWrap := g.cursor.Restore(*saved)
	g.setModeBit(ModeOrigin, origin)
	g.setModeBit(ModeAutoWrap, autoWrap)
	g.cursor.Row = clampInt(g.cursor.Row, 0, g.rows-1)
	g.cursor.Col = clampInt(g.cursor.Col, 0, g.columns-1)
}
