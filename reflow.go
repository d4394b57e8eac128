package vtcore

// reflow rewraps scrollback + screen content at a new column width and
// row count, tracking the cursor position through the transform. It
// implements the spec's seven-step algorithm:
//
//  1. Flatten scrollback (oldest-first) followed by the screen rows
//     (top-first) into one physical-row sequence.
//  2. Group consecutive rows into logical lines by following the
//     AttrWrapped chain; trim trailing blanks from each logical line.
//  3. Locate which logical line (and offset within it) holds the cursor.
//  4. Rewrap every logical line's cells into chunks of newCols width,
//     padding the final chunk and marking AttrWrapped on every non-final
//     chunk's last cell.
//  5. Recompute the cursor's new row/col from its recorded offset.
//  6. Split the produced rows into new scrollback (everything but the
//     last newRows) and new screen (the last newRows, padded with blank
//     rows if there aren't enough).
//  7. Clamp the cursor into the new screen bounds.
//
// When newCols == oldCols this naturally degenerates to a pure row-count
// adjustment: a logical line is a concatenation of full oldCols-wide rows,
// so re-chunking it at the same width reproduces the original rows.
func reflow(scrollback []ScrollbackLine, screen [][]Cell, oldCols, newCols, newRows, cursorRow, cursorCol int, bg Color) (newScrollback []ScrollbackLine, newScreen [][]Cell, newCursorRow, newCursorCol int) {
	if newCols <= 0 || newRows <= 0 {
		return scrollback, screen, cursorRow, cursorCol
	}

	type physicalRow struct {
		cells   []Cell
		wrapped bool
	}

	flat := make([]physicalRow, 0, len(scrollback)+len(screen))
	for _, l := range scrollback {
		cells := make([]Cell, oldCols)
		copy(cells, l.Cells)
		for i := len(l.Cells); i < oldCols; i++ {
			cells[i] = BlankCell(bg)
		}
		flat = append(flat, physicalRow{cells: cells, wrapped: l.Wrapped})
	}
	cursorFlatIndex := len(scrollback) + cursorRow
	for _, row := range screen {
		cells := make([]Cell, oldCols)
		copy(cells, row)
		wrapped := oldCols > 0 && cells[oldCols-1].HasAttr(AttrWrapped)
		flat = append(flat, physicalRow{cells: cells, wrapped: wrapped})
	}

	// Step 2/3: group into logical lines, recording which one holds the
	// cursor and the cursor's flat offset within it.
	type logicalLine struct {
		cells []Cell
	}
	var lines []logicalLine
	targetLine, targetOffset := -1, 0

	i := 0
	for i < len(flat) {
		var content []Cell
		for {
			row := flat[i]
			base := len(content)
			content = append(content, row.cells...)
			if i == cursorFlatIndex {
				targetLine = len(lines)
				targetOffset = base + cursorCol
			}
			if !row.wrapped || i == len(flat)-1 {
				i++
				break
			}
			i++
		}
		trim := lastContentIndex(content)
		lines = append(lines, logicalLine{cells: content[:trim]})
	}

	if targetLine < 0 && len(lines) > 0 {
		targetLine = len(lines) - 1
		targetOffset = len(lines[targetLine].cells)
	}

	// Step 4: rewrap each logical line into newCols-wide chunks.
	var outRows [][]Cell
	targetOutRow, targetOutCol := 0, 0
	for li, ln := range lines {
		cells := ln.cells
		if len(cells) == 0 {
			row := make([]Cell, newCols)
			for c := range row {
				row[c] = BlankCell(bg)
			}
			if li == targetLine {
				targetOutRow, targetOutCol = len(outRows), 0
			}
			outRows = append(outRows, row)
			continue
		}
		for off := 0; off < len(cells); off += newCols {
			end := off + newCols
			if end > len(cells) {
				end = len(cells)
			}
			chunk := make([]Cell, newCols)
			copy(chunk, cells[off:end])
			for c := end - off; c < newCols; c++ {
				chunk[c] = BlankCell(bg)
			}
			if end < len(cells) {
				chunk[newCols-1].SetAttr(AttrWrapped)
			} else {
				chunk[newCols-1].ClearAttr(AttrWrapped)
			}
			if li == targetLine && targetOffset >= off && targetOffset < off+newCols {
				targetOutRow, targetOutCol = len(outRows), targetOffset-off
			}
			outRows = append(outRows, chunk)
		}
		if li == targetLine && targetOffset == len(cells) && len(cells)%newCols == 0 && len(cells) > 0 {
			targetOutRow, targetOutCol = len(outRows)-1, newCols
		}
	}

	// Step 6: split into scrollback (everything but the trailing newRows)
	// and screen (the trailing newRows, padded with blank rows below the
	// content if there is not enough of it).
	var scrollCount int
	if len(outRows) > newRows {
		scrollCount = len(outRows) - newRows
	}
	// Grapheme overrides (see cellBuffer.SetGraphemeOverride) are not
	// threaded through reflow: logical lines are flattened and re-chunked
	// at arbitrary offsets, and the override table is rare enough that
	// re-deriving its column mapping here isn't worth the complexity. A
	// cell left with the sentinel codepoint after a resize falls back to
	// U+FFFD in ScrollbackLine.text() rather than losing its width slot.
	newScrollback = make([]ScrollbackLine, 0, scrollCount)
	for _, row := range outRows[:scrollCount] {
		newScrollback = append(newScrollback, newScrollbackLine(row, row[len(row)-1].HasAttr(AttrWrapped), nil))
	}

	screenRows := outRows[scrollCount:]
	newScreen = make([][]Cell, newRows)
	for r, row := range screenRows {
		newScreen[r] = row
	}
	for r := len(screenRows); r < newRows; r++ {
		blankRow := make([]Cell, newCols)
		for c := range blankRow {
			blankRow[c] = BlankCell(bg)
		}
		newScreen[r] = blankRow
	}

	// Step 5/7: recompute and clamp the cursor.
	newCursorRow = targetOutRow - scrollCount
	newCursorCol = targetOutCol
	if newCursorRow < 0 {
		newCursorRow = 0
	}
	if newCursorRow >= newRows {
		newCursorRow = newRows - 1
	}
	if newCursorCol >= newCols {
		newCursorCol = newCols - 1
	}
	if newCursorCol < 0 {
		newCursorCol = 0
	}
	return newScrollback, newScreen, newCursorRow, newCursorCol
}
