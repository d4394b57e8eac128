package vtcore

// CellAttr is a bitmask of cell rendering attributes. It deliberately does
// not encode the underline sub-style (see UnderlineStyle) or width (see
// Cell.Width) — those vary over more than two states and get their own
// field.
type CellAttr uint16

const (
	AttrBold CellAttr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline // any underline is active; exact style is UnderlineStyle
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrikethrough
	AttrDoubleUnderline
	AttrWideChar   // this cell holds column 1 of a 2-column glyph
	AttrWrapped    // this row continues on the next row (set on the last cell)
	AttrOverline
)

// UnderlineStyle selects which of the six CSI 4:n sub-styles (or classic
// SGR 4) is active. It is only meaningful when AttrUnderline is set.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// graphemeSentinel marks a Cell whose Codepoint does not fit a single rune
// and must be looked up in the owning buffer's grapheme override table.
// Valid Unicode scalar values are all >= 0, so a negative sentinel can
// never collide with a real codepoint.
const graphemeSentinel rune = -1

// Cell is a single grid position: one glyph, its three colors, and its
// formatting attributes. Width 0 marks the second cell of a wide glyph
// (a spacer, never independently printable); width 1 and 2 are normal and
// wide glyphs respectively.
type Cell struct {
	Codepoint      rune
	Fg, Bg, Ul     Color
	Attrs          CellAttr
	UnderlineStyle UnderlineStyle
	Width          uint8
	Dirty          bool
}

// BlankCell returns a cell holding a single space with the given
// background, matching what an erase/scroll-fill operation writes.
func BlankCell(bg Color) Cell {
	return Cell{Codepoint: ' ', Fg: Default, Bg: bg, Ul: Default, Width: 1}
}

// Reset clears the cell back to a blank space with default colors and no
// attributes, preserving nothing.
func (c *Cell) Reset() {
	*c = Cell{Codepoint: ' ', Fg: Default, Bg: Default, Ul: Default, Width: 1}
}

// HasAttr reports whether attr is set.
func (c *Cell) HasAttr(attr CellAttr) bool { return c.Attrs&attr != 0 }

// SetAttr sets attr without affecting other attributes.
func (c *Cell) SetAttr(attr CellAttr) { c.Attrs |= attr }

// ClearAttr clears attr without affecting other attributes.
func (c *Cell) ClearAttr(attr CellAttr) { c.Attrs &^= attr }

// IsWide reports whether this cell is the first column of a 2-column
// glyph.
func (c *Cell) IsWide() bool { return c.Width == 2 }

// IsSpacer reports whether this cell is the second, non-printable column
// of a wide glyph.
func (c *Cell) IsSpacer() bool { return c.Width == 0 }

// IsBlank reports whether the cell holds no printable content: either a
// space or the buffer's uninitialized zero value.
func (c *Cell) IsBlank() bool {
	return c.Width != 0 && (c.Codepoint == ' ' || c.Codepoint == 0)
}
