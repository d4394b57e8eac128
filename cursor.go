package vtcore

// CursorStyle determines how the cursor is rendered (DECSCUSR).
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Charset selects the character set mapping for a G0-G3 slot.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// CharsetSlot selects one of the four character set slots.
type CharsetSlot int

const (
	CharsetSlotG0 CharsetSlot = iota
	CharsetSlotG1
	CharsetSlotG2
	CharsetSlotG3
)

// CursorState tracks cursor position, rendering style, and the SGR template
// applied to newly printed cells.
//
// PendingWrap implements the lazy-wrap contract: printing into the last
// column never wraps immediately. Instead PendingWrap is set, and only the
// *next* printable character (or an explicit control sequence elsewhere)
// consumes it by moving to column 0 of the next row and marking the
// vacated row's last cell AttrWrapped. This matches how real terminals
// avoid an extra blank line when a line's last character lands exactly on
// the right margin.
type CursorState struct {
	Row, Col       int
	Style          CursorStyle
	Visible        bool
	PendingWrap    bool
	TemplateFg     Color
	TemplateBg     Color
	TemplateUl     Color
	TemplateAttrs  CellAttr
	UnderlineStyle UnderlineStyle
	ActiveCharset  CharsetSlot
	G              [4]Charset

	// FgBasicIndex tracks whether TemplateFg was most recently set by a
	// basic 8-color SGR code (30-37): -1 means "no" (39, 90-97, or an
	// extended 256/truecolor code was used instead, or default). The
	// bold-is-bright policy (spec §4.G) only ever applies to this basic
	// path — 256-color and truecolor foregrounds are never brightened —
	// and it must be resolved at the moment a cell is actually printed
	// rather than when the SGR code is parsed, since clearing bold with
	// SGR 22 has to un-brighten the *next* printed character without any
	// further color code appearing in between.
	FgBasicIndex int8
}

// NewCursorState creates a cursor at (0, 0), visible, blinking block style,
// with a default SGR template.
func NewCursorState() CursorState {
	return CursorState{
		Visible:      true,
		Style:        CursorStyleBlinkingBlock,
		TemplateFg:   Default,
		TemplateBg:   Default,
		TemplateUl:   Default,
		FgBasicIndex: -1,
	}
}

// templateCell returns a blank cell carrying the cursor's current SGR
// template, as written by a print operation before the codepoint is set.
// This is the one place the bold-is-bright substitution happens.
func (c *CursorState) templateCell() Cell {
	fg := c.TemplateFg
	if c.FgBasicIndex >= 0 && c.TemplateAttrs&AttrBold != 0 {
		fg = brighten(Indexed(uint8(c.FgBasicIndex)))
	}
	return Cell{
		Fg:             fg,
		Bg:             c.TemplateBg,
		Ul:             c.TemplateUl,
		Attrs:          c.TemplateAttrs,
		UnderlineStyle: c.UnderlineStyle,
		Width:          1,
	}
}

// SavedCursorState is the DECSC/DECRC (and alternate-screen-swap) snapshot:
// position, full SGR template, origin mode, and charset state.
type SavedCursorState struct {
	Row, Col       int
	Fg, Bg, Ul     Color
	Attrs          CellAttr
	UnderlineStyle UnderlineStyle
	OriginMode     bool
	AutoWrap       bool
	ActiveCharset  CharsetSlot
	G              [4]Charset
	FgBasicIndex   int8
}

// Save captures the cursor's restorable state.
func (c *CursorState) Save(originMode, autoWrap bool) SavedCursorState {
	return SavedCursorState{
		Row: c.Row, Col: c.Col,
		Fg: c.TemplateFg, Bg: c.TemplateBg, Ul: c.TemplateUl,
		Attrs: c.TemplateAttrs, UnderlineStyle: c.UnderlineStyle,
		OriginMode: originMode, AutoWrap: autoWrap,
		ActiveCharset: c.ActiveCharset, G: c.G,
		FgBasicIndex: c.FgBasicIndex,
	}
}

// Restore applies a previously saved state, returning the restored
// originMode/autoWrap bits so the caller (Grid) can re-apply them to its
// mode bitset.
func (c *CursorState) Restore(s SavedCursorState) (originMode, autoWrap bool) {
	c.Row, c.Col = s.Row, s.Col
	c.TemplateFg, c.TemplateBg, c.TemplateUl = s.Fg, s.Bg, s.Ul
	c.TemplateAttrs = s.Attrs
	c.UnderlineStyle = s.UnderlineStyle
	c.ActiveCharset = s.ActiveCharset
	c.G = s.G
	c.PendingWrap = false
	c.FgBasicIndex = s.FgBasicIndex
	return s.OriginMode, s.AutoWrap
}
