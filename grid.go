package vtcore

import (
	"io"
	"sync"
)

// Default construction dimensions, mirroring the teacher's DEFAULT_ROWS /
// DEFAULT_COLS constants.
const (
	DefaultColumns       = 80
	DefaultRows          = 24
	DefaultMaxScrollback = 10000
)

// OSCState holds the volatile strings a Grid accumulates via OSC
// sequences. None of it survives a fullReset, and none of it is persisted
// beyond what the host reads through the query API (spec §6 "Persisted
// state: None at the core level").
type OSCState struct {
	WindowTitle      string
	IconName         string
	WorkingDirectory string
	Hyperlink        string
}

// Grid is the primary/alternate cell buffer pair plus every piece of
// state a VT-series terminal needs to interpret a byte stream: cursor,
// scroll region, SGR template, modes, OSC state, and dirty tracking. It
// implements [Performer] so a [Parser] can drive it directly.
//
// A Grid is safe for concurrent use: Feed, Snapshot, and Resize all take
// the same mutex, matching the single-isolation-domain contract in spec
// §5 — a Feed call applies a whole chunk before any Snapshot observes a
// partial effect of it.
type Grid struct {
	mu sync.RWMutex

	columns, rows int

	primary        *cellBuffer
	alternate      *cellBuffer
	usingAlternate bool

	scrollback    *ScrollbackRing
	maxScrollback int

	cursor         CursorState
	savedPrimary   *SavedCursorState
	savedAlternate *SavedCursorState

	scrollTop, scrollBottom int

	modes Mode

	osc OSCState

	palette         [256]RGB8
	paletteOverride [256]bool
	defaultFg       RGB8
	defaultBg       RGB8
	defaultCursor   RGB8

	response io.Writer

	bellCount int

	syncSnapshot     *Snapshot
	syncExitSnapshot *Snapshot

	parser  *Parser
	feeding bool
}

// Option configures a Grid during construction.
type Option func(*Grid)

// WithMaxScrollback sets the scrollback ring's capacity. Negative values
// are clamped to 0 (scrollback disabled).
func WithMaxScrollback(n int) Option {
	return func(g *Grid) { g.maxScrollback = n }
}

// WithResponseWriter registers the sink for DA/DSR/OSC-query responses
// (spec §6 "Bytes out"). If never set, responses are silently discarded,
// matching the error taxonomy's "response-handler failure: silently
// dropped" policy applied to the no-writer case.
func WithResponseWriter(w io.Writer) Option {
	return func(g *Grid) { g.response = w }
}

// NewGrid creates a Grid with the given dimensions, blank cells
// everywhere, default modes (autowrap and cursor visibility on), and the
// standard 256-color palette.
func NewGrid(columns, rows int, opts ...Option) *Grid {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	g := &Grid{
		columns:       columns,
		rows:          rows,
		maxScrollback: DefaultMaxScrollback,
		defaultFg:     DefaultForegroundRGB,
		defaultBg:     DefaultBackgroundRGB,
		defaultCursor: DefaultCursorRGB,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.maxScrollback < 0 {
		g.maxScrollback = 0
	}
	g.palette = DefaultPalette
	g.scrollback = NewScrollbackRing(g.maxScrollback)
	g.primary = newCellBuffer(rows, columns)
	g.alternate = newCellBuffer(rows, columns)
	g.cursor = NewCursorState()
	g.scrollTop, g.scrollBottom = 0, rows-1
	g.modes = ModeAutoWrap | ModeShowCursor
	g.parser = NewParser()
	return g
}

func (g *Grid) activeBuffer() *cellBuffer {
	if g.usingAlternate {
		return g.alternate
	}
	return g.primary
}

// Feed consumes a chunk of bytes, applying every effect atomically with
// respect to Snapshot and Resize. Reentrant calls (feeding from inside a
// response-writer callback, say) are refused per spec §7 item 8 rather
// than corrupting parser state.
func (g *Grid) Feed(data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.feeding {
		return
	}
	g.feeding = true
	defer func() { g.feeding = false }()

	g.parser.Feed(data, g)
}

// Columns returns the grid's current column count.
func (g *Grid) Columns() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.columns
}

// Rows returns the grid's current row count.
func (g *Grid) Rows() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rows
}

// IsAlternateScreen reports whether the alternate buffer is active.
func (g *Grid) IsAlternateScreen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.usingAlternate
}

// CursorPosition returns the 0-based cursor row/column and visibility.
func (g *Grid) CursorPosition() (row, col int, visible bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cursor.Row, g.cursor.Col, g.cursor.Visible
}

// CursorStyle returns the current DECSCUSR cursor rendering style.
func (g *Grid) CursorStyle() CursorStyle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cursor.Style
}

// WindowTitle returns the OSC 0/2-set window title.
func (g *Grid) WindowTitle() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.osc.WindowTitle
}

// IconName returns the OSC 1-set icon name.
func (g *Grid) IconName() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.osc.IconName
}

// WorkingDirectory returns the OSC 7-reported cwd.
func (g *Grid) WorkingDirectory() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.osc.WorkingDirectory
}

// CurrentHyperlink returns the URI of the currently open OSC 8 hyperlink,
// or "" if none is open.
func (g *Grid) CurrentHyperlink() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.osc.Hyperlink
}

// TakeBellCount returns the number of BEL bytes received since the last
// call and resets the counter to 0 — the single user-facing error signal
// per spec §7.
func (g *Grid) TakeBellCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.bellCount
	g.bellCount = 0
	return n
}

// Mode reports whether the given mode bit is currently set.
func (g *Grid) Mode(m Mode) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.modes.Has(m)
}

// DefaultColors returns the default foreground, background, and cursor
// RGB, as overridden by OSC 10/11/12.
func (g *Grid) DefaultColors() (fg, bg, cursor RGB8) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.defaultFg, g.defaultBg, g.defaultCursor
}

// PaletteColor returns the resolved RGB for palette slot i (0-255),
// honoring any OSC 4 override.
func (g *Grid) PaletteColor(i uint8) RGB8 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.palette[i]
}

// ScrollbackCount returns the number of lines currently in scrollback.
func (g *Grid) ScrollbackCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scrollback.Len()
}

// LineContent returns the trimmed text of screen row, or "" if out of
// range.
func (g *Grid) LineContent(row int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.activeBuffer().LineContent(row)
}

// SetGraphemeOverride records s as the full display text for the active
// buffer's (row, col), for callers that have done their own text
// segmentation and determined several Unicode scalars belong in a single
// cell (e.g. a ZWJ emoji sequence). It reports false if (row, col) is out
// of bounds. See cellBuffer.SetGraphemeOverride for the caveats around
// scrolling and reflow.
func (g *Grid) SetGraphemeOverride(row, col int, s string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.activeBuffer().SetGraphemeOverride(row, col, s)
}

// GraphemeOverride returns the override text previously recorded for the
// active buffer's (row, col), if any.
func (g *Grid) GraphemeOverride(row, col int) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.activeBuffer().GraphemeOverride(row, col)
}

// VisibleText returns every screen row's trimmed text, top to bottom.
func (g *Grid) VisibleText() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	buf := g.activeBuffer()
	lines := make([]string, buf.Rows())
	for i := range lines {
		lines[i] = buf.LineContent(i)
	}
	return lines
}

// SearchScrollback searches the scrollback ring; see ScrollbackRing.Search.
func (g *Grid) SearchScrollback(query string, caseSensitive bool) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scrollback.Search(query, caseSensitive)
}

// Resize changes the grid's dimensions. The primary buffer is reflowed
// (unwrap/rewrap across scrollback + screen, §4.D); the alternate buffer
// is padded/truncated in place, since full-screen apps redraw on resize
// anyway. Zero or negative dimensions are a no-op (spec §7 item 4).
func (g *Grid) Resize(columns, rows int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if columns <= 0 || rows <= 0 {
		return
	}
	if columns == g.columns && rows == g.rows {
		return
	}

	bg := g.cursor.TemplateBg
	scrollbackLines := make([]ScrollbackLine, g.scrollback.Len())
	for i := range scrollbackLines {
		scrollbackLines[i], _ = g.scrollback.Get(i)
	}
	newScrollback, newScreen, newRow, newCol := reflow(
		scrollbackLines, g.primary.cells, g.columns, columns, rows,
		g.cursor.Row, g.cursor.Col, bg,
	)

	ring := NewScrollbackRing(g.maxScrollback)
	for _, l := range newScrollback {
		ring.Push(l)
	}
	g.scrollback = ring
	g.primary.replaceRows(newScreen, columns)
	g.alternate.Resize(rows, columns)

	g.columns, g.rows = columns, rows
	if g.scrollTop >= rows {
		g.scrollTop = 0
	}
	g.scrollBottom = rows - 1
	g.cursor.Row, g.cursor.Col = newRow, newCol
	g.cursor.PendingWrap = false
}

// fullReset reinitializes the grid in place (RIS / ESC c), clearing both
// buffers, scrollback, modes, OSC state, and the cursor, but keeping the
// current dimensions and palette.
func (g *Grid) fullReset() {
	g.primary = newCellBuffer(g.rows, g.columns)
	g.alternate = newCellBuffer(g.rows, g.columns)
	g.usingAlternate = false
	g.scrollback = NewScrollbackRing(g.maxScrollback)
	g.cursor = NewCursorState()
	g.savedPrimary = nil
	g.savedAlternate = nil
	g.scrollTop, g.scrollBottom = 0, g.rows-1
	g.modes = ModeAutoWrap | ModeShowCursor
	g.osc = OSCState{}
	g.syncSnapshot = nil
	g.syncExitSnapshot = nil
}

// softReset (DECSTR) clears SGR/origin/margins/charset back to defaults
// without touching screen content or scrollback.
func (g *Grid) softReset() {
	g.cursor.TemplateFg = Default
	g.cursor.TemplateBg = Default
	g.cursor.TemplateUl = Default
	g.cursor.TemplateAttrs = 0
	g.cursor.UnderlineStyle = UnderlineNone
	g.cursor.FgBasicIndex = -1
	g.cursor.PendingWrap = false
	g.cursor.Visible = true
	g.cursor.Style = CursorStyleBlinkingBlock
	g.cursor.ActiveCharset = CharsetSlotG0
	g.cursor.G = [4]Charset{}
	g.modes &^= ModeOrigin | ModeInsert
	g.modes |= ModeAutoWrap | ModeShowCursor
	g.scrollTop, g.scrollBottom = 0, g.rows-1
}

func (g *Grid) writeResponse(b []byte) {
	if g.response == nil {
		return
	}
	_, _ = g.response.Write(b)
}
