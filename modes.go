package vtcore

// Mode is a bitmask of terminal behavior flags set by DECSET/DECRST and a
// few ANSI-standard SM/RM codes. vtcore tracks the bit for every mode a
// host application might query, but never attaches key/mouse *encoding*
// logic to the mouse-reporting bits — it only remembers whether they are
// set, per the package's explicit non-goal around input encoding.
type Mode uint32

const (
	// ModeAppCursorKeys is DECCKM (?1): cursor keys send application
	// sequences instead of ANSI cursor sequences. Bit only; no encoding.
	ModeAppCursorKeys Mode = 1 << iota
	// ModeColumn132 is DECCOLM (?3): 132-column mode.
	ModeColumn132
	// ModeInsert is IRM (4): inserted characters shift the rest of the
	// line right instead of overwriting.
	ModeInsert
	// ModeOrigin is DECOM (?6): cursor addressing is relative to the
	// scroll region.
	ModeOrigin
	// ModeAutoWrap is DECAWM (?7): printing past the right margin wraps
	// to the next line (lazily — see CursorState.PendingWrap) instead of
	// overwriting the last column.
	ModeAutoWrap
	// ModeMouseX10 is X10 mouse reporting (?9).
	ModeMouseX10
	// ModeShowCursor is DECTCEM (?25): cursor visibility.
	ModeShowCursor
	// ModeMouseVT200 is VT200 mouse reporting (?1000).
	ModeMouseVT200
	// ModeMouseButtonEvent is button-event mouse tracking (?1002).
	ModeMouseButtonEvent
	// ModeMouseAnyEvent is any-event mouse tracking (?1003).
	ModeMouseAnyEvent
	// ModeFocusEvents is focus in/out reporting (?1004).
	ModeFocusEvents
	// ModeMouseUTF8 is UTF-8 mouse coordinate encoding (?1005).
	ModeMouseUTF8
	// ModeMouseSGR is SGR mouse coordinate encoding (?1006).
	ModeMouseSGR
	// ModeAlternateScroll maps wheel events to cursor keys in the
	// alternate screen (?1007).
	ModeAlternateScroll
	// ModeAppKeypad is DECKPAM/DECKPNM (application keypad mode).
	ModeAppKeypad
	// ModeAltScreen is a bit for the alternate screen. Grid tracks the
	// active buffer on its own (see Grid.IsAlternateScreen); DECSET
	// 1049/1047 switch buffers without setting this bit.
	ModeAltScreen
	// ModeBracketedPaste is bracketed paste mode (?2004).
	ModeBracketedPaste
	// ModeLineFeedNewLine is LNM (20): line feed also returns to column
	// 0 (teletype newline semantics) instead of only moving down.
	ModeLineFeedNewLine
	// ModeSyncOutput is the synchronized-output convention (?2026):
	// while set, Snapshot returns a frozen frame rather than the live
	// grid state.
	ModeSyncOutput
)

// Has reports whether mode is set.
func (m Mode) Has(mode Mode) bool { return m&mode != 0 }
