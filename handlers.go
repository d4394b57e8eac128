package vtcore

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// paramAt returns the first value of the i'th top-level CSI parameter, or
// 0 if absent — which doubles as "default" for every operation in this
// package since an explicit 0 and an omitted parameter behave identically
// for all sequences vtcore implements.
func paramAt(params [][]int, i int) int {
	if i < len(params) && len(params[i]) > 0 {
		return params[i][0]
	}
	return 0
}

func paramDefault(params [][]int, i, def int) int {
	v := paramAt(params, i)
	if v == 0 {
		return def
	}
	return v
}

// CsiDispatch implements Performer: translate one complete CSI sequence
// into a grid operation. private carries '?', '<', '=', or '>' when
// present; intermediates holds any 0x20-0x2F collected bytes.
func (g *Grid) CsiDispatch(final byte, private byte, params [][]int, intermediates []byte) {
	if private == '?' {
		g.csiPrivate(final, params)
		return
	}
	if len(intermediates) == 1 {
		g.csiIntermediate(final, intermediates[0], params)
		return
	}
	switch final {
	case 'A': // CUU
		g.moveCursorRelative(-paramDefault(params, 0, 1), 0)
	case 'B': // CUD
		g.moveCursorRelative(paramDefault(params, 0, 1), 0)
	case 'C': // CUF
		g.moveCursorRelative(0, paramDefault(params, 0, 1))
	case 'D': // CUB
		g.moveCursorRelative(0, -paramDefault(params, 0, 1))
	case 'E': // CNL
		g.moveCursorTo(g.cursor.Row+paramDefault(params, 0, 1), 0)
	case 'F': // CPL
		g.moveCursorTo(g.cursor.Row-paramDefault(params, 0, 1), 0)
	case 'G': // CHA
		g.moveCursorTo(g.cursor.Row, paramDefault(params, 0, 1)-1)
	case 'H', 'f': // CUP / HVP
		g.moveCursorTo(paramDefault(params, 0, 1)-1, paramDefault(params, 1, 1)-1)
	case 'I': // CHT
		g.tabForward(paramDefault(params, 0, 1))
	case 'Z': // CBT
		g.tabBackward(paramDefault(params, 0, 1))
	case 'd': // VPA
		g.moveCursorTo(paramDefault(params, 0, 1)-1, g.cursor.Col)
	case '@': // ICH
		g.insertChars(paramDefault(params, 0, 1))
	case 'P': // DCH
		g.deleteChars(paramDefault(params, 0, 1))
	case 'L': // IL
		g.insertLines(paramDefault(params, 0, 1))
	case 'M': // DL
		g.deleteLines(paramDefault(params, 0, 1))
	case 'K': // EL
		g.eraseInLine(paramDefault(params, 0, 0))
	case 'J': // ED
		g.eraseInDisplay(paramDefault(params, 0, 0))
	case 'X': // ECH
		g.eraseChars(paramDefault(params, 0, 1))
	case 'S': // SU
		g.scrollUp(paramDefault(params, 0, 1))
	case 'T': // SD
		g.scrollDown(paramDefault(params, 0, 1))
	case 'r': // DECSTBM
		g.setScrollRegion(paramDefault(params, 0, 1), paramDefault(params, 1, g.rows))
	case 'g': // TBC
		g.tabClear(paramDefault(params, 0, 0))
	case 'h': // SM (ANSI modes)
		g.setAnsiModes(params, true)
	case 'l': // RM
		g.setAnsiModes(params, false)
	case 'm': // SGR
		g.applySGR(params)
	case 'c': // DA
		g.writeResponse([]byte("\x1b[?62;1;2;6;9c"))
	case 'n': // DSR
		g.deviceStatusReport(paramDefault(params, 0, 0))
	case 'b': // REP
		g.repeatLastChar(paramDefault(params, 0, 1))
	case 's': // save cursor (ANSI form, ambiguous with DECSLRM but vtcore
		// never implements left/right margins so this is unambiguous)
		g.saveCursor()
	case 'u': // restore cursor
		g.restoreCursor()
	}
}

// csiIntermediate handles the small set of CSI sequences that carry a
// single intermediate byte before the final: DECSCUSR (SP q) and DECSTR
// (! p).
func (g *Grid) csiIntermediate(final byte, intermediate byte, params [][]int) {
	switch {
	case intermediate == ' ' && final == 'q': // DECSCUSR
		style := paramDefault(params, 0, 1)
		if style >= 0 && style <= 6 {
			g.cursor.Style = CursorStyle(style - 1)
			if style == 0 {
				g.cursor.Style = CursorStyleBlinkingBlock
			}
		}
	case intermediate == '!' && final == 'p': // DECSTR
		g.softReset()
	}
}

// csiPrivate handles CSI sequences with the '?' private marker: DECSET/
// DECRST (h/l). Other final bytes are ignored.
func (g *Grid) csiPrivate(final byte, params [][]int) {
	switch final {
	case 'h':
		g.setDecModes(params, true)
	case 'l':
		g.setDecModes(params, false)
	}
}

// decModeBit maps a DECSET/DECRST numeric mode to its Mode bit. ok is
// false for modes vtcore doesn't track (silently ignored, per the error
// taxonomy's "malformed/unsupported sequence: consume and discard"
// policy).
func decModeBit(n int) (Mode, bool) {
	switch n {
	case 1:
		return ModeAppCursorKeys, true
	case 3:
		return ModeColumn132, true
	case 6:
		return ModeOrigin, true
	case 7:
		return ModeAutoWrap, true
	case 9:
		return ModeMouseX10, true
	case 25:
		return ModeShowCursor, true
	case 1000:
		return ModeMouseVT200, true
	case 1002:
		return ModeMouseButtonEvent, true
	case 1003:
		return ModeMouseAnyEvent, true
	case 1004:
		return ModeFocusEvents, true
	case 1005:
		return ModeMouseUTF8, true
	case 1006:
		return ModeMouseSGR, true
	case 1007:
		return ModeAlternateScroll, true
	case 2004:
		return ModeBracketedPaste, true
	case 2026:
		return ModeSyncOutput, true
	}
	return 0, false
}

func (g *Grid) setDecModes(params [][]int, set bool) {
	for i := range params {
		n := paramAt(params, i)
		switch n {
		case 1049:
			if set {
				g.enterAlternateScreen()
			} else {
				g.leaveAlternateScreen()
			}
			continue
		case 1048:
			if set {
				g.saveCursor()
			} else {
				g.restoreCursor()
			}
			continue
		case 1047:
			if set {
				g.usingAlternate = true
				g.alternate.ClearAll(Default)
			} else {
				g.usingAlternate = false
			}
			continue
		}
		bit, ok := decModeBit(n)
		if !ok {
			continue
		}
		wasSyncOn := g.modes.Has(ModeSyncOutput)
		g.setModeBit(bit, set)
		if bit == ModeOrigin && set {
			g.moveCursorTo(g.scrollTop, 0)
		}
		if bit == ModeShowCursor {
			g.cursor.Visible = set
		}
		if bit == ModeSyncOutput {
			g.handleSyncTransition(wasSyncOn, set)
		}
	}
}

// handleSyncTransition implements the sync-exit snapshot protocol (spec
// §4.E / §9): on the false→true edge, if dirty cells exist, capture a
// fresh snapshot into syncExitSnapshot before Snapshot starts returning
// the frozen cache.
func (g *Grid) handleSyncTransition(was, now bool) {
	if !was && now {
		g.syncExitSnapshot = nil
		if g.activeBuffer().HasDirty() {
			snap := g.buildSnapshot(0)
			g.syncExitSnapshot = &snap
		}
	}
	if was && !now {
		g.syncSnapshot = nil
	}
}

// setAnsiModes handles the non-private SM/RM sequences vtcore tracks: IRM
// (4) and LNM (20).
func (g *Grid) setAnsiModes(params [][]int, set bool) {
	for i := range params {
		switch paramAt(params, i) {
		case 4:
			g.setModeBit(ModeInsert, set)
		case 20:
			g.setModeBit(ModeLineFeedNewLine, set)
		}
	}
}

func (g *Grid) tabClear(mode int) {
	buf := g.activeBuffer()
	switch mode {
	case 0:
		buf.ClearTabStop(g.cursor.Col)
	case 3:
		buf.ClearAllTabStops()
	}
}

// deviceStatusReport implements DSR. n=6 reports the cursor position
// (1-based); other values are not implemented and silently ignored.
func (g *Grid) deviceStatusReport(n int) {
	if n == 6 {
		resp := fmt.Sprintf("\x1b[%d;%dR", g.cursor.Row+1, g.cursor.Col+1)
		g.writeResponse([]byte(resp))
	}
}

// EscDispatch implements Performer for two-or-three-byte ESC sequences.
func (g *Grid) EscDispatch(final byte, intermediates []byte) {
	if len(intermediates) == 1 {
		switch intermediates[0] {
		case '(':
			g.designateCharset(CharsetSlotG0, final)
			return
		case ')':
			g.designateCharset(CharsetSlotG1, final)
			return
		case '#':
			if final == '8' {
				g.decaln()
			}
			return
		}
		return
	}
	switch final {
	case '7': // DECSC
		g.saveCursor()
	case '8': // DECRC
		g.restoreCursor()
	case 'D': // IND
		g.lineFeed()
	case 'M': // RI
		g.reverseIndex()
	case 'E': // NEL
		g.cursor.Col = 0
		g.lineFeed()
	case 'H': // HTS
		g.activeBuffer().SetTabStop(g.cursor.Col)
	case '=': // DECPAM
		g.modes |= ModeAppKeypad
	case '>': // DECPNM
		g.modes &^= ModeAppKeypad
	case 'c': // RIS
		g.fullReset()
	}
}

// reverseIndex implements RI: move up a row, scrolling the region down
// if already at its top.
func (g *Grid) reverseIndex() {
	if g.cursor.Row == g.scrollTop {
		g.scrollDown(1)
	} else if g.cursor.Row > 0 {
		g.cursor.Row--
	}
	g.cursor.PendingWrap = false
}

func (g *Grid) designateCharset(slot CharsetSlot, final byte) {
	switch final {
	case '0':
		g.cursor.G[slot] = CharsetLineDrawing
	default:
		g.cursor.G[slot] = CharsetASCII
	}
}

// DcsHook/DcsPut/DcsUnhook implement Performer for DCS sequences. Per
// spec §4.G's minimal-DCS policy, the payload is consumed and discarded —
// no state is driven from it.
func (g *Grid) DcsHook(final byte, private byte, params [][]int, intermediates []byte) {}
func (g *Grid) DcsPut(b byte)                                                          {}
func (g *Grid) DcsUnhook()                                                             {}

// SosPmApcDispatch implements Performer for SOS/PM/APC strings. vtcore
// has no consumer for any of the three, per spec §9's Open Questions
// treatment of OSC 52 (the one concrete use case raised) and has none
// else in scope; the payload is simply discarded.
func (g *Grid) SosPmApcDispatch(kind byte, data []byte) {}

// OscDispatch implements Performer for a complete OSC string's payload
// (the bytes between the introducer and BEL/ST).
func (g *Grid) OscDispatch(data []byte) {
	cmd, rest, ok := cutByte(data, ';')
	if !ok {
		cmd, rest = data, nil
	}
	n, err := strconv.Atoi(string(cmd))
	if err != nil {
		return
	}
	switch n {
	case 0, 2:
		g.osc.WindowTitle = string(rest)
	case 1:
		g.osc.IconName = string(rest)
	case 4:
		g.oscSetPalette(rest)
	case 104:
		g.oscResetPalette(rest)
	case 7:
		g.osc.WorkingDirectory = parseCwdURI(string(rest))
	case 8:
		g.oscHyperlink(rest)
	case 10, 11, 12:
		g.oscDynamicColor(n, rest)
	}
}

func cutByte(data []byte, sep byte) (before, after []byte, found bool) {
	i := bytes.IndexByte(data, sep)
	if i < 0 {
		return data, nil, false
	}
	return data[:i], data[i+1:], true
}

// oscSetPalette handles OSC 4;idx;spec[;idx;spec...], chaining as many
// index/color pairs as appear in one payload (xterm convention).
func (g *Grid) oscSetPalette(data []byte) {
	fields := strings.Split(string(data), ";")
	for i := 0; i+1 < len(fields); i += 2 {
		idx, err := strconv.Atoi(fields[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		rgb, ok := parseColorSpec(fields[i+1])
		if !ok {
			continue
		}
		g.palette[idx] = rgb
		g.paletteOverride[idx] = true
	}
}

// oscResetPalette handles OSC 104[;idx[;idx...]] — empty payload resets
// every overridden slot, an explicit list resets just those indices.
func (g *Grid) oscResetPalette(data []byte) {
	if len(data) == 0 {
		for i := range g.paletteOverride {
			if g.paletteOverride[i] {
				g.palette[i] = DefaultPalette[i]
				g.paletteOverride[i] = false
			}
		}
		return
	}
	for _, f := range strings.Split(string(data), ";") {
		idx, err := strconv.Atoi(f)
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		g.palette[idx] = DefaultPalette[idx]
		g.paletteOverride[idx] = false
	}
}

// oscDynamicColor handles OSC 10/11/12: set the default fg/bg/cursor
// color, or answer a "?" query with the 16-bit-expanded response form.
func (g *Grid) oscDynamicColor(n int, data []byte) {
	s := string(data)
	if s == "?" {
		var rgb RGB8
		switch n {
		case 10:
			rgb = g.defaultFg
		case 11:
			rgb = g.defaultBg
		case 12:
			rgb = g.defaultCursor
		}
		resp := fmt.Sprintf("\x1b]%d;rgb:%02x%02x/%02x%02x/%02x%02x\x1b\\", n, rgb.R, rgb.R, rgb.G, rgb.G, rgb.B, rgb.B)
		g.writeResponse([]byte(resp))
		return
	}
	rgb, ok := parseColorSpec(s)
	if !ok {
		return
	}
	switch n {
	case 10:
		g.defaultFg = rgb
	case 11:
		g.defaultBg = rgb
	case 12:
		g.defaultCursor = rgb
	}
}

// oscHyperlink handles OSC 8;params;URI. An empty URI closes the
// currently open hyperlink.
func (g *Grid) oscHyperlink(data []byte) {
	_, uri, ok := cutByte(data, ';')
	if !ok {
		uri = data
	}
	g.osc.Hyperlink = string(uri)
}

// parseCwdURI extracts the path component of a file://host/path URI as
// used by OSC 7, falling back to the raw string if it isn't one.
func parseCwdURI(s string) string {
	const prefix = "file://"
	if !strings.HasPrefix(s, prefix) {
		return s
	}
	rest := s[len(prefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return "/"
}

// parseColorSpec parses an xterm "rgb:RR/GG/BB" (or 1-4 hex digit
// variants per channel) color spec into an 8-bit-per-channel RGB8.
func parseColorSpec(s string) (RGB8, bool) {
	const prefix = "rgb:"
	if !strings.HasPrefix(s, prefix) {
		return RGB8{}, false
	}
	parts := strings.Split(s[len(prefix):], "/")
	if len(parts) != 3 {
		return RGB8{}, false
	}
	var out [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 32)
		if err != nil {
			return RGB8{}, false
		}
		bits := len(p) * 4
		if bits > 8 {
			v >>= uint(bits - 8)
		} else if bits < 8 {
			v <<= uint(8 - bits)
		}
		out[i] = uint8(v)
	}
	return RGB8{out[0], out[1], out[2]}, true
}
