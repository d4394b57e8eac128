package vtcore

import "unicode/utf8"

// parserState enumerates the Williams/DEC VT500-series state machine
// states. Values are used directly as an index component into the flat
// transitions table, so the iota order must stay stable.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateSosPmApcString
	stateUtf8Continuation
	numStates
)

// action enumerates what the parser does on a given (state, byte)
// transition, before moving to the next state.
type action uint8

const (
	actNone action = iota
	actPrint
	actExecute
	actClear
	actCollect
	actParam
	actEscDispatch
	actCsiDispatch
	actHook
	actPut
	actUnhook
	actOscStart
	actOscPut
	actOscEnd
	actApcStart
	actApcPut
	actApcEnd
	actIgnore
)

type transitionEntry struct {
	next   parserState
	action action
}

var transitions [int(numStates) * 256]transitionEntry

func t(state parserState, b byte) *transitionEntry {
	return &transitions[int(state)*256+int(b)]
}

func setRange(state parserState, lo, hi byte, next parserState, act action) {
	for b := int(lo); b <= int(hi); b++ {
		transitions[int(state)*256+b] = transitionEntry{next: next, action: act}
	}
}

func set(state parserState, b byte, next parserState, act action) {
	transitions[int(state)*256+int(b)] = transitionEntry{next: next, action: act}
}

func init() {
	buildTransitionTable()
}

// buildTransitionTable constructs the flat state*256+byte transition array
// once, at init time, per spec's "flat array, not a dictionary"
// requirement. It is grouped by state rather than generated, matching the
// rest of the package's preference for plain Go over codegen.
func buildTransitionTable() {
	allStates := []parserState{
		stateGround, stateEscape, stateEscapeIntermediate, stateCsiEntry,
		stateCsiParam, stateCsiIntermediate, stateCsiIgnore, stateOscString,
		stateDcsEntry, stateDcsParam, stateDcsIntermediate, stateDcsPassthrough,
		stateDcsIgnore, stateSosPmApcString,
	}

	// C0 controls execute from (almost) every state and return to ground;
	// 0x18 (CAN) and 0x1A (SUB) abort any sequence back to ground.
	for _, st := range allStates {
		setRange(st, 0x00, 0x17, stateGround, actExecute)
		set(st, 0x19, stateGround, actExecute)
		setRange(st, 0x1C, 0x1F, stateGround, actExecute)
		set(st, 0x18, stateGround, actExecute)
		set(st, 0x1A, stateGround, actExecute)
		set(st, 0x1B, stateEscape, actClear)
		// DEL is ignored everywhere by default; states that accumulate
		// string payloads (OSC/DCS passthrough/SOS-PM-APC) override this
		// below to accept it as data, matching xterm's leniency there.
		set(st, 0x7F, st, actIgnore)
	}
	// ESC is handled uniformly above except inside string states, where an
	// ESC is provisional (might be the start of ST = ESC \\) — but vtcore
	// treats a bare ESC inside OSC/DCS/SOS-PM-APC as "terminate string,
	// re-enter escape" which correctly handles ESC \\ one byte later.
	for _, st := range []parserState{stateOscString, stateDcsPassthrough, stateSosPmApcString, stateDcsIgnore} {
		set(st, 0x1B, stateEscape, actOscEnd)
	}

	// Ground: C0 already wired; everything else prints. DEL (0x7F) is
	// excluded and stays ignored per the C0 wiring above.
	setRange(stateGround, 0x20, 0x7E, stateGround, actPrint)
	setRange(stateGround, 0xA0, 0xFF, stateGround, actPrint) // latin-1 passthrough for malformed UTF-8
	// UTF-8 multi-byte lead bytes re-enter the ground state via the
	// overlay: Feed() intercepts lead bytes >= 0xC2 before consulting this
	// table (see Parser.feedByte), so 0xC2-0xF4 never reach actPrint
	// directly when a valid continuation follows.
	setRange(stateGround, 0xC2, 0xF4, stateGround, actPrint)

	// Escape: intermediates 0x20-0x2F collect; 0x30-0x7E dispatch and
	// return to ground (with the CSI/OSC/DCS/SOS/PM/APC introducers
	// special-cased below); C0 already wired.
	setRange(stateEscape, 0x20, 0x2F, stateEscapeIntermediate, actCollect)
	setRange(stateEscape, 0x30, 0x4F, stateGround, actEscDispatch)
	setRange(stateEscape, 0x51, 0x57, stateGround, actEscDispatch)
	set(stateEscape, 0x59, stateGround, actEscDispatch)
	set(stateEscape, 0x5A, stateGround, actEscDispatch)
	set(stateEscape, 0x5C, stateGround, actEscDispatch) // ST on its own, no-op
	setRange(stateEscape, 0x60, 0x7E, stateGround, actEscDispatch)
	set(stateEscape, 0x5B, stateCsiEntry, actClear)     // CSI
	set(stateEscape, 0x5D, stateOscString, actOscStart) // OSC
	set(stateEscape, 0x50, stateDcsEntry, actClear)     // DCS
	set(stateEscape, 0x58, stateSosPmApcString, actApcStart) // SOS
	set(stateEscape, 0x5E, stateSosPmApcString, actApcStart) // PM
	set(stateEscape, 0x5F, stateSosPmApcString, actApcStart) // APC

	setRange(stateEscapeIntermediate, 0x20, 0x2F, stateEscapeIntermediate, actCollect)
	setRange(stateEscapeIntermediate, 0x30, 0x7E, stateGround, actEscDispatch)

	// CSI entry/param/intermediate/ignore.
	setRange(stateCsiEntry, 0x30, 0x39, stateCsiParam, actParam)
	set(stateCsiEntry, 0x3A, stateCsiParam, actParam)
	set(stateCsiEntry, 0x3B, stateCsiParam, actParam)
	setRange(stateCsiEntry, 0x3C, 0x3F, stateCsiParam, actCollect) // private markers ? < = >
	setRange(stateCsiEntry, 0x20, 0x2F, stateCsiIntermediate, actCollect)
	setRange(stateCsiEntry, 0x40, 0x7E, stateGround, actCsiDispatch)

	setRange(stateCsiParam, 0x30, 0x39, stateCsiParam, actParam)
	set(stateCsiParam, 0x3A, stateCsiParam, actParam)
	set(stateCsiParam, 0x3B, stateCsiParam, actParam)
	setRange(stateCsiParam, 0x3C, 0x3F, stateCsiIgnore, actIgnore)
	setRange(stateCsiParam, 0x20, 0x2F, stateCsiIntermediate, actCollect)
	setRange(stateCsiParam, 0x40, 0x7E, stateGround, actCsiDispatch)

	setRange(stateCsiIntermediate, 0x20, 0x2F, stateCsiIntermediate, actCollect)
	setRange(stateCsiIntermediate, 0x30, 0x3F, stateCsiIgnore, actIgnore)
	setRange(stateCsiIntermediate, 0x40, 0x7E, stateGround, actCsiDispatch)

	setRange(stateCsiIgnore, 0x20, 0x3F, stateCsiIgnore, actIgnore)
	setRange(stateCsiIgnore, 0x40, 0x7E, stateGround, actIgnore)

	// OSC string: printable bytes (and UTF-8 continuation 0x80-0xFF)
	// accumulate; BEL (0x07) terminates (xterm convention), ESC \\
	// terminates (handled by the C0/ESC wiring above).
	setRange(stateOscString, 0x20, 0xFF, stateOscString, actOscPut)
	set(stateOscString, 0x07, stateGround, actOscEnd)

	// DCS entry/param/intermediate/passthrough/ignore. Payloads are
	// consumed and discarded (actPut/actHook are no-ops downstream) per
	// the minimal-DCS policy.
	setRange(stateDcsEntry, 0x30, 0x39, stateDcsParam, actParam)
	set(stateDcsEntry, 0x3A, stateDcsIgnore, actIgnore)
	set(stateDcsEntry, 0x3B, stateDcsParam, actParam)
	setRange(stateDcsEntry, 0x3C, 0x3F, stateDcsParam, actCollect)
	setRange(stateDcsEntry, 0x20, 0x2F, stateDcsIntermediate, actCollect)
	setRange(stateDcsEntry, 0x40, 0x7E, stateDcsPassthrough, actHook)

	setRange(stateDcsParam, 0x30, 0x39, stateDcsParam, actParam)
	set(stateDcsParam, 0x3B, stateDcsParam, actParam)
	setRange(stateDcsParam, 0x3A, 0x3F, stateDcsIgnore, actIgnore)
	setRange(stateDcsParam, 0x20, 0x2F, stateDcsIntermediate, actCollect)
	setRange(stateDcsParam, 0x40, 0x7E, stateDcsPassthrough, actHook)

	setRange(stateDcsIntermediate, 0x20, 0x2F, stateDcsIntermediate, actCollect)
	setRange(stateDcsIntermediate, 0x30, 0x3F, stateDcsIgnore, actIgnore)
	setRange(stateDcsIntermediate, 0x40, 0x7E, stateDcsPassthrough, actHook)

	setRange(stateDcsPassthrough, 0x20, 0xFF, stateDcsPassthrough, actPut)
	setRange(stateDcsIgnore, 0x20, 0xFF, stateDcsIgnore, actIgnore)

	setRange(stateSosPmApcString, 0x20, 0xFF, stateSosPmApcString, actApcPut)
}

// Performer is the dispatch interface the parser drives as it recognizes
// complete escape/control/CSI/OSC/DCS sequences. Grid implements it.
type Performer interface {
	Print(r rune)
	Execute(b byte)
	CsiDispatch(final byte, private byte, params [][]int, intermediates []byte)
	EscDispatch(final byte, intermediates []byte)
	OscDispatch(data []byte)
	DcsHook(final byte, private byte, params [][]int, intermediates []byte)
	DcsPut(b byte)
	DcsUnhook()
	SosPmApcDispatch(kind byte, data []byte)
}

// Parser is the byte-level VT state machine. It holds no reference to any
// particular Performer — Feed takes one each call — so the same parser
// can be reused, and so Grid.Feed can hold its write lock for the whole
// call without the parser needing to know about locking at all.
type Parser struct {
	state parserState

	params       [][]int
	curParam     []int
	haveParam    bool
	intermediates []byte
	private      byte

	oscBuf    []byte
	oscKind   byte // 'X' SOS, '^' PM, '_' APC — escape final byte that started it
	isApcLike bool

	// UTF-8 decode overlay for ground-state text: tracks a lead byte's
	// remaining continuation bytes across calls, so a multi-byte rune
	// split across two Feed chunks still decodes correctly. String
	// payloads (where 0x9C may be either a continuation byte or the C1
	// ST) are tracked separately by stringUtf8Need below.
	utf8Need    int
	utf8Got     int
	utf8Partial [utf8.UTFMax]byte

	// stringUtf8Need is the analogous overlay for OSC/DCS-passthrough/
	// SOS-PM-APC string payloads: it counts continuation bytes still
	// expected after a UTF-8 lead byte seen *inside* the string, so a
	// 0x9C encountered there can be told apart from a bare C1 ST. Unlike
	// utf8Need, payload bytes are never decoded to a rune here — the raw
	// bytes are kept verbatim in oscBuf and decoded once, as a whole
	// string, by the caller.
	stringUtf8Need int
}

// NewParser creates a parser in the ground state.
func NewParser() *Parser { return &Parser{} }

const maxParams = 32
const maxSubParams = 6
const maxParamValue = 65535

func (p *Parser) startParam() {
	p.curParam = []int{0}
	p.haveParam = true
}

func (p *Parser) paramDigit(d byte) {
	if !p.haveParam {
		p.startParam()
	}
	if len(p.curParam) == 0 {
		p.curParam = append(p.curParam, 0)
	}
	last := len(p.curParam) - 1
	v := p.curParam[last]*10 + int(d-'0')
	if v > maxParamValue {
		v = maxParamValue
	}
	p.curParam[last] = v
}

func (p *Parser) paramSeparator(b byte) {
	if !p.haveParam {
		p.startParam()
	}
	if b == ':' {
		if len(p.curParam) < maxSubParams {
			p.curParam = append(p.curParam, 0)
		}
		return
	}
	// ';' ends the current top-level param.
	if len(p.params) < maxParams {
		p.params = append(p.params, p.curParam)
	}
	p.curParam = nil
	p.haveParam = false
}

func (p *Parser) flushParam() {
	if p.haveParam {
		if len(p.params) < maxParams {
			p.params = append(p.params, p.curParam)
		}
		p.curParam = nil
		p.haveParam = false
	}
}

func (p *Parser) resetSequenceState() {
	p.params = nil
	p.curParam = nil
	p.haveParam = false
	p.intermediates = nil
	p.private = 0
}

// Feed processes data through the state machine, driving perf for every
// recognized event. It is the only entry point; Grid.Feed holds its write
// lock around a single call so a whole chunk is applied atomically.
func (p *Parser) Feed(data []byte, perf Performer) {
	for _, b := range data {
		p.feedByte(b, perf)
	}
}

func (p *Parser) feedByte(b byte, perf Performer) {
	// UTF-8 overlay: only engages from ground state, and only for bytes
	// that cannot be interpreted any other way.
	if p.utf8Need > 0 {
		if b&0xC0 == 0x80 {
			p.utf8Partial[p.utf8Got] = b
			p.utf8Got++
			p.utf8Need--
			if p.utf8Need == 0 {
				r, _ := utf8.DecodeRune(p.utf8Partial[:p.utf8Got])
				perf.Print(r)
			}
			return
		}
		// Malformed: the continuation we expected didn't arrive. Emit
		// replacement and reprocess b as a fresh byte.
		p.utf8Need, p.utf8Got = 0, 0
		perf.Print(utf8.RuneError)
	}
	if p.state == stateGround && b >= 0xC2 && b <= 0xF4 {
		n := utf8SeqLen(b)
		if n > 1 {
			p.utf8Partial[0] = b
			p.utf8Got = 1
			p.utf8Need = n - 1
			return
		}
	}

	// String-payload UTF-8 overlay: a 0x9C (C1 ST) that is in fact the
	// continuation byte of a multi-byte scalar already in progress inside
	// an OSC/DCS-passthrough/SOS-PM-APC payload must accumulate as data,
	// not terminate the string (spec §4.F's OSC-termination rule). A 0x9C
	// seen with no continuation pending is a real standalone ST and ends
	// the string here, since the flat table has no way to special-case a
	// single byte value conditionally.
	if isStringPayloadState(p.state) {
		switch {
		case b == 0x9C && p.stringUtf8Need == 0:
			p.terminateStringPayload(perf)
			return
		case b == 0x9C:
			p.stringUtf8Need--
		case b&0xC0 == 0x80:
			if p.stringUtf8Need > 0 {
				p.stringUtf8Need--
			}
		case b >= 0xC2 && b <= 0xF4:
			p.stringUtf8Need = utf8SeqLen(b) - 1
		default:
			p.stringUtf8Need = 0
		}
	}

	e := transitions[int(p.state)*256+int(b)]
	switch e.action {
	case actPrint:
		perf.Print(rune(b))
	case actExecute:
		perf.Execute(b)
	case actClear:
		p.resetSequenceState()
	case actCollect:
		if b == '?' || b == '<' || b == '=' || b == '>' {
			p.private = b
		} else {
			p.intermediates = append(p.intermediates, b)
		}
	case actParam:
		if b >= '0' && b <= '9' {
			p.paramDigit(b)
		} else {
			p.paramSeparator(b)
		}
	case actCsiDispatch:
		p.flushParam()
		perf.CsiDispatch(b, p.private, p.params, p.intermediates)
		p.resetSequenceState()
	case actEscDispatch:
		perf.EscDispatch(b, p.intermediates)
		p.resetSequenceState()
	case actHook:
		p.flushParam()
		perf.DcsHook(b, p.private, p.params, p.intermediates)
	case actPut:
		perf.DcsPut(b)
	case actUnhook:
		perf.DcsUnhook()
		p.resetSequenceState()
	case actOscStart:
		p.oscBuf = p.oscBuf[:0]
		p.stringUtf8Need = 0
	case actOscPut:
		p.oscBuf = append(p.oscBuf, b)
	case actOscEnd:
		if p.state == stateDcsPassthrough {
			perf.DcsUnhook()
		} else if p.state == stateSosPmApcString {
			perf.SosPmApcDispatch(p.oscKind, p.oscBuf)
		} else if p.state == stateOscString {
			perf.OscDispatch(p.oscBuf)
		}
		p.oscBuf = nil
		p.stringUtf8Need = 0
		p.resetSequenceState()
	case actApcStart:
		p.oscKind = b
		p.oscBuf = p.oscBuf[:0]
		p.stringUtf8Need = 0
	case actApcPut:
		p.oscBuf = append(p.oscBuf, b)
	}
	p.state = e.next
}

// isStringPayloadState reports whether state is one of the three that
// accumulate a caller-opaque byte payload (OSC, DCS passthrough,
// SOS/PM/APC) — the states where a bare C1 ST byte value is ambiguous
// with a UTF-8 continuation byte.
func isStringPayloadState(state parserState) bool {
	return state == stateOscString || state == stateDcsPassthrough || state == stateSosPmApcString
}

// terminateStringPayload dispatches the current string state's payload
// exactly as actOscEnd does, for the one terminator the flat transition
// table cannot encode directly: a standalone 0x9C (C1 ST) distinguished
// from a UTF-8 continuation byte by stringUtf8Need.
func (p *Parser) terminateStringPayload(perf Performer) {
	switch p.state {
	case stateDcsPassthrough:
		perf.DcsUnhook()
	case stateSosPmApcString:
		perf.SosPmApcDispatch(p.oscKind, p.oscBuf)
	case stateOscString:
		perf.OscDispatch(p.oscBuf)
	}
	p.oscBuf = nil
	p.stringUtf8Need = 0
	p.resetSequenceState()
	p.state = stateGround
}

func utf8SeqLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}
