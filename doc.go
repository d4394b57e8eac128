// Package vtcore implements the core of a VT-series terminal emulator: a
// byte-level Williams/DEC VT500 parser, a primary/alternate cell grid with
// scroll regions and SGR state, a fixed-capacity scrollback ring, and a
// reflow engine that rewraps content across width changes.
//
// The package has no PTY/SSH transport, no GPU rasterization, and no UI
// shell — it turns a raw byte stream into a snapshot-able 2D cell model and
// nothing more. A host application feeds bytes in and reads immutable
// snapshots back out.
//
// # Quick start
//
//	g := vtcore.NewGrid(80, 24, vtcore.WithMaxScrollback(10000))
//	g.Feed([]byte("\x1b[31mHello\x1b[0m"))
//	fmt.Println(g.LineContent(0))
//
// # Architecture
//
//   - [Parser]: the byte-level state machine (states, transition table,
//     UTF-8 decode overlay) that drives a [Performer].
//   - [Grid]: implements [Performer]; owns the primary/alternate buffers,
//     cursor, scroll region, SGR template, modes, and OSC state.
//   - [ScrollbackRing]: fixed-capacity ring of lines scrolled off the top
//     of the primary buffer.
//   - [Snapshot]: an immutable, GPU-ready flat array of [PackedCell],
//     produced by [Grid.Snapshot].
//
// # Dual buffers
//
// Grid maintains a primary buffer (with scrollback) and an alternate
// buffer (no scrollback, used by full-screen apps). DECSET 1049 switches
// between them and saves/restores the cursor as a side effect:
//
//	g.Feed([]byte("\x1b[?1049h")) // enter alternate screen
//	g.IsAlternateScreen()         // true
//
// # Reflow
//
// Resize rewraps wrapped lines across the whole scrollback + screen rather
// than padding/truncating rows:
//
//	g.Resize(100, 40)
//
// # Concurrency
//
// Grid serializes all mutation behind a single [sync.RWMutex]: a Feed call
// applies a whole chunk atomically with respect to Snapshot and Resize.
// The only asynchronous handoff is the snapshot itself, which is an
// immutable value safe to send across goroutines.
//
// # Synchronized output
//
// DEC private mode 2026 freezes the frame returned by Snapshot until the
// remote application clears the mode, per the synchronized-output
// convention implemented by modern terminal emulators.
package vtcore
