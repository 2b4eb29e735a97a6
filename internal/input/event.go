// Package input implements the Input Pipeline: a unified event stream
// drawn from the host terminal, GPM and the framebuffer's native pointer,
// dispatched through a fixed priority chain (lock screen, modals,
// chrome, window manager, PTY forwarding), plus the key-to-bytes mapping
// forwarded keystrokes are encoded with.
package input

import "time"

// MaxEventsPerFrame bounds how many events are drained per frame, so a
// burst (fast paste, a flood of mouse-move reports) can't stall the
// frame loop.
const MaxEventsPerFrame = 50

// Source identifies which origin produced an Event.
type Source int

const (
	SourceHostTerminal Source = iota
	SourceGPM
	SourceFramebuffer
)

// Key names every key the pipeline cares about beyond a plain printable
// rune.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyBackTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyEscape
	KeyBacktick
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers int

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// KeyEvent is a single keystroke, normalized from whichever Source
// produced it.
type KeyEvent struct {
	Rune  rune // valid when Key == KeyNone; a printable character
	Key   Key
	Mod   Modifiers
	At    time.Time
	IsInjected bool
}

// MouseEventKind distinguishes the pointer transitions the dispatch
// chain cares about.
type MouseEventKind int

const (
	MouseMove MouseEventKind = iota
	MouseDown
	MouseUp
	MouseScroll
)

// MouseButton identifies which pointer button a Down/Up event concerns.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseEvent is a single pointer report, already passed through the
// active backend's ScaleMouseCoords exactly once.
type MouseEvent struct {
	Col, Row   int
	Kind       MouseEventKind
	Button     MouseButton
	ScrollDelta int
	Source     Source
	IsInjected bool
}

// Event is either a KeyEvent or a MouseEvent; exactly one of the two
// pointers is non-nil.
type Event struct {
	Key   *KeyEvent
	Mouse *MouseEvent
}
