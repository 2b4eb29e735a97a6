//go:build linux

// Package gpm binds the Linux console mouse daemon (GPM) via dlopen, the
// way SPEC_FULL.md's §6 DOMAIN STACK wires github.com/ebitengine/purego
// in place of cgo: GPM is an optional runtime capability, loaded by name
// at first use and silently disabled if the library or Gpm_Open is
// unavailable.
package gpm

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// libNames are tried in order; real systems ship one of these depending
// on distro packaging (symlink chain vs. fully-versioned soname).
var libNames = []string{
	"libgpm.so",
	"libgpm.so.1",
	"libgpm.so.2",
	"libgpm.so.2.1.0",
}

// Button bits, as reported by Gpm_Event.buttons (after our left/right
// inversion at ingest — see Client.GetEvent).
const (
	ButtonLeft = 1 << iota
	ButtonMiddle
	ButtonRight
)

// EventType bits, as reported by Gpm_Event.typ.
const (
	EventMove EventType = 1 << iota
	EventDrag
	EventDown
	EventUp
)

type EventType int

// gpmConnect mirrors libgpm's Gpm_Connect struct, passed to Gpm_Open.
type gpmConnect struct {
	EventMask   uint16
	DefaultMask uint16
	MinMod      uint16
	MaxMod      uint16
	PID         int32
	VC          int32
}

// rawEvent mirrors libgpm's Gpm_Event exactly: buttons/modifiers as bytes,
// vc/dx/dy/x/y as shorts, then type/clicks/margin as C enums (4-byte int
// on every platform GPM ships for), then wdx/wdy as shorts. This layout
// is a hard compatibility requirement: it must stay 28 bytes, matching
// the C header bit for bit.
type rawEvent struct {
	Buttons, Modifiers byte
	VC                 uint16
	DX, DY             int16
	X, Y               int16
	Typ                int32
	Clicks             int32
	Margin             int32
	WDX, WDY           int16
}

func init() {
	const wantSize = 28
	if sz := unsafe.Sizeof(rawEvent{}); sz != wantSize {
		panic(fmt.Sprintf("gpm: rawEvent is %d bytes, want %d — Gpm_Event layout mismatch", sz, wantSize))
	}
}

// Event is the ingest-normalized form of a GPM report: left/right already
// inverted to match the hardware's observed swap.
type Event struct {
	X, Y     int
	DX, DY   int
	Buttons  int
	Type     EventType
}

// Client holds the dlopen'd function pointers. A nil Client (returned
// alongside a non-nil error from Open) means GPM isn't available; callers
// fall back to host-terminal mouse reporting.
type Client struct {
	lib uintptr

	gpmOpen     func(conn *gpmConnect, flag int32) int32
	gpmClose    func() int32
	gpmGetEvent func(ev *rawEvent) int32

	mu sync.Mutex
}

// Open dlopen's libgpm (trying each known soname) and connects with a
// default mask of all-events, terminal-owns-cursor (DefaultMask=^0) to
// match GPM's terminal-mode convention; framebuffer callers should use
// OpenWithMask(0) so the application owns cursor drawing instead.
func Open() (*Client, error) {
	return OpenWithMask(0xffff)
}

// OpenWithMask is Open with an explicit Gpm_Connect.DefaultMask: ^0 lets
// GPM draw the terminal cursor itself (host-terminal mode), 0 means the
// application owns cursor rendering (framebuffer mode).
func OpenWithMask(defaultMask uint16) (*Client, error) {
	var lib uintptr
	var lastErr error
	for _, name := range libNames {
		l, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			lib = l
			break
		}
		lastErr = err
	}
	if lib == 0 {
		return nil, fmt.Errorf("gpm: no libgpm found: %w", lastErr)
	}

	c := &Client{lib: lib}
	purego.RegisterLibFunc(&c.gpmOpen, lib, "Gpm_Open")
	purego.RegisterLibFunc(&c.gpmClose, lib, "Gpm_Close")
	purego.RegisterLibFunc(&c.gpmGetEvent, lib, "Gpm_GetEvent")

	conn := gpmConnect{
		EventMask:   0xffff,
		DefaultMask: defaultMask,
		MinMod:      0,
		MaxMod:      0xffff,
	}
	if rc := c.gpmOpen(&conn, 0); rc < 0 {
		return nil, fmt.Errorf("gpm: Gpm_Open failed (rc=%d)", rc)
	}
	return c, nil
}

// Close disconnects from the GPM daemon.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.gpmClose(); rc < 0 {
		return fmt.Errorf("gpm: Gpm_Close failed (rc=%d)", rc)
	}
	return nil
}

// GetEvent blocks for the next GPM report (callers typically run this on
// its own goroutine, same shape as the PTY reader goroutine) and returns
// it normalized, with left/right buttons inverted to correct the
// hardware's observed swap.
func (c *Client) GetEvent() (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var raw rawEvent
	if rc := c.gpmGetEvent(&raw); rc <= 0 {
		return Event{}, false
	}
	return normalize(raw), true
}

// normalize converts a rawEvent into ingest form, inverting left/right
// buttons to correct GPM's observed hardware swap.
func normalize(raw rawEvent) Event {
	buttons := int(raw.Buttons)
	invertedLeft := buttons&ButtonLeft != 0
	invertedRight := buttons&ButtonRight != 0
	buttons &^= ButtonLeft | ButtonRight
	if invertedRight {
		buttons |= ButtonLeft
	}
	if invertedLeft {
		buttons |= ButtonRight
	}

	return Event{
		X:       int(raw.X),
		Y:       int(raw.Y),
		DX:      int(raw.DX),
		DY:      int(raw.DY),
		Buttons: buttons,
		Type:    EventType(raw.Typ),
	}
}
