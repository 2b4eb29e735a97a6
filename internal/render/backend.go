// Package render implements the Rendering Backend abstraction: present a
// cellbuf.VideoBuffer to either the host terminal (ANSI writer) or the
// Linux framebuffer (glyph rasterizer over PSF1/2 fonts). The interface
// below is the seam internal/compositor drives each frame.
package render

import "github.com/alejandroqh/term39/internal/cellbuf"

// MouseButton identifies a backend-native pointer button event.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

// MouseButtonEvent is a backend-native button transition, reported only
// by backends where HasNativeMouseInput is true.
type MouseButtonEvent struct {
	Col, Row int
	Button   MouseButton
	Pressed  bool
}

// MouseScrollEvent is a backend-native wheel event.
type MouseScrollEvent struct {
	Col, Row int
	DeltaY   int
}

// Backend is the seam between the compositor's per-frame video buffer and
// wherever pixels/cells actually end up: the host terminal's stdout, or a
// Linux framebuffer device.
type Backend interface {
	// Present writes vb's changed cells to the physical surface.
	Present(vb *cellbuf.VideoBuffer) error

	// Dimensions reports the backend's current size in character cells.
	Dimensions() (cols, rows int)

	// CheckResize is polled once per frame; changed is true when the
	// backend's size changed since the last call.
	CheckResize() (cols, rows int, changed bool)

	// ScaleMouseCoords maps a backend-native pointer position into grid
	// cell coordinates. Identity for terminal backends.
	ScaleMouseCoords(col, row int) (int, int)

	// HasNativeMouseInput reports whether this backend owns its own
	// pointer device (framebuffer) rather than relying on the host
	// terminal's mouse reporting protocol.
	HasNativeMouseInput() bool

	// GetMouseButtonEvent and GetMouseScrollEvent are non-blocking polls
	// for a backend-native pointer event; ok is false when none is
	// pending. Only meaningful when HasNativeMouseInput is true.
	GetMouseButtonEvent() (ev MouseButtonEvent, ok bool)
	GetMouseScrollEvent() (ev MouseScrollEvent, ok bool)

	// SetTTYCursor and ClearTTYCursor tell the backend where to draw (or
	// to stop drawing) an overlay pointer, for backends that render the
	// cursor as a sprite rather than relying on the terminal's own
	// hardware cursor.
	SetTTYCursor(col, row int)
	ClearTTYCursor()

	// UpdateCursor, DrawCursor and RestoreCursorArea run after Present,
	// so the pointer is always drawn on top and the back buffer used for
	// next frame's diff stays pristine.
	UpdateCursor()
	DrawCursor()
	RestoreCursorArea()

	// Close releases the backend's underlying resources (tty raw mode,
	// framebuffer fd).
	Close() error
}
