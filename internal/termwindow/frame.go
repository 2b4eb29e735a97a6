// Package termwindow implements the Terminal Window: the pairing of a
// window Frame with a Terminal Emulator, its scrollback viewport, text
// selection and scrollbar hit-testing.
package termwindow

import "github.com/alejandroqh/term39/internal/cellbuf"

// Minimum frame dimensions (including chrome) a window may shrink to.
const (
	MinWidth  = 20
	MinHeight = 5

	// Border chrome consumed on each axis: one column each side, plus the
	// title bar row on top and a border row on the bottom.
	borderCols  = 2
	chromeRows  = 2 // title bar + bottom border
)

// Frame is the chrome around a terminal window: position, size, title and
// the transient UI flags the Window Manager mutates.
type Frame struct {
	ID    int
	X, Y  int
	W, H  int
	Title string

	FgColor cellbuf.Color
	BgColor cellbuf.Color

	IsFocused   bool
	IsMinimized bool
	IsMaximized bool

	// PreMaximize holds the geometry to restore to when un-maximizing.
	PreMaximizeX, PreMaximizeY, PreMaximizeW, PreMaximizeH int

	// TileLocked is true when auto-tiling owns this window's geometry;
	// manual move/resize requests against it are ignored.
	TileLocked bool
}

// ContentSize returns the interior size available to the terminal grid:
// frame size minus borders and the title bar.
func (f *Frame) ContentSize() (w, h int) {
	w = f.W - borderCols
	h = f.H - chromeRows
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ContentOrigin returns the top-left screen coordinate of the content area.
func (f *Frame) ContentOrigin() (x, y int) {
	return f.X + 1, f.Y + 1
}

// Clamp enforces the minimum frame dimensions.
func (f *Frame) Clamp() {
	if f.W < MinWidth {
		f.W = MinWidth
	}
	if f.H < MinHeight {
		f.H = MinHeight
	}
}

// SavePreMaximize records the current geometry as the one maximize should
// restore to.
func (f *Frame) SavePreMaximize() {
	f.PreMaximizeX, f.PreMaximizeY = f.X, f.Y
	f.PreMaximizeW, f.PreMaximizeH = f.W, f.H
}

// Maximize expands the frame to fill (cols, rows) minus a top bar row and a
// bottom bar row, saving the prior geometry first.
func (f *Frame) Maximize(cols, rows int) {
	if f.IsMaximized {
		return
	}
	f.SavePreMaximize()
	f.X, f.Y = 0, 1
	f.W, f.H = cols, rows-2
	f.IsMaximized = true
}

// RestoreFromMaximize reinstates the pre-maximize geometry exactly.
func (f *Frame) RestoreFromMaximize() {
	if !f.IsMaximized {
		return
	}
	f.X, f.Y = f.PreMaximizeX, f.PreMaximizeY
	f.W, f.H = f.PreMaximizeW, f.PreMaximizeH
	f.IsMaximized = false
}

// ToggleMaximize maximizes or restores depending on current state.
func (f *Frame) ToggleMaximize(cols, rows int) {
	if f.IsMaximized {
		f.RestoreFromMaximize()
	} else {
		f.Maximize(cols, rows)
	}
}

// ContainsPoint reports whether (x, y) falls within the frame's full
// rectangle, including chrome.
func (f *Frame) ContainsPoint(x, y int) bool {
	return x >= f.X && x < f.X+f.W && y >= f.Y && y < f.Y+f.H
}

// titleBarButtonZoneWidth is how many columns at the left of the title bar
// the three chrome buttons (close, maximize, minimize) occupy.
const titleBarButtonZoneWidth = 6

// IsInTitleBar reports whether (x, y) is on the title bar row, excluding
// the button zone.
func (f *Frame) IsInTitleBar(x, y int) bool {
	if y != f.Y {
		return false
	}
	return x >= f.X+titleBarButtonZoneWidth && x < f.X+f.W
}

// IsInCloseButton, IsInMaximizeButton, IsInMinimizeButton hit-test the
// three-button zone at the left of the title bar, in left-to-right order:
// close, maximize, minimize.
func (f *Frame) IsInCloseButton(x, y int) bool {
	return y == f.Y && x == f.X+1
}

func (f *Frame) IsInMaximizeButton(x, y int) bool {
	return y == f.Y && x == f.X+3
}

func (f *Frame) IsInMinimizeButton(x, y int) bool {
	return y == f.Y && x == f.X+5
}

// IsInResizeHandle reports whether (x, y) is the bottom-right corner cell,
// the resize grab handle.
func (f *Frame) IsInResizeHandle(x, y int) bool {
	return x == f.X+f.W-1 && y == f.Y+f.H-1
}

// IsInContentArea reports whether (x, y) falls inside the interior,
// excluding chrome and the scrollbar column.
func (f *Frame) IsInContentArea(x, y int) bool {
	cx, cy := f.ContentOrigin()
	cw, ch := f.ContentSize()
	return x >= cx && x < cx+cw && y >= cy && y < cy+ch
}
