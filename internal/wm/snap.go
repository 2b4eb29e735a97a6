package wm

import "time"

// Rect is a character-cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// SnapPosition enumerates the thirteen predefined rectangles a window can
// snap to.
type SnapPosition int

const (
	SnapFullLeft SnapPosition = iota
	SnapFullRight
	SnapFullTop
	SnapFullBottom
	SnapTopLeft
	SnapTopCenter
	SnapTopRight
	SnapMiddleLeft
	SnapCenter
	SnapMiddleRight
	SnapBottomLeft
	SnapBottomCenter
	SnapBottomRight
)

// SnapRect maps a SnapPosition to its target rectangle within a desktop of
// (cols, rows) whose usable area starts at topY.
func SnapRect(pos SnapPosition, cols, rows, topY int) Rect {
	h := rows - topY
	halfW, halfH := cols/2, h/2
	thirdW, thirdH := cols/3, h/3

	switch pos {
	case SnapFullLeft:
		return Rect{0, topY, halfW, h}
	case SnapFullRight:
		return Rect{cols - halfW, topY, halfW, h}
	case SnapFullTop:
		return Rect{0, topY, cols, halfH}
	case SnapFullBottom:
		return Rect{0, topY + halfH, cols, h - halfH}
	case SnapTopLeft:
		return Rect{0, topY, halfW, halfH}
	case SnapTopCenter:
		return Rect{thirdW, topY, cols - 2*thirdW, halfH}
	case SnapTopRight:
		return Rect{cols - halfW, topY, halfW, halfH}
	case SnapMiddleLeft:
		return Rect{0, topY + halfH/2, halfW, halfH}
	case SnapCenter:
		return Rect{thirdW, topY + thirdH, cols - 2*thirdW, h - 2*thirdH}
	case SnapMiddleRight:
		return Rect{cols - halfW, topY + halfH/2, halfW, halfH}
	case SnapBottomLeft:
		return Rect{0, topY + halfH, halfW, h - halfH}
	case SnapBottomCenter:
		return Rect{thirdW, topY + halfH, cols - 2*thirdW, h - halfH}
	case SnapBottomRight:
		return Rect{cols - halfW, topY + halfH, halfW, h - halfH}
	}
	return Rect{0, topY, cols, h}
}

// snapZoneFraction is how much of each screen edge counts as the "snap
// zone" that triggers a preview while dragging.
const snapZoneFraction = 3

// DetectSnapZone maps a cursor position during a drag to the SnapPosition
// it would trigger, or false if the cursor isn't in any edge/corner zone.
func (m *Manager) DetectSnapZone(x, y int) (SnapPosition, bool) {
	u := m.usableRect()
	edgeW := u.W / snapZoneFraction
	edgeH := u.H / snapZoneFraction
	if edgeW < 1 {
		edgeW = 1
	}
	if edgeH < 1 {
		edgeH = 1
	}

	left := x < u.X+edgeW
	right := x >= u.X+u.W-edgeW
	top := y < u.Y+edgeH
	bottom := y >= u.Y+u.H-edgeH

	switch {
	case top && left:
		return SnapTopLeft, true
	case top && right:
		return SnapTopRight, true
	case bottom && left:
		return SnapBottomLeft, true
	case bottom && right:
		return SnapBottomRight, true
	case left:
		return SnapFullLeft, true
	case right:
		return SnapFullRight, true
	case top:
		return SnapFullTop, true
	case bottom:
		return SnapFullBottom, true
	}
	return 0, false
}

// BeginDrag records a title-bar press: the offset between the cursor and
// the window's origin.
func (m *Manager) BeginDrag(id, cursorX, cursorY int, noSnap bool) {
	w := m.windowByID(id)
	if w == nil || w.Frame.TileLocked {
		return
	}
	m.drag = &dragState{
		windowID: id,
		offsetX:  cursorX - w.Frame.X,
		offsetY:  cursorY - w.Frame.Y,
		noSnap:   noSnap,
	}
}

// DragTo moves the dragged window so its origin tracks (cursorX-offset,
// cursorY-offset), clamped to the desktop minus the top/bottom bars, and
// updates the snap preview unless no-snap is held.
func (m *Manager) DragTo(cursorX, cursorY int) {
	if m.drag == nil {
		return
	}
	w := m.windowByID(m.drag.windowID)
	if w == nil {
		return
	}
	u := m.usableRect()
	x := cursorX - m.drag.offsetX
	y := cursorY - m.drag.offsetY
	if x < u.X {
		x = u.X
	}
	if x > u.X+u.W-w.Frame.W {
		x = u.X + u.W - w.Frame.W
	}
	if y < u.Y {
		y = u.Y
	}
	if y > u.Y+u.H-w.Frame.H {
		y = u.Y + u.H - w.Frame.H
	}
	w.Frame.X, w.Frame.Y = x, y

	m.SnapPreview = nil
	if !m.drag.noSnap {
		if pos, ok := m.DetectSnapZone(cursorX, cursorY); ok {
			r := SnapRect(pos, m.Width, m.Height, m.TopBarRows)
			m.SnapPreview = &r
		}
	}
}

// EndDrag applies the snap preview (if any) to the dragged window and
// clears drag state.
func (m *Manager) EndDrag() {
	if m.drag == nil {
		return
	}
	w := m.windowByID(m.drag.windowID)
	if w != nil && m.SnapPreview != nil {
		r := *m.SnapPreview
		w.Frame.X, w.Frame.Y, w.Frame.W, w.Frame.H = r.X, r.Y, r.W, r.H
		w.Resize(r.W, r.H)
	}
	m.drag = nil
	m.SnapPreview = nil
}

// IsDragging reports whether a drag is in progress.
func (m *Manager) IsDragging() bool { return m.drag != nil }

// BeginResize records a resize-handle press: the starting cursor position
// and the window's starting size.
func (m *Manager) BeginResize(id, cursorX, cursorY int) {
	w := m.windowByID(id)
	if w == nil || w.Frame.TileLocked || w.Frame.IsMaximized {
		return
	}
	m.resize = &resizeState{
		windowID:    id,
		startX:      cursorX,
		startY:      cursorY,
		startWidth:  w.Frame.W,
		startHeight: w.Frame.H,
	}
}

// ResizeTo applies delta-from-start resizing, clamped to the frame
// minimums, and resizes the emulator to match.
func (m *Manager) ResizeTo(cursorX, cursorY int) {
	if m.resize == nil {
		return
	}
	w := m.windowByID(m.resize.windowID)
	if w == nil {
		return
	}
	dx := cursorX - m.resize.startX
	dy := cursorY - m.resize.startY
	newW := m.resize.startWidth + dx
	newH := m.resize.startHeight + dy
	if newW < termwindowMinWidth {
		newW = termwindowMinWidth
	}
	if newH < termwindowMinHeight {
		newH = termwindowMinHeight
	}
	w.Resize(newW, newH)
}

// EndResize clears resize state.
func (m *Manager) EndResize() { m.resize = nil }

// IsResizing reports whether a resize is in progress.
func (m *Manager) IsResizing() bool { return m.resize != nil }

// HandleTitleBarClick implements the title-bar press contract: single
// click records LastClick and starts a drag (unless maximized); a second
// click on the same cell within 500ms toggles maximize instead and clears
// LastClick so a third click can't be misread as another double-click.
func (m *Manager) HandleTitleBarClick(id, x, y int, now time.Time, noSnap bool) {
	w := m.windowByID(id)
	if w == nil {
		return
	}
	isDouble := m.last != nil &&
		m.last.windowID == id && m.last.x == x && m.last.y == y &&
		now.Sub(m.last.at) < doubleClickThreshold

	if isDouble {
		m.ToggleMaximize(id)
		m.last = nil
		return
	}

	m.last = &lastClick{windowID: id, x: x, y: y, at: now}
	if !w.Frame.IsMaximized {
		m.BeginDrag(id, x, y, noSnap)
	}
}

const (
	termwindowMinWidth  = 20
	termwindowMinHeight = 5
)
