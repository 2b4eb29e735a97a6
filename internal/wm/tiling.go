package wm

import "github.com/alejandroqh/term39/internal/termwindow"

// Pivot is the single coordinate that controls the shared split of 2-4
// auto-tiled windows. Dragging it resizes every tiled window at once.
type Pivot struct {
	X, Y int
}

// maxTiled is the largest tile-locked set auto-tiling manages; windows
// beyond this float freely on top.
const maxTiled = 4

// tiledWindows returns up to maxTiled non-minimized windows, in ascending
// id order (creation order), eligible for tile-lock.
func (m *Manager) tiledWindows() []*termwindow.Window {
	var out []*termwindow.Window
	for _, w := range m.byAscendingID() {
		if w.Frame.IsMinimized {
			continue
		}
		out = append(out, w)
		if len(out) == maxTiled {
			break
		}
	}
	return out
}

func (m *Manager) byAscendingID() []*termwindow.Window {
	out := append([]*termwindow.Window(nil), m.Windows...)
	// Simple insertion sort by ID: the window counts this manages are tiny
	// (<=4 matter, the rest float), so O(n^2) is fine.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Frame.ID < out[j-1].Frame.ID; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// SetAutoTiling toggles auto-tiling; turning it on immediately retiles the
// current window set, turning it off releases every tile lock.
func (m *Manager) SetAutoTiling(enabled bool) {
	m.AutoTiling = enabled
	if enabled {
		m.retile()
		return
	}
	for _, w := range m.Windows {
		w.Frame.TileLocked = false
	}
}

// retile lays out the tile-locked set according to its size and the
// current pivot, marks those windows TileLocked, and unlocks the rest.
func (m *Manager) retile() {
	locked := m.tiledWindows()
	lockedIDs := make(map[int]bool, len(locked))
	for _, w := range locked {
		lockedIDs[w.Frame.ID] = true
	}
	for _, w := range m.Windows {
		w.Frame.TileLocked = lockedIDs[w.Frame.ID]
	}

	rects := m.tileLayout(len(locked))
	gap := 0
	if m.TilingGaps {
		gap = 1
	}
	for i, w := range locked {
		if i >= len(rects) {
			break
		}
		r := rects[i]
		r.X += gap
		r.Y += gap
		r.W -= 2 * gap
		r.H -= 2 * gap
		if r.W < termwindowMinWidth {
			r.W = termwindowMinWidth
		}
		if r.H < termwindowMinHeight {
			r.H = termwindowMinHeight
		}
		w.Frame.X, w.Frame.Y = r.X, r.Y
		w.Frame.W, w.Frame.H = r.W, r.H
		w.Resize(r.W, r.H)
	}
}

// tileLayout computes the n-window tile rectangles (n in 1..4) around the
// current pivot, within the usable desktop area.
func (m *Manager) tileLayout(n int) []Rect {
	u := m.usableRect()
	if n <= 0 {
		return nil
	}

	px := clampInt(m.Pivot.X, u.X+termwindowMinWidth, u.X+u.W-termwindowMinWidth)
	py := clampInt(m.Pivot.Y, u.Y+termwindowMinHeight, u.Y+u.H-termwindowMinHeight)
	leftW := px - u.X
	rightW := u.X + u.W - px
	topH := py - u.Y
	bottomH := u.Y + u.H - py

	switch n {
	case 1:
		return []Rect{u}
	case 2:
		return []Rect{
			{u.X, u.Y, leftW, u.H},
			{px, u.Y, rightW, u.H},
		}
	case 3:
		// One full-height half plus two quarters stacked in the other half.
		return []Rect{
			{u.X, u.Y, leftW, u.H},
			{px, u.Y, rightW, topH},
			{px, py, rightW, bottomH},
		}
	case 4:
		return []Rect{
			{u.X, u.Y, leftW, topH},
			{px, u.Y, rightW, topH},
			{u.X, py, leftW, bottomH},
			{px, py, rightW, bottomH},
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsPointOnPivot reports whether (x, y) is within one cell of the pivot,
// the hit zone the Input Pipeline yields selection-handling to.
func (m *Manager) IsPointOnPivot(x, y int) bool {
	if !m.AutoTiling || len(m.tiledWindows()) < 2 {
		return false
	}
	dx := x - m.Pivot.X
	dy := y - m.Pivot.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// DragPivot moves the pivot to (x, y) and re-lays-out every tiled window.
// Locked windows otherwise accept no move/resize; this is their one path
// to resizing.
func (m *Manager) DragPivot(x, y int) {
	m.Pivot = Pivot{X: x, Y: y}
	m.retile()
}
