package input

import "github.com/alejandroqh/term39/internal/wm"

// applySnap implements Shift+H/J/K/L: snap the given window to the
// left/bottom/top/right half of the desktop.
func applySnap(m *wm.Manager, windowID int, dir direction) {
	var pos wm.SnapPosition
	switch dir {
	case dirLeft:
		pos = wm.SnapFullLeft
	case dirRight:
		pos = wm.SnapFullRight
	case dirUp:
		pos = wm.SnapFullTop
	case dirDown:
		pos = wm.SnapFullBottom
	default:
		return
	}
	setSnapRect(m, windowID, pos)
}

// numpadSnap maps digits 1-9 to the nine-grid snap positions in the
// conventional numpad layout (7-8-9 top row, 4-5-6 middle, 1-2-3 bottom).
var numpadSnap = map[int]wm.SnapPosition{
	7: wm.SnapTopLeft, 8: wm.SnapTopCenter, 9: wm.SnapTopRight,
	4: wm.SnapMiddleLeft, 5: wm.SnapCenter, 6: wm.SnapMiddleRight,
	1: wm.SnapBottomLeft, 2: wm.SnapBottomCenter, 3: wm.SnapBottomRight,
}

// applyGridSnap implements digits 1-9: snap to one of the nine grid
// positions.
func applyGridSnap(m *wm.Manager, windowID int, digit int) {
	pos, ok := numpadSnap[digit]
	if !ok {
		return
	}
	setSnapRect(m, windowID, pos)
}

func setSnapRect(m *wm.Manager, windowID int, pos wm.SnapPosition) {
	w := m.FocusedWindow()
	if w == nil || w.Frame.ID != windowID {
		return
	}
	r := wm.SnapRect(pos, m.Width, m.Height, m.TopBarRows)
	w.Frame.X, w.Frame.Y, w.Frame.W, w.Frame.H = r.X, r.Y, r.W, r.H
	w.Resize(r.W, r.H)
}

// snapToEdge implements Move sub-mode's Shift+H/J/K/L: push the window
// flush against the given desktop edge, leaving its size untouched (unlike
// Navigation's Shift+HJKL, which snaps to a half-screen rectangle).
func snapToEdge(m *wm.Manager, windowID int, dir direction) {
	w := m.FocusedWindow()
	if w == nil || w.Frame.ID != windowID {
		return
	}
	switch dir {
	case dirLeft:
		w.Frame.X = 0
	case dirRight:
		w.Frame.X = m.Width - w.Frame.W
	case dirUp:
		w.Frame.Y = m.TopBarRows
	case dirDown:
		w.Frame.Y = m.Height - m.BottomBarRows - w.Frame.H
	}
}
