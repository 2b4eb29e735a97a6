package input

import "github.com/alejandroqh/term39/internal/wm"

// NumberOverlay tracks the Alt-held window-numbering overlay: while Alt is
// held, each of the first nine windows (in z-order) is highlighted with
// its ordinal; releasing Alt without a digit press dismisses it; Alt+digit
// focuses (and un-minimizes) that window.
type NumberOverlay struct {
	active bool
}

// AltDown/AltUp toggle the overlay's visibility.
func (o *NumberOverlay) AltDown() { o.active = true }
func (o *NumberOverlay) AltUp()   { o.active = false }

// Active reports whether the overlay should currently be drawn.
func (o *NumberOverlay) Active() bool { return o.active }

// Ordinals returns the window IDs in the order they're numbered 1-9 for
// the overlay's current set of windows.
func Ordinals(m *wm.Manager) []int {
	ids := make([]int, 0, 9)
	for _, w := range m.Windows {
		if len(ids) >= 9 {
			break
		}
		ids = append(ids, w.Frame.ID)
	}
	return ids
}

// HandleDigit implements Alt+digit: focus (and restore, if minimized) the
// nth window in z-order.
func (o *NumberOverlay) HandleDigit(m *wm.Manager, digit int) bool {
	if !o.active || digit < 1 || digit > 9 {
		return false
	}
	ids := Ordinals(m)
	idx := digit - 1
	if idx >= len(ids) {
		return false
	}
	id := ids[idx]
	m.Restore(id)
	m.FocusWindow(id)
	return true
}
