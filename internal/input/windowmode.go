package input

import "github.com/alejandroqh/term39/internal/keymode"

// handleWindowMode implements §4.9's Navigation/Move/Resize keybindings.
// It assumes c.KeyMode.Mode == keymode.WindowMode and returns whether ev
// was consumed.
func (c *Chain) handleWindowMode(ev KeyEvent) bool {
	km := c.KeyMode
	switch km.Sub {
	case keymode.Navigation:
		return c.handleNavigation(ev)
	case keymode.Move:
		return c.handleMove(ev)
	case keymode.Resize:
		return c.handleResize(ev)
	}
	return false
}

func (c *Chain) handleNavigation(ev KeyEvent) bool {
	km := c.KeyMode
	focused := c.WM.FocusedWindow()

	switch {
	case ev.Key == KeyEscape:
		km.ExitToNormal()
		return true
	case ev.Rune == 'm':
		km.EnterMove()
		return true
	case ev.Rune == 'r':
		km.EnterResize()
		return true
	case ev.Rune == 'x' || ev.Rune == 'q':
		if focused != nil {
			c.WM.RequestClose(focused.Frame.ID, false)
		}
		return true
	case ev.Key == KeyTab:
		c.WM.CycleZOrder(ev.Mod&ModShift == 0)
		return true
	case dirFromNav(ev) != noDir:
		c.WM.FocusWindowInDirection(dirFromNav(ev))
		return true
	case ev.Mod&ModShift != 0 && snapDirFromShift(ev) != 0:
		if focused != nil && !focused.Frame.TileLocked {
			applySnap(c.WM, focused.Frame.ID, snapDirFromShift(ev))
		}
		return true
	case ev.Rune >= '1' && ev.Rune <= '9':
		if focused != nil && !focused.Frame.TileLocked {
			applyGridSnap(c.WM, focused.Frame.ID, int(ev.Rune-'0'))
		}
		return true
	}
	return false
}

func (c *Chain) handleMove(ev KeyEvent) bool {
	km := c.KeyMode
	focused := c.WM.FocusedWindow()
	if returnsToNavigation(ev) {
		km.ReturnToNavigation()
		return true
	}
	if focused == nil || focused.Frame.TileLocked {
		return true
	}
	if ev.Mod&ModShift != 0 {
		if dir := snapDirFromShift(ev); dir != noDir {
			snapToEdge(c.WM, focused.Frame.ID, dir)
			return true
		}
	}
	step := km.Step(ev.At)
	dx, dy := deltaFromArrowOrHJKL(ev)
	if dx == 0 && dy == 0 {
		return false
	}
	focused.Frame.X += dx * step
	focused.Frame.Y += dy * step
	focused.Frame.Clamp()
	return true
}

func (c *Chain) handleResize(ev KeyEvent) bool {
	km := c.KeyMode
	focused := c.WM.FocusedWindow()
	if returnsToNavigation(ev) {
		km.ReturnToNavigation()
		return true
	}
	if focused == nil || focused.Frame.TileLocked {
		return true
	}
	shift := ev.Mod&ModShift != 0
	var dir direction
	if shift {
		dir = snapDirFromShift(ev)
	} else {
		dir = dirFromNav(ev)
	}
	if dir == noDir {
		return false
	}
	step := km.Step(ev.At)
	dx, dy := deltaForDir(dir)
	if shift {
		// Shift flips the anchored edge to left/top: the opposite edge
		// moves instead of staying fixed, so X/Y shift alongside W/H.
		focused.Frame.X += dx * step
		focused.Frame.W -= dx * step
		focused.Frame.Y += dy * step
		focused.Frame.H -= dy * step
	} else {
		focused.Frame.W += dx * step
		focused.Frame.H += dy * step
	}
	focused.Frame.Clamp()
	return true
}

func returnsToNavigation(ev KeyEvent) bool {
	return ev.Key == KeyEnter || ev.Key == KeyEscape || ev.Key == KeyF8 || ev.Rune == 'm'
}

type direction int

const (
	noDir direction = iota
	dirLeft
	dirRight
	dirUp
	dirDown
)

func dirFromNav(ev KeyEvent) direction {
	switch {
	case ev.Key == KeyLeft || ev.Rune == 'h':
		return dirLeft
	case ev.Key == KeyRight || ev.Rune == 'l':
		return dirRight
	case ev.Key == KeyUp || ev.Rune == 'k':
		return dirUp
	case ev.Key == KeyDown || ev.Rune == 'j':
		return dirDown
	}
	return noDir
}

func deltaFromArrowOrHJKL(ev KeyEvent) (dx, dy int) {
	return deltaForDir(dirFromNav(ev))
}

func deltaForDir(dir direction) (dx, dy int) {
	switch dir {
	case dirLeft:
		return -1, 0
	case dirRight:
		return 1, 0
	case dirUp:
		return 0, -1
	case dirDown:
		return 0, 1
	}
	return 0, 0
}

func snapDirFromShift(ev KeyEvent) direction {
	switch ev.Rune {
	case 'H':
		return dirLeft
	case 'L':
		return dirRight
	case 'K':
		return dirUp
	case 'J':
		return dirDown
	}
	return 0
}
