package input

// DispatchMouse runs a MouseEvent through the chrome-then-window-manager
// portion of the priority chain (steps 6-10): top bar, taskbar, window
// context menu, selection, then the Window Manager itself.
func (c *Chain) DispatchMouse(ev MouseEvent) bool {
	if c.TopBar != nil && c.TopBar.HandleMouse(ev) {
		return true
	}
	if c.Taskbar != nil && c.Taskbar.HandleMouse(ev) {
		return true
	}
	if ev.Button == ButtonRight && c.WindowContextMenu != nil && c.WindowContextMenu.HandleMouse(ev) {
		return true
	}
	if c.Selection != nil && !c.cursorOnPivot(ev) && c.Selection.HandleMouse(ev) {
		return true
	}
	return c.dispatchToWindowManager(ev)
}

// cursorOnPivot reports whether ev's position is on the tiling pivot
// handle, in which case selection yields to the Window Manager.
func (c *Chain) cursorOnPivot(ev MouseEvent) bool {
	if c.WM == nil {
		return false
	}
	return c.WM.IsPointOnPivot(ev.Col, ev.Row)
}

func (c *Chain) dispatchToWindowManager(ev MouseEvent) bool {
	if c.WM == nil {
		return false
	}
	switch ev.Kind {
	case MouseDown:
		if ev.Button != ButtonLeft {
			return false
		}
		if c.cursorOnPivot(ev) {
			c.WM.DragPivot(ev.Col, ev.Row)
			return true
		}
		if w := c.WM.WindowAt(ev.Col, ev.Row); w != nil {
			c.WM.FocusWindow(w.Frame.ID)
			return true
		}
		c.WM.FocusDesktop()
		return false
	case MouseMove:
		if c.WM.IsDragging() {
			c.WM.DragTo(ev.Col, ev.Row)
			return true
		}
		if c.WM.IsResizing() {
			c.WM.ResizeTo(ev.Col, ev.Row)
			return true
		}
	case MouseUp:
		if c.WM.IsDragging() {
			c.WM.EndDrag()
			return true
		}
		if c.WM.IsResizing() {
			c.WM.EndResize()
			return true
		}
	}
	return false
}
