package input

import (
	"time"

	"github.com/alejandroqh/term39/internal/keymode"
	"github.com/alejandroqh/term39/internal/wm"
)

// KeyHandler and MouseHandler are the shape every dispatch-chain stage
// that isn't owned directly by this package (lock screen, modal dialogs,
// top bar, toasts, context menus) is expected to satisfy. Returning true
// means the stage consumed the event and dispatch stops there.
type KeyHandler interface {
	HandleKey(ev KeyEvent) bool
}

type MouseHandler interface {
	HandleMouse(ev MouseEvent) bool
}

// Modal is a KeyHandler that also reports whether it is currently
// presented, so the dispatcher can skip inactive modals without calling
// into them.
type Modal interface {
	KeyHandler
	Active() bool
}

// Chain wires the full dispatch order described by the priority list:
// lock screen, external lock signal, global shortcuts, modal stack, toast
// auto-dismiss, top-bar, taskbar/auto-tiling toggle, window context menu,
// selection, Window Manager, then PTY forwarding. Any field left nil is
// skipped.
type Chain struct {
	LockScreen      KeyHandler
	ExternalLock    func() bool // polls the external-lock-requested flag
	OnExternalLock  func()      // invoked once when ExternalLock transitions to true
	GlobalShortcuts KeyHandler

	// Modals is checked in the fixed order: exit prompt, PIN setup,
	// error dialog, config window, help, about, window-mode help,
	// calendar, launcher, per-window close-confirmation. Callers supply
	// them already in that order.
	Modals []Modal

	ToastActive  func() bool
	ToastAge     func() time.Duration
	DismissToast func()

	TopBar          MouseHandler
	Taskbar         MouseHandler
	WindowContextMenu MouseHandler
	Selection       MouseHandler

	WM      *wm.Manager
	KeyMode *keymode.State

	// DECCKM reports the focused window's application-cursor-keys mode,
	// consulted once per forwarded key.
	DECCKM func() bool
	// ShiftEnhanced reports whether the keyboard-enhancement protocol is
	// active for Shift+Enter encoding.
	ShiftEnhanced func() bool

	wasLocked bool
}

// DispatchKey runs ev through the priority chain, returning true as soon
// as some stage consumes it.
func (c *Chain) DispatchKey(ev KeyEvent) bool {
	if c.LockScreen != nil && c.LockScreen.HandleKey(ev) {
		return true
	}

	if c.ExternalLock != nil {
		locked := c.ExternalLock()
		if locked && !c.wasLocked && c.OnExternalLock != nil {
			c.OnExternalLock()
		}
		c.wasLocked = locked
		if locked {
			return true
		}
	}

	if c.GlobalShortcuts != nil && c.GlobalShortcuts.HandleKey(ev) {
		return true
	}

	for _, m := range c.Modals {
		if m.Active() && m.HandleKey(ev) {
			return true
		}
	}

	handled := c.dispatchWindowModeOrForward(ev)

	if c.ToastActive != nil && c.ToastActive() && c.ToastAge != nil && c.ToastAge() > 100*time.Millisecond && c.DismissToast != nil {
		c.DismissToast()
	}

	return handled
}

// dispatchWindowModeOrForward implements steps 10-11 of the dispatch
// chain for keyboard events: Window Mode keybindings when active,
// otherwise forwarding to the focused terminal.
func (c *Chain) dispatchWindowModeOrForward(ev KeyEvent) bool {
	if c.KeyMode == nil || c.WM == nil {
		return c.forward(ev)
	}

	if ev.Key == KeyBacktick {
		sendLiteral := c.KeyMode.ToggleBacktick(ev.At)
		if sendLiteral {
			return c.forward(ev)
		}
		return true
	}
	if ev.Key == KeyF8 {
		if c.KeyMode.Mode == keymode.Normal {
			c.KeyMode.EnterWindowMode()
		} else {
			c.KeyMode.ExitToNormal()
		}
		return true
	}

	if c.KeyMode.Mode == keymode.WindowMode {
		if c.handleWindowMode(ev) {
			return true
		}
	}

	return c.forward(ev)
}

func (c *Chain) forward(ev KeyEvent) bool {
	if GloballyInterceptedKeys[ev.Key] {
		return true // consumed by global shortcuts upstream; never forwarded
	}
	if c.WM == nil {
		return false
	}
	focused := c.WM.FocusedWindow()
	if focused == nil {
		return false
	}
	decckm := false
	if c.DECCKM != nil {
		decckm = c.DECCKM()
	}
	shiftEnh := false
	if c.ShiftEnhanced != nil {
		shiftEnh = c.ShiftEnhanced()
	}
	b := KeyToBytes(ev, decckm, shiftEnh)
	if b == nil {
		return false
	}
	_ = focused.Emulator.WriteInput(b)
	return true
}
