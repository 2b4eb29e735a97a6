// Package wm implements the Window Manager: z-order, focus, window
// create/close, drag/snap/resize, tiling with a shared pivot, cascade
// placement, minimize/maximize, taskbar interaction and spatial keyboard
// navigation. Session save/load lives in internal/session and cmd/term39.
package wm

import (
	"time"

	"github.com/alejandroqh/term39/internal/term"
	"github.com/alejandroqh/term39/internal/termwindow"
)

// FocusKind identifies which of the three focus targets is active.
type FocusKind int

const (
	FocusDesktop FocusKind = iota
	FocusTopbar
	FocusWindow
)

// Focus is the Window Manager's current focus target.
type Focus struct {
	Kind     FocusKind
	WindowID int
}

type dragState struct {
	windowID           int
	offsetX, offsetY   int
	noSnap             bool
}

type resizeState struct {
	windowID                       int
	startX, startY                 int
	startWidth, startHeight        int
}

type lastClick struct {
	windowID int
	x, y     int
	at       time.Time
}

const doubleClickThreshold = 500 * time.Millisecond

// Manager owns the z-ordered window list and all interaction state the
// spec's Window Manager component describes.
type Manager struct {
	// Windows is ordered back-to-front in z-order; the last entry is
	// topmost.
	Windows []*termwindow.Window
	nextID  int

	Focus Focus

	Width, Height int // desktop dimensions in cells
	TopBarRows    int // reserved rows at the top (default 1)
	BottomBarRows int // reserved rows at the bottom (default 1)

	drag    *dragState
	resize  *resizeState
	last    *lastClick

	SnapPreview *Rect

	AutoTiling  bool
	TilingGaps  bool
	Pivot       Pivot
	cascadeNext int

	MaxScrollback int
	ShellConfig   term.ShellConfig

	Theme termwindow.Theme
}

// New creates an empty Window Manager for a desktop of the given size.
func New(width, height int) *Manager {
	return &Manager{
		nextID:        1,
		Width:         width,
		Height:        height,
		TopBarRows:    1,
		BottomBarRows: 1,
		Focus:         Focus{Kind: FocusDesktop},
		MaxScrollback: 1000,
		Pivot:         Pivot{X: width / 2, Y: height / 2},
	}
}

// usableRect is the desktop area windows may occupy: everything below the
// top bar and above the bottom bar.
func (m *Manager) usableRect() Rect {
	return Rect{X: 0, Y: m.TopBarRows, W: m.Width, H: m.Height - m.TopBarRows - m.BottomBarRows}
}

// AllocateID reserves the next window id without creating a window, for
// callers that construct a *termwindow.Window directly (session restore)
// instead of going through CreateWindow.
func (m *Manager) AllocateID() int {
	id := m.nextID
	m.nextID++
	return id
}

// CreateWindow allocates a new id, unfocuses every existing window, spawns
// a Terminal Window at the given geometry (caller-supplied: cascade or
// centered) and focuses it. If auto-tiling is active and there is room in
// the tile-locked set, the new window is placed into a tile slot instead
// and the whole locked set is re-laid-out.
func (m *Manager) CreateWindow(x, y, w, h int, title string, command []string) (*termwindow.Window, error) {
	id := m.nextID
	m.nextID++

	for _, win := range m.Windows {
		win.Frame.IsFocused = false
	}

	tw, err := termwindow.New(id, x, y, w, h, title, m.MaxScrollback, command, m.ShellConfig)
	if err != nil {
		return nil, err
	}
	tw.Frame.IsFocused = true
	m.Windows = append(m.Windows, tw)
	m.Focus = Focus{Kind: FocusWindow, WindowID: id}

	if m.AutoTiling {
		m.retile()
	}
	return tw, nil
}

// NextCascadePosition returns the geometry the next created window should
// use when auto-tiling is off: each window offset by a fixed delta from
// the previous, wrapping back to the desktop origin when it would leave
// the screen.
func (m *Manager) NextCascadePosition(w, h int) (x, y int) {
	const stepX, stepY = 4, 2
	u := m.usableRect()
	x = u.X + (m.cascadeNext*stepX)%max(u.W-w, 1)
	y = u.Y + (m.cascadeNext*stepY)%max(u.H-h, 1)
	m.cascadeNext++
	return x, y
}

// windowByID returns the window with the given id, or nil.
func (m *Manager) windowByID(id int) *termwindow.Window {
	for _, w := range m.Windows {
		if w.Frame.ID == id {
			return w
		}
	}
	return nil
}

// indexByID returns the z-order index of the window with the given id, or -1.
func (m *Manager) indexByID(id int) int {
	for i, w := range m.Windows {
		if w.Frame.ID == id {
			return i
		}
	}
	return -1
}

// FocusedWindow returns the currently focused window, or nil.
func (m *Manager) FocusedWindow() *termwindow.Window {
	if m.Focus.Kind != FocusWindow {
		return nil
	}
	return m.windowByID(m.Focus.WindowID)
}

// WindowAt finds the topmost window whose frame contains (x, y).
func (m *Manager) WindowAt(x, y int) *termwindow.Window {
	for i := len(m.Windows) - 1; i >= 0; i-- {
		w := m.Windows[i]
		if w.Frame.IsMinimized {
			continue
		}
		if w.Frame.ContainsPoint(x, y) {
			return w
		}
	}
	return nil
}

// FocusWindow moves the window to the top of z-order, clears focus on
// every other window, and sets the Window focus state.
func (m *Manager) FocusWindow(id int) {
	idx := m.indexByID(id)
	if idx < 0 {
		return
	}
	w := m.Windows[idx]
	m.Windows = append(m.Windows[:idx], m.Windows[idx+1:]...)
	for _, other := range m.Windows {
		other.Frame.IsFocused = false
	}
	w.Frame.IsFocused = true
	m.Windows = append(m.Windows, w)
	m.Focus = Focus{Kind: FocusWindow, WindowID: id}
}

// FocusDesktop clears focus on every window and sets FocusState to Desktop.
func (m *Manager) FocusDesktop() {
	for _, w := range m.Windows {
		w.Frame.IsFocused = false
	}
	m.Focus = Focus{Kind: FocusDesktop}
}

// FocusTopBar sets FocusState to Topbar, clearing window focus.
func (m *Manager) FocusTopBar() {
	for _, w := range m.Windows {
		w.Frame.IsFocused = false
	}
	m.Focus = Focus{Kind: FocusTopbar}
}

// RequestClose raises a per-window close confirmation if the window is
// "dirty" (caller-supplied predicate — foreground process still running,
// or unsaved selection); otherwise closes it immediately.
func (m *Manager) RequestClose(id int, dirty bool) {
	w := m.windowByID(id)
	if w == nil {
		return
	}
	if dirty {
		w.CloseConfirm = termwindow.CloseConfirmPending
		return
	}
	m.CloseWindow(id)
}

// HandleCloseConfirmationKey resolves a pending close-confirmation prompt:
// 'y'/Enter confirms (closes the window); 'n'/Escape cancels.
func (m *Manager) HandleCloseConfirmationKey(id int, confirm bool) {
	w := m.windowByID(id)
	if w == nil || w.CloseConfirm != termwindow.CloseConfirmPending {
		return
	}
	w.CloseConfirm = termwindow.CloseConfirmNone
	if confirm {
		m.CloseWindow(id)
	}
}

// CloseWindow removes the window from z-order and tears down its
// emulator. If it held focus, the topmost remaining non-minimized window
// (or the desktop) is refocused.
func (m *Manager) CloseWindow(id int) {
	idx := m.indexByID(id)
	if idx < 0 {
		return
	}
	w := m.Windows[idx]
	_ = w.Close()
	m.Windows = append(m.Windows[:idx], m.Windows[idx+1:]...)

	if m.Focus.Kind == FocusWindow && m.Focus.WindowID == id {
		m.focusTopmostOrDesktop()
	}
	if m.AutoTiling {
		m.retile()
	}
}

func (m *Manager) focusTopmostOrDesktop() {
	for i := len(m.Windows) - 1; i >= 0; i-- {
		if !m.Windows[i].Frame.IsMinimized {
			m.FocusWindow(m.Windows[i].Frame.ID)
			return
		}
	}
	m.FocusDesktop()
}

// Minimize hides the window from z-order interaction, clears its focus and
// refocuses the next non-minimized window (or the desktop).
func (m *Manager) Minimize(id int) {
	w := m.windowByID(id)
	if w == nil {
		return
	}
	w.Frame.IsMinimized = true
	w.Frame.IsFocused = false
	if m.Focus.Kind == FocusWindow && m.Focus.WindowID == id {
		m.focusTopmostOrDesktop()
	}
}

// Restore un-minimizes and focuses the window (the taskbar click path).
func (m *Manager) Restore(id int) {
	w := m.windowByID(id)
	if w == nil {
		return
	}
	w.Frame.IsMinimized = false
	m.FocusWindow(id)
}

// ToggleMaximize maximizes or restores the window, then resizes its
// emulator to match. A tile-locked window ignores this request.
func (m *Manager) ToggleMaximize(id int) {
	w := m.windowByID(id)
	if w == nil || w.Frame.TileLocked {
		return
	}
	w.Frame.ToggleMaximize(m.Width, m.Height)
	w.Resize(w.Frame.W, w.Frame.H)
}

// ProcessAllOutput drains PTY output for every window once per frame,
// returning the ids of windows whose child has exited.
func (m *Manager) ProcessAllOutput() (exited []int) {
	for _, w := range m.Windows {
		if !w.ProcessOutput() {
			exited = append(exited, w.Frame.ID)
		}
	}
	return exited
}

// SendToFocused routes a string to the focused window's PTY.
func (m *Manager) SendToFocused(s string) {
	if w := m.FocusedWindow(); w != nil {
		_ = w.SendStr(s)
	}
}

// SendCharToFocused routes a single rune to the focused window's PTY.
func (m *Manager) SendCharToFocused(r rune) {
	if w := m.FocusedWindow(); w != nil {
		_ = w.SendChar(r)
	}
}

// FlushAllTerminalInput calls Flush on every window's emulator. PTY writes
// are unbuffered and Emulator.Flush does nothing, so this has no effect.
func (m *Manager) FlushAllTerminalInput() {
	for _, w := range m.Windows {
		w.Emulator.Flush()
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
