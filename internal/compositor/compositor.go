package compositor

import (
	"time"

	"github.com/alejandroqh/term39/internal/cellbuf"
	"github.com/alejandroqh/term39/internal/render"
	"github.com/alejandroqh/term39/internal/term39log"
	"github.com/alejandroqh/term39/internal/termwindow"
	"github.com/alejandroqh/term39/internal/wm"
)

// ToastDismissThreshold is the auto-dismiss age from §4.8 step 5.
const ToastDismissThreshold = 100 * time.Millisecond

// ModalOverlay is anything the frame loop draws on top of windows and
// chrome after the Window Manager's own render pass: dialogs, the
// window-numbering overlay, a context menu. Compositor doesn't know or
// care what's behind the interface, only that it can paint itself.
type ModalOverlay interface {
	Render(vb *cellbuf.VideoBuffer)
	Active() bool
}

// Compositor drives the per-frame render order: resize check, windows
// (each drawing its own frame chrome), modal overlays, present, then the
// backend's cursor update/draw/restore.
type Compositor struct {
	Backend render.Backend
	WM      *wm.Manager
	Theme   termwindow.Theme
	Toasts  ToastQueue
	Modals  []ModalOverlay

	log *term39log.Logger

	vb *cellbuf.VideoBuffer
}

// New creates a Compositor sized to the backend's current dimensions.
func New(backend render.Backend, manager *wm.Manager, logger *term39log.Logger) *Compositor {
	cols, rows := backend.Dimensions()
	return &Compositor{
		Backend: backend,
		WM:      manager,
		log:     logger,
		vb:      cellbuf.New(cols, rows),
	}
}

// Frame runs one iteration: resize check, render every non-minimized
// window back to front (each with its own frame chrome), modal overlays,
// toast age-out, then present and draw/restore the cursor overlay so the
// next diff sees a pristine back buffer.
func (c *Compositor) Frame(now time.Time) error {
	if cols, rows, changed := c.Backend.CheckResize(); changed {
		c.vb.Resize(cols, rows)
		c.WM.Width, c.WM.Height = cols, rows
		if c.log != nil {
			c.log.Info("resized to %dx%d", cols, rows)
		}
	}

	c.vb.Clear(cellbuf.DefaultCell)

	for _, w := range c.WM.Windows {
		if w.Frame.IsMinimized {
			continue
		}
		w.Render(c.vb, c.Theme)
	}

	for _, m := range c.Modals {
		if m.Active() {
			m.Render(c.vb)
		}
	}

	c.Toasts.DismissIfOlderThan(ToastDismissThreshold, now)

	if err := c.Backend.Present(c.vb); err != nil {
		if c.log != nil {
			c.log.Error("present failed: %v", err)
		}
		return err
	}

	c.Backend.UpdateCursor()
	c.Backend.DrawCursor()
	c.Backend.RestoreCursorArea()
	return nil
}

// Log forwards to the underlying term39log.Logger at Info level; a nil
// logger makes this (and the leveled variants below) a no-op.
func (c *Compositor) Log(format string, args ...any) { c.LogInfo(format, args...) }

func (c *Compositor) LogInfo(format string, args ...any) {
	if c.log != nil {
		c.log.Info(format, args...)
	}
}

func (c *Compositor) LogWarn(format string, args ...any) {
	if c.log != nil {
		c.log.Warn(format, args...)
	}
}

func (c *Compositor) LogError(format string, args ...any) {
	if c.log != nil {
		c.log.Error(format, args...)
	}
}
