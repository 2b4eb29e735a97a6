//go:build !linux

package render

import (
	"fmt"

	"github.com/alejandroqh/term39/internal/cellbuf"
)

// TextMode is a named {cols, rows, cell geometry}, mirrored here so
// callers can reference the type on any platform.
type TextMode struct {
	Name         string
	Cols, Rows   int
	CellW, CellH int
}

// TextModes is empty on non-Linux platforms: the framebuffer backend
// itself is unsupported here.
var TextModes = map[string]TextMode{}

// Framebuffer is never constructed on non-Linux platforms.
type Framebuffer struct{}

// OpenFramebuffer always fails on non-Linux platforms.
func OpenFramebuffer(path string, mode TextMode, pixelScale int, fontName string) (*Framebuffer, error) {
	return nil, fmt.Errorf("render: framebuffer backend is Linux-only")
}

func (fb *Framebuffer) Present(vb *cellbuf.VideoBuffer) error { return fmt.Errorf("render: unsupported") }
func (fb *Framebuffer) Dimensions() (cols, rows int)          { return 0, 0 }
func (fb *Framebuffer) CheckResize() (cols, rows int, changed bool) { return 0, 0, false }
func (fb *Framebuffer) ScaleMouseCoords(x, y int) (int, int)  { return x, y }
func (fb *Framebuffer) HasNativeMouseInput() bool             { return false }
func (fb *Framebuffer) GetMouseButtonEvent() (MouseButtonEvent, bool) { return MouseButtonEvent{}, false }
func (fb *Framebuffer) GetMouseScrollEvent() (MouseScrollEvent, bool) { return MouseScrollEvent{}, false }
func (fb *Framebuffer) SetTTYCursor(col, row int)             {}
func (fb *Framebuffer) ClearTTYCursor()                       {}
func (fb *Framebuffer) UpdateCursor()                         {}
func (fb *Framebuffer) DrawCursor()                           {}
func (fb *Framebuffer) RestoreCursorArea()                     {}
func (fb *Framebuffer) Close() error                          { return nil }
