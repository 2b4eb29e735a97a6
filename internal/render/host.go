package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/alejandroqh/term39/internal/cellbuf"
)

// Host is the host-terminal Rendering Backend: an ANSI writer over the
// process's own stdout, raw-moded the way the teacher's raw_reader.go
// sets up its TTY, with no native pointer device of its own.
type Host struct {
	out  *bufio.Writer
	fd   int
	orig *term.State

	cols, rows int

	cursorCol, cursorRow int
	cursorSet            bool
}

// NewHost wraps w (typically os.Stdout) as a Host backend and puts fd's
// terminal into raw mode, stashing the prior state for Close to restore.
func NewHost(w io.Writer, fd int) (*Host, error) {
	orig, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("render: make raw: %w", err)
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		term.Restore(fd, orig)
		return nil, fmt.Errorf("render: get size: %w", err)
	}
	return &Host{
		out:  bufio.NewWriter(w),
		fd:   fd,
		orig: orig,
		cols: cols,
		rows: rows,
	}, nil
}

func (h *Host) Write(p []byte) (int, error) { return h.out.Write(p) }

func (h *Host) MoveCursor(x, y int) error {
	_, err := fmt.Fprintf(h.out, "\x1b[%d;%dH", y+1, x+1)
	return err
}

func (h *Host) SetForeground(c cellbuf.Color) error { return h.setColor(c, true) }
func (h *Host) SetBackground(c cellbuf.Color) error { return h.setColor(c, false) }

func (h *Host) setColor(c cellbuf.Color, fg bool) error {
	base := 30
	if !fg {
		base = 40
	}
	var seq string
	switch c.Kind {
	case cellbuf.ColorDefault:
		seq = fmt.Sprintf("\x1b[%dm", base+9)
	case cellbuf.ColorNamed:
		idx := int(c.Index)
		if idx < 8 {
			seq = fmt.Sprintf("\x1b[%dm", base+idx)
		} else {
			seq = fmt.Sprintf("\x1b[%dm", base+60+(idx-8))
		}
	case cellbuf.ColorIndexed:
		seq = fmt.Sprintf("\x1b[%d;5;%dm", base+8, c.Index)
	case cellbuf.ColorRGB:
		seq = fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", base+8, c.R, c.G, c.B)
	}
	_, err := h.out.WriteString(seq)
	return err
}

func (h *Host) SetAttrs(a cellbuf.Attrs) error {
	_, err := h.out.WriteString("\x1b[0m")
	if err != nil {
		return err
	}
	write := func(code int) error {
		_, err := fmt.Fprintf(h.out, "\x1b[%dm", code)
		return err
	}
	if a.Bold {
		if err := write(1); err != nil {
			return err
		}
	}
	if a.Dim {
		if err := write(2); err != nil {
			return err
		}
	}
	if a.Italic {
		if err := write(3); err != nil {
			return err
		}
	}
	if a.Underline {
		if err := write(4); err != nil {
			return err
		}
	}
	if a.Blink {
		if err := write(5); err != nil {
			return err
		}
	}
	if a.Reverse {
		if err := write(7); err != nil {
			return err
		}
	}
	if a.Hidden {
		if err := write(8); err != nil {
			return err
		}
	}
	if a.Strikethrough {
		if err := write(9); err != nil {
			return err
		}
	}
	return nil
}

// Present diffs vb and flushes the result in one syscall-minimizing
// write, the way a terminal backend should: cellbuf.VideoBuffer.Present
// already elides redundant color commands across the whole frame.
func (h *Host) Present(vb *cellbuf.VideoBuffer) error {
	if _, err := vb.Present(h); err != nil {
		return err
	}
	return h.out.Flush()
}

func (h *Host) Dimensions() (cols, rows int) { return h.cols, h.rows }

// CheckResize re-queries the TTY size; callers poll this once per frame.
func (h *Host) CheckResize() (cols, rows int, changed bool) {
	cols, rows, err := term.GetSize(h.fd)
	if err != nil {
		return h.cols, h.rows, false
	}
	if cols == h.cols && rows == h.rows {
		return cols, rows, false
	}
	h.cols, h.rows = cols, rows
	return cols, rows, true
}

// ScaleMouseCoords is the identity transform for the host backend: the
// terminal already reports mouse positions in character cells.
func (h *Host) ScaleMouseCoords(col, row int) (int, int) { return col, row }

// HasNativeMouseInput is always false: the host backend relies on the
// terminal's own mouse-reporting escape sequences, surfaced through the
// Input Pipeline rather than polled here.
func (h *Host) HasNativeMouseInput() bool { return false }

func (h *Host) GetMouseButtonEvent() (MouseButtonEvent, bool) { return MouseButtonEvent{}, false }
func (h *Host) GetMouseScrollEvent() (MouseScrollEvent, bool) { return MouseScrollEvent{}, false }

func (h *Host) SetTTYCursor(col, row int) {
	h.cursorCol, h.cursorRow = col, row
	h.cursorSet = true
}

func (h *Host) ClearTTYCursor() { h.cursorSet = false }

// UpdateCursor, DrawCursor and RestoreCursorArea are no-ops on the host
// backend: the terminal's own hardware cursor (positioned by the final
// MoveCursor of Present) already does this job, so there is no sprite to
// draw or pixels to restore.
func (h *Host) UpdateCursor()      {}
func (h *Host) DrawCursor()        {}
func (h *Host) RestoreCursorArea() {}

// Close restores the TTY's original terminal mode.
func (h *Host) Close() error {
	if h.orig == nil {
		return nil
	}
	return term.Restore(h.fd, h.orig)
}

// DefaultHost wraps os.Stdout using os.Stdin's fd for raw-mode control,
// matching the teacher's dev/tty-based raw reader's choice of fd.
func DefaultHost() (*Host, error) {
	return NewHost(os.Stdout, int(os.Stdin.Fd()))
}
