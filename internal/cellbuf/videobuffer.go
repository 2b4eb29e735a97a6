package cellbuf

import "io"

// Writer is the minimal sink a VideoBuffer presents to: move the cursor,
// set colors, and print a rune. The host-terminal backend (render.Host)
// implements it; the framebuffer backend rasterizes cells itself and does
// not.
type Writer interface {
	io.Writer
	MoveCursor(x, y int) error
	SetForeground(c Color) error
	SetBackground(c Color) error
	SetAttrs(a Attrs) error
}

// VideoBuffer is a double-buffered grid of cells. All writes land in the
// back buffer; Present diffs back against front and emits only the cells
// that changed, then swaps.
type VideoBuffer struct {
	cols, rows  int
	front, back []Cell
}

// New allocates both matrices filled with DefaultCell. O(cols*rows).
func New(cols, rows int) *VideoBuffer {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	vb := &VideoBuffer{cols: cols, rows: rows}
	vb.front = make([]Cell, cols*rows)
	vb.back = make([]Cell, cols*rows)
	for i := range vb.front {
		vb.front[i] = DefaultCell
		vb.back[i] = DefaultCell
	}
	return vb
}

// Dimensions reports the buffer's column and row count.
func (vb *VideoBuffer) Dimensions() (cols, rows int) { return vb.cols, vb.rows }

func (vb *VideoBuffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= vb.cols || y >= vb.rows {
		return 0, false
	}
	return y*vb.cols + x, true
}

// Set writes a cell into the back buffer. Out-of-bounds writes are
// silently ignored: callers (shadow overlays, windows near an edge) may
// over-draw past the visible area.
func (vb *VideoBuffer) Set(x, y int, c Cell) {
	if i, ok := vb.index(x, y); ok {
		vb.back[i] = c
	}
}

// GetFront reads the cell currently on screen.
func (vb *VideoBuffer) GetFront(x, y int) (Cell, bool) {
	i, ok := vb.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return vb.front[i], true
}

// GetBack reads the cell queued for the next Present.
func (vb *VideoBuffer) GetBack(x, y int) (Cell, bool) {
	i, ok := vb.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return vb.back[i], true
}

// Clear fills the back buffer with c.
func (vb *VideoBuffer) Clear(c Cell) {
	for i := range vb.back {
		vb.back[i] = c
	}
}

// Resize discards both buffers and reallocates at the new dimensions.
func (vb *VideoBuffer) Resize(cols, rows int) {
	*vb = *New(cols, rows)
}

// Present diffs back against front; for every changed cell it elides
// redundant color commands by tracking the last-emitted fg/bg across the
// whole pass, then swaps the buffers. A clean frame (no changed cells)
// emits nothing to w. Returns the number of cells written, mostly useful
// for tests asserting the "no bytes on a clean frame" invariant.
func (vb *VideoBuffer) Present(w Writer) (int, error) {
	var lastFg, lastBg Color
	haveLast := false
	written := 0

	for y := 0; y < vb.rows; y++ {
		for x := 0; x < vb.cols; x++ {
			i := y*vb.cols + x
			back := vb.back[i]
			if back == vb.front[i] {
				continue
			}

			if !haveLast || back.Fg != lastFg {
				if err := w.SetForeground(back.Fg); err != nil {
					return written, err
				}
				lastFg = back.Fg
			}
			if !haveLast || back.Bg != lastBg {
				if err := w.SetBackground(back.Bg); err != nil {
					return written, err
				}
				lastBg = back.Bg
			}
			haveLast = true

			if err := w.SetAttrs(back.Attrs); err != nil {
				return written, err
			}
			if err := w.MoveCursor(x, y); err != nil {
				return written, err
			}
			if _, err := w.Write([]byte(string(back.Char))); err != nil {
				return written, err
			}
			written++
		}
	}

	vb.front, vb.back = vb.back, vb.front
	copy(vb.back, vb.front)
	return written, nil
}

// SaveRegion copies a rectangle out of the back buffer, e.g. for an overlay
// that must later restore what it covered.
func (vb *VideoBuffer) SaveRegion(x, y, w, h int) []Cell {
	saved := make([]Cell, 0, w*h)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if c, ok := vb.GetBack(x+dx, y+dy); ok {
				saved = append(saved, c)
			} else {
				saved = append(saved, DefaultCell)
			}
		}
	}
	return saved
}

// RestoreRegion pastes a previously saved rectangle back into the back
// buffer.
func (vb *VideoBuffer) RestoreRegion(x, y, w, h int, saved []Cell) {
	idx := 0
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if idx >= len(saved) {
				return
			}
			vb.Set(x+dx, y+dy, saved[idx])
			idx++
		}
	}
}
