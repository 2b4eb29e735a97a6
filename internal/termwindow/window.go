package termwindow

import (
	"strings"

	"github.com/alejandroqh/term39/internal/cellbuf"
	"github.com/alejandroqh/term39/internal/term"
)

// CloseConfirmState tracks the per-window "are you sure?" prompt raised
// when a window with a live child process is closed.
type CloseConfirmState int

const (
	CloseConfirmNone CloseConfirmState = iota
	CloseConfirmPending
)

// Window pairs a Frame with a Terminal Emulator: the Terminal Window of
// the spec, owning the scrollback viewport, selection state and
// close-confirmation prompt.
type Window struct {
	Frame    Frame
	Emulator *term.Emulator

	// ScrollOffset is 0 when following live output, or the number of lines
	// scrolled back from the bottom otherwise.
	ScrollOffset int

	Selection Selection

	CloseConfirm CloseConfirmState
}

// New creates a Terminal Window by spawning a Terminal Emulator sized to
// the frame's content area.
func New(id, x, y, w, h int, title string, maxScrollback int, command []string, shellConfig term.ShellConfig) (*Window, error) {
	f := Frame{ID: id, X: x, Y: y, W: w, H: h, Title: title}
	f.Clamp()
	cw, ch := f.ContentSize()
	e, err := term.New(cw, ch, maxScrollback, command, shellConfig)
	if err != nil {
		return nil, err
	}
	return &Window{Frame: f, Emulator: e}, nil
}

// ProcessOutput drains and parses pending PTY output. Returns false once
// the child has exited, signaling the Window Manager to close the window.
func (w *Window) ProcessOutput() bool { return w.Emulator.ProcessOutput() }

// SendStr forwards a string to the PTY.
func (w *Window) SendStr(s string) error { return w.Emulator.WriteInput([]byte(s)) }

// SendChar forwards a single rune to the PTY.
func (w *Window) SendChar(r rune) error { return w.Emulator.WriteInput([]byte(string(r))) }

// SendPaste delegates to the emulator's bracketed-paste-aware paste path.
func (w *Window) SendPaste(s string) error { return w.Emulator.Paste([]byte(s)) }

// Resize clamps to the minimum frame size and resizes the emulator's grid
// to match the new content area.
func (w *Window) Resize(newW, newH int) {
	w.Frame.W, w.Frame.H = newW, newH
	w.Frame.Clamp()
	cw, ch := w.Frame.ContentSize()
	w.Emulator.Resize(cw, ch)
}

// IsInCloseButton, IsInTitleBar, IsInResizeHandle, IsInContentArea proxy to
// the frame for convenience at call sites that only hold a *Window.
func (w *Window) IsInCloseButton(x, y int) bool    { return w.Frame.IsInCloseButton(x, y) }
func (w *Window) IsInMaximizeButton(x, y int) bool { return w.Frame.IsInMaximizeButton(x, y) }
func (w *Window) IsInMinimizeButton(x, y int) bool { return w.Frame.IsInMinimizeButton(x, y) }
func (w *Window) IsInTitleBar(x, y int) bool       { return w.Frame.IsInTitleBar(x, y) }
func (w *Window) IsInResizeHandle(x, y int) bool   { return w.Frame.IsInResizeHandle(x, y) }
func (w *Window) IsInContentArea(x, y int) bool    { return w.Frame.IsInContentArea(x, y) }

// totalLines is the logical line count backing the viewport: scrollback
// rows followed by the live screen's rows.
func (w *Window) totalLines() int {
	g := w.Emulator.Grid()
	_, rows := g.Dimensions()
	return g.ScrollbackLen() + rows
}

// lineAt returns the cell row for logical line index i (0 = oldest
// scrollback row, totalLines()-1 = the grid's last visible row).
func (w *Window) lineAt(i int) []cellbuf.Cell {
	g := w.Emulator.Grid()
	sbLen := g.ScrollbackLen()
	if i < sbLen {
		return g.ScrollbackLine(i)
	}
	return g.ScreenRow(i - sbLen)
}

// MaxScrollOffset is the largest valid ScrollOffset: enough to scroll the
// oldest retained line into view.
func (w *Window) MaxScrollOffset() int {
	_, rows := w.Emulator.Grid().Dimensions()
	max := w.totalLines() - rows
	if max < 0 {
		max = 0
	}
	return max
}

// ScrollBy adjusts ScrollOffset by delta, clamped to [0, MaxScrollOffset()].
func (w *Window) ScrollBy(delta int) {
	w.ScrollOffset += delta
	if w.ScrollOffset < 0 {
		w.ScrollOffset = 0
	}
	if max := w.MaxScrollOffset(); w.ScrollOffset > max {
		w.ScrollOffset = max
	}
}

// Render draws the frame chrome and the scrollback viewport into vb,
// inverting the cursor cell when it should be visible.
func (w *Window) Render(vb *cellbuf.VideoBuffer, theme Theme) {
	w.renderChrome(vb, theme)
	w.renderViewport(vb, theme)
	w.renderScrollbar(vb, theme)
}

func (w *Window) renderChrome(vb *cellbuf.VideoBuffer, theme Theme) {
	f := &w.Frame
	fg, bg := theme.BorderFG, theme.BorderBG
	if f.IsFocused {
		fg = theme.FocusedBorderFG
	}

	// Title bar.
	for x := f.X; x < f.X+f.W; x++ {
		vb.Set(x, f.Y, cellbuf.Cell{Char: ' ', Fg: fg, Bg: bg, Width: 1})
	}
	vb.Set(f.X+1, f.Y, cellbuf.Cell{Char: 'x', Fg: fg, Bg: bg, Width: 1})
	vb.Set(f.X+3, f.Y, cellbuf.Cell{Char: '▢', Fg: fg, Bg: bg, Width: 1})
	vb.Set(f.X+5, f.Y, cellbuf.Cell{Char: '_', Fg: fg, Bg: bg, Width: 1})
	title := f.Title
	maxTitle := f.W - titleBarButtonZoneWidth - 1
	if maxTitle > 0 {
		if len(title) > maxTitle {
			title = title[:maxTitle]
		}
		for i, r := range title {
			vb.Set(f.X+titleBarButtonZoneWidth+i, f.Y, cellbuf.Cell{Char: r, Fg: fg, Bg: bg, Width: 1})
		}
	}

	// Side borders and bottom border (bottom border doubles as resize handle
	// row).
	for y := f.Y + 1; y < f.Y+f.H-1; y++ {
		vb.Set(f.X, y, cellbuf.Cell{Char: '│', Fg: fg, Bg: bg, Width: 1})
		vb.Set(f.X+f.W-1, y, cellbuf.Cell{Char: '│', Fg: fg, Bg: bg, Width: 1})
	}
	for x := f.X; x < f.X+f.W; x++ {
		vb.Set(x, f.Y+f.H-1, cellbuf.Cell{Char: '─', Fg: fg, Bg: bg, Width: 1})
	}
	vb.Set(f.X+f.W-1, f.Y+f.H-1, cellbuf.Cell{Char: '◢', Fg: fg, Bg: bg, Width: 1})
}

func (w *Window) renderViewport(vb *cellbuf.VideoBuffer, theme Theme) {
	f := &w.Frame
	cx, cy := f.ContentOrigin()
	cw, ch := f.ContentSize()
	g := w.Emulator.Grid()

	total := w.totalLines()
	// The viewport window into [scrollback ++ visible], ending ScrollOffset
	// lines before the bottom.
	end := total - w.ScrollOffset
	start := end - ch

	for row := 0; row < ch; row++ {
		lineIdx := start + row
		var src []cellbuf.Cell
		if lineIdx >= 0 && lineIdx < total {
			src = w.lineAt(lineIdx)
		}
		for col := 0; col < cw; col++ {
			var cell cellbuf.Cell
			if col < len(src) {
				cell = src[col]
			} else {
				cell = cellbuf.DefaultCell
			}
			vb.Set(cx+col, cy+row, cell)
		}
	}

	if w.ScrollOffset == 0 {
		cur := g.GetRenderCursor()
		if cur.Visible {
			if c, ok := vb.GetBack(cx+cur.X, cy+cur.Y); ok {
				inv := c
				inv.Fg, inv.Bg = c.Bg, c.Fg
				vb.Set(cx+cur.X, cy+cur.Y, inv)
			}
		}
	}
}

func (w *Window) renderScrollbar(vb *cellbuf.VideoBuffer, theme Theme) {
	if w.Emulator.Grid().ScrollbackLen() == 0 {
		return
	}
	f := &w.Frame
	cx, cy := f.ContentOrigin()
	cw, ch := f.ContentSize()
	trackX := cx + cw
	total := w.totalLines()
	if total <= ch {
		return
	}

	thumbSize := max(1, ch*ch/total)
	// Inverted: offset 0 (bottom / live) -> thumb at the bottom of the track.
	maxOffset := w.MaxScrollOffset()
	var thumbTop int
	if maxOffset > 0 {
		thumbTop = (maxOffset - w.ScrollOffset) * (ch - thumbSize) / maxOffset
	}

	for row := 0; row < ch; row++ {
		ch2 := '│'
		if row >= thumbTop && row < thumbTop+thumbSize {
			ch2 = '█'
		}
		vb.Set(trackX, cy+row, cellbuf.Cell{Char: ch2, Fg: theme.BorderFG, Bg: theme.BorderBG, Width: 1})
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IsPointOnScrollbar reports whether (x, y) is on the scrollbar track.
func (w *Window) IsPointOnScrollbar(x, y int) bool {
	if w.Emulator.Grid().ScrollbackLen() == 0 {
		return false
	}
	cx, cy := w.Frame.ContentOrigin()
	cw, ch := w.Frame.ContentSize()
	return x == cx+cw && y >= cy && y < cy+ch
}

// IsPointOnScrollbarThumb reports whether (x, y) is on the thumb itself.
func (w *Window) IsPointOnScrollbarThumb(x, y int) bool {
	if !w.IsPointOnScrollbar(x, y) {
		return false
	}
	_, ch := w.Frame.ContentSize()
	_, cy := w.Frame.ContentOrigin()
	total := w.totalLines()
	thumbSize := max(1, ch*ch/total)
	maxOffset := w.MaxScrollOffset()
	var thumbTop int
	if maxOffset > 0 {
		thumbTop = (maxOffset - w.ScrollOffset) * (ch - thumbSize) / maxOffset
	}
	row := y - cy
	return row >= thumbTop && row < thumbTop+thumbSize
}

// ScrollToPosition maps a click at row y (absolute screen coordinate) on
// the scrollbar track to a new ScrollOffset, via the same inverted ratio
// the thumb render uses.
func (w *Window) ScrollToPosition(y int) {
	_, cy := w.Frame.ContentOrigin()
	_, ch := w.Frame.ContentSize()
	row := y - cy
	if row < 0 {
		row = 0
	}
	if row >= ch {
		row = ch - 1
	}
	maxOffset := w.MaxScrollOffset()
	if ch <= 1 {
		w.ScrollOffset = maxOffset
		return
	}
	w.ScrollOffset = maxOffset - row*maxOffset/(ch-1)
	if w.ScrollOffset < 0 {
		w.ScrollOffset = 0
	}
	if w.ScrollOffset > maxOffset {
		w.ScrollOffset = maxOffset
	}
}

// GetSelectedText linearizes the selection rectangle across
// scrollback+visible into a string, trimming trailing spaces per line.
func (w *Window) GetSelectedText() string {
	if !w.Selection.Active {
		return ""
	}
	y1, _, y2, _ := w.Selection.ordered()
	var b strings.Builder
	for y := y1; y <= y2; y++ {
		line := w.lineAt(y)
		var lb strings.Builder
		for x, c := range line {
			if w.Selection.Contains(x, y) && c.Width != 0 {
				if c.Char == 0 {
					continue
				}
				lb.WriteRune(c.Char)
			}
		}
		b.WriteString(strings.TrimRight(lb.String(), " "))
		if y != y2 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ClearSelection clears any in-progress or completed selection, as a copy
// operation does.
func (w *Window) ClearSelection() { w.Selection.Clear() }

// Close tears down the underlying emulator (PTY + child).
func (w *Window) Close() error { return w.Emulator.Close() }

// Theme is the minimal color contract the Window Manager's configured
// theme must satisfy to render window chrome; the concrete theme
// definitions live outside the compositing core (see spec.md §1 scope).
type Theme struct {
	BorderFG        cellbuf.Color
	BorderBG        cellbuf.Color
	FocusedBorderFG cellbuf.Color
}
