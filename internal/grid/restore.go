package grid

import "github.com/alejandroqh/term39/internal/cellbuf"

// ExtractLines walks scrollback oldest-first then the visible screen
// top-down, the order session snapshot and restore both rely on.
func (g *Grid) ExtractLines() [][]cellbuf.Cell {
	out := make([][]cellbuf.Cell, 0, g.scrollback.Len()+g.rows)
	for i := 0; i < g.scrollback.Len(); i++ {
		out = append(out, g.scrollback.Line(i))
	}
	out = append(out, g.screen...)
	return out
}

// RestoreContent reconstructs scrollback + visible-screen split from a flat
// oldest-first line list, re-padding rows to the grid's current width.
// Never fails: mismatched dimensions are handled by truncation/padding.
func (g *Grid) RestoreContent(lines [][]cellbuf.Cell, cursor cellbuf.Cursor) {
	visibleStart := len(lines) - g.rows
	if visibleStart < 0 {
		visibleStart = 0
	}

	g.scrollback.Clear()
	for i := 0; i < visibleStart; i++ {
		g.scrollback.PushLine(fitRow(lines[i], g.cols))
	}

	for y := 0; y < g.rows; y++ {
		idx := visibleStart + y
		if idx < len(lines) {
			g.screen[y] = fitRow(lines[idx], g.cols)
		} else {
			g.screen[y] = g.blankRow()
		}
	}

	g.cursor = cursor
	g.cursor.Clamp(g.cols, g.rows)
}

func fitRow(row []cellbuf.Cell, cols int) []cellbuf.Cell {
	out := make([]cellbuf.Cell, cols)
	for i := range out {
		out[i] = cellbuf.DefaultCell
	}
	n := len(row)
	if n > cols {
		n = cols
	}
	copy(out[:n], row[:n])
	return out
}
