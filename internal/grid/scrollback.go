package grid

import "github.com/alejandroqh/term39/internal/cellbuf"

// Scrollback is a ring buffer of fully-formed rows that have scrolled off
// the top of the screen, holding at most maxLines rows. Insertion is O(1);
// eviction of the oldest line happens implicitly once the ring is full.
type Scrollback struct {
	lines    [][]cellbuf.Cell
	maxLines int
	head     int // index of the oldest line
	tail     int // index the next PushLine will write to
	full     bool
}

// NewScrollback allocates a ring buffer holding at most maxLines rows. A
// non-positive maxLines means "no scrollback" (the ring holds zero rows).
func NewScrollback(maxLines int) *Scrollback {
	if maxLines < 0 {
		maxLines = 0
	}
	sb := &Scrollback{maxLines: maxLines}
	if maxLines > 0 {
		sb.lines = make([][]cellbuf.Cell, maxLines)
	}
	return sb
}

// PushLine appends row to the buffer, evicting the oldest row first if the
// ring is already at capacity.
func (sb *Scrollback) PushLine(row []cellbuf.Cell) {
	if sb.maxLines == 0 {
		return
	}
	line := make([]cellbuf.Cell, len(row))
	copy(line, row)

	sb.lines[sb.tail] = line
	sb.tail = (sb.tail + 1) % sb.maxLines
	if sb.full {
		sb.head = (sb.head + 1) % sb.maxLines
	}
	if sb.tail == sb.head {
		sb.full = true
	}
}

// Len reports how many rows are currently retained.
func (sb *Scrollback) Len() int {
	if sb.maxLines == 0 {
		return 0
	}
	if sb.full {
		return sb.maxLines
	}
	if sb.tail >= sb.head {
		return sb.tail - sb.head
	}
	return sb.maxLines - sb.head + sb.tail
}

// Line returns the row at index, where 0 is the oldest retained row and
// Len()-1 is the most recently scrolled-off row. Returns nil out of range.
func (sb *Scrollback) Line(index int) []cellbuf.Cell {
	if index < 0 || index >= sb.Len() {
		return nil
	}
	return sb.lines[(sb.head+index)%sb.maxLines]
}

// Clear empties the buffer without changing its capacity.
func (sb *Scrollback) Clear() {
	sb.head, sb.tail, sb.full = 0, 0, false
}

// MaxLines reports the ring's capacity.
func (sb *Scrollback) MaxLines() int { return sb.maxLines }

// SetMaxLines resizes the ring, keeping the most recent min(Len(), n) rows.
func (sb *Scrollback) SetMaxLines(n int) {
	if n < 0 {
		n = 0
	}
	kept := sb.Len()
	if kept > n {
		kept = n
	}
	newLines := make([][]cellbuf.Cell, n)
	for i := 0; i < kept; i++ {
		// Keep the most recent `kept` rows, oldest-first.
		newLines[i] = sb.Line(sb.Len() - kept + i)
	}
	sb.lines = newLines
	sb.maxLines = n
	sb.head = 0
	sb.tail = kept % max(n, 1)
	sb.full = n > 0 && kept == n
}
