// Package cellbuf implements the character-cell video buffer: the double
// buffered grid of cells that every rendering backend diffs against.
package cellbuf

// ColorKind identifies which of the three color representations a Color
// value carries.
type ColorKind uint8

const (
	// ColorDefault means "use the backend's default fg/bg", e.g. after SGR 0.
	ColorDefault ColorKind = iota
	// ColorNamed is one of the 16 palette entries (0-15).
	ColorNamed
	// ColorIndexed is a 256-color palette index.
	ColorIndexed
	// ColorRGB is a 24-bit truecolor value.
	ColorRGB
)

// Color is a POD, copy-cheap, equality-comparable color value that can
// represent any of the three wire formats a terminal SGR sequence can set.
type Color struct {
	Kind    ColorKind
	Index   uint8 // valid when Kind is ColorNamed or ColorIndexed
	R, G, B uint8 // valid when Kind is ColorRGB
}

// DefaultFG is the bright-green phosphor default foreground.
var DefaultFG = Color{Kind: ColorRGB, R: 0x33, G: 0xff, B: 0x66}

// DefaultBG is the default background: black.
var DefaultBG = Color{Kind: ColorNamed, Index: 0}

// NamedColor builds a Color from one of the 16 named palette slots.
func NamedColor(idx uint8) Color { return Color{Kind: ColorNamed, Index: idx} }

// IndexedColor builds a Color from a 256-color palette index.
func IndexedColor(idx uint8) Color { return Color{Kind: ColorIndexed, Index: idx} }

// RGBColor builds a 24-bit truecolor Color.
func RGBColor(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// Attrs holds the SGR boolean flags for a cell.
type Attrs struct {
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Hidden        bool
	Strikethrough bool
}

// IsZero reports whether no attribute flag is set.
func (a Attrs) IsZero() bool { return a == Attrs{} }

// Cell is one character-grid position: a code point plus its colors. Cells
// are POD, cheap to copy, and comparable with ==.
type Cell struct {
	Char  rune
	Fg    Color
	Bg    Color
	Attrs Attrs
	// Width is the display width of Char: 1 for normal cells, 2 for the
	// leading cell of a double-width character, 0 for the trailing
	// continuation cell of one.
	Width int
}

// DefaultCell is the zero-value-ish blank cell new buffers are filled with.
var DefaultCell = Cell{Char: ' ', Fg: DefaultFG, Bg: DefaultBG, Width: 1}

// CursorShape enumerates the three supported cursor renderings.
type CursorShape uint8

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// Cursor tracks the caret position, visibility and shape. Invariant:
// 0 <= X < cols, 0 <= Y < rows at all times; callers must clamp on resize.
type Cursor struct {
	X, Y    int
	Visible bool
	Shape   CursorShape
}

// Clamp confines the cursor to a cols x rows grid, the invariant every
// resize must restore.
func (c *Cursor) Clamp(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		c.X, c.Y = 0, 0
		return
	}
	if c.X < 0 {
		c.X = 0
	} else if c.X >= cols {
		c.X = cols - 1
	}
	if c.Y < 0 {
		c.Y = 0
	} else if c.Y >= rows {
		c.Y = rows - 1
	}
}
