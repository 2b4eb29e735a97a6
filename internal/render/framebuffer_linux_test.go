//go:build linux

package render

import (
	"testing"

	"github.com/alejandroqh/term39/internal/cellbuf"
)

func TestMaxIntegerScaleFitsScreen(t *testing.T) {
	mode := TextMode{Cols: 80, Rows: 25, CellW: 8, CellH: 16}
	s := maxIntegerScale(mode, 1920, 1080)
	if s < 1 {
		t.Fatalf("expected scale >= 1, got %d", s)
	}
	if mode.Cols*mode.CellW*s > 1920 || mode.Rows*mode.CellH*s > 1080 {
		t.Fatalf("scale %d overflows the screen", s)
	}
	if mode.Cols*mode.CellW*(s+1) <= 1920 && mode.Rows*mode.CellH*(s+1) <= 1080 {
		t.Fatalf("scale %d is not maximal", s)
	}
}

func TestMaxIntegerScaleClampsToOne(t *testing.T) {
	mode := TextMode{Cols: 200, Rows: 60, CellW: 8, CellH: 16}
	if s := maxIntegerScale(mode, 320, 240); s != 1 {
		t.Fatalf("expected clamp to 1 for an oversized mode, got %d", s)
	}
}

func TestColorToRGBNamed(t *testing.T) {
	c := colorToRGB(cellbuf.NamedColor(0))
	if c != [3]uint8{0, 0, 0} {
		t.Fatalf("expected named color 0 to be black, got %v", c)
	}
}
