package grid

import (
	"testing"

	"github.com/alejandroqh/term39/internal/cellbuf"
)

func TestSGRResetRevertsDefaults(t *testing.T) {
	g := New(10, 5, 100)
	g.SetPen(Pen{Fg: cellbuf.RGBColor(1, 2, 3), Bg: cellbuf.RGBColor(4, 5, 6), Attrs: cellbuf.Attrs{Bold: true}})
	g.ResetPen()
	p := g.Pen()
	if p.Fg != cellbuf.DefaultFG {
		t.Fatalf("expected default fg after reset, got %+v", p.Fg)
	}
	if p.Bg != cellbuf.DefaultBG {
		t.Fatalf("expected default bg after reset, got %+v", p.Bg)
	}
	if !p.Attrs.IsZero() {
		t.Fatalf("expected all attrs cleared, got %+v", p.Attrs)
	}
}

func TestDoubleWidthOccupiesTwoCellsOrDrops(t *testing.T) {
	g := New(4, 2, 0)
	before := g.Cursor()
	g.PutChar('界') // CJK, width 2
	after := g.Cursor()
	if after.X-before.X != 2 && after != before {
		t.Fatalf("expected either advance by 2 or no state change, got before=%+v after=%+v", before, after)
	}
}

func TestSynchronizedOutputSnapshotStable(t *testing.T) {
	g := New(5, 3, 0)
	g.PutChar('A')
	g.BeginSynchronizedOutput()
	snapCell := g.GetRenderCell(0, 0)
	snapCursor := g.GetRenderCursor()

	// Mutate the live grid while synchronized output is active.
	g.PutChar('B')
	g.CarriageReturn()
	g.Linefeed()

	for i := 0; i < 5; i++ {
		if got := g.GetRenderCell(0, 0); got != snapCell {
			t.Fatalf("iteration %d: render cell changed during sync: got %+v want %+v", i, got, snapCell)
		}
		if got := g.GetRenderCursor(); got != snapCursor {
			t.Fatalf("iteration %d: render cursor changed during sync: got %+v want %+v", i, got, snapCursor)
		}
	}

	g.EndSynchronizedOutput()
	if g.sync != nil {
		t.Fatal("expected snapshot cleared after EndSynchronizedOutput")
	}
}

func TestScrollUpAltScreenScrollbackUnchanged(t *testing.T) {
	g := New(4, 3, 100)
	for i := 0; i < 10; i++ {
		g.Linefeed()
	}
	before := g.ScrollbackLen()

	g.UseAltScreen()
	for i := 0; i < 10; i++ {
		g.ScrollUp(1)
	}
	if got := g.ScrollbackLen(); got != before {
		t.Fatalf("expected scrollback length unchanged during alt screen, got %d want %d", got, before)
	}
	g.UseMainScreen()
}

func TestAltScreenRoundTrip(t *testing.T) {
	g := New(5, 3, 0)
	g.PutChar('X')
	cursorBefore := g.Cursor()
	cellBefore := g.GetRenderCell(0, 0)

	g.UseAltScreen()
	g.PutChar('Z')
	g.UseMainScreen()

	if got := g.Cursor(); got != cursorBefore {
		t.Fatalf("expected cursor restored exactly, got %+v want %+v", got, cursorBefore)
	}
	if got := g.GetRenderCell(0, 0); got != cellBefore {
		t.Fatalf("expected main screen contents restored exactly, got %+v want %+v", got, cellBefore)
	}
}

func TestSaveRestoreCursorExact(t *testing.T) {
	g := New(10, 5, 0)
	g.GotoOriginAware(2, 3)
	g.SetPen(Pen{Fg: cellbuf.RGBColor(9, 9, 9), Bg: cellbuf.RGBColor(1, 1, 1), Attrs: cellbuf.Attrs{Italic: true}})
	g.SaveCursor()

	g.GotoOriginAware(0, 0)
	g.ResetPen()

	g.RestoreCursor()
	if g.Cursor().X != 3 || g.Cursor().Y != 2 {
		t.Fatalf("expected cursor restored to (3,2), got %+v", g.Cursor())
	}
	if g.Pen().Attrs.Italic != true {
		t.Fatalf("expected SGR state restored, got %+v", g.Pen())
	}
}

func TestCursorClampOnShrinkResize(t *testing.T) {
	g := New(10, 5, 0)
	g.GotoOriginAware(4, 9)
	g.Resize(5, 3)
	cols, rows := g.Dimensions()
	cur := g.Cursor()
	if cur.X < 0 || cur.X >= cols || cur.Y < 0 || cur.Y >= rows {
		t.Fatalf("cursor escaped grid after shrink-resize: %+v in %dx%d", cur, cols, rows)
	}
}

func TestAutoWrapAtCornerNeverScrolls(t *testing.T) {
	g := New(3, 2, 0)
	g.GotoOriginAware(1, 2) // last row, last col
	before := g.ScrollbackLen()
	g.PutChar('a')
	g.PutChar('b')
	if g.ScrollbackLen() != before {
		t.Fatalf("drawing at bottom-right corner must never scroll, scrollback grew from %d to %d", before, g.ScrollbackLen())
	}
}
