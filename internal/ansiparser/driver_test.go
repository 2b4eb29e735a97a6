package ansiparser

import (
	"testing"

	"github.com/alejandroqh/term39/internal/cellbuf"
	"github.com/alejandroqh/term39/internal/grid"
)

func TestPrintWritesCell(t *testing.T) {
	g := grid.New(10, 5, 0)
	d := New(g)
	d.Feed([]byte("hi"))
	if got := g.GetRenderCell(0, 0).Char; got != 'h' {
		t.Fatalf("expected 'h', got %q", got)
	}
	if got := g.GetRenderCell(1, 0).Char; got != 'i' {
		t.Fatalf("expected 'i', got %q", got)
	}
}

func TestCursorPositioningCUP(t *testing.T) {
	g := grid.New(10, 5, 0)
	d := New(g)
	d.Feed([]byte("\x1b[3;4H"))
	cur := g.Cursor()
	if cur.Y != 2 || cur.X != 3 {
		t.Fatalf("expected cursor at (3,2), got %+v", cur)
	}
}

func TestCursorUpDownForwardBack(t *testing.T) {
	g := grid.New(10, 5, 0)
	d := New(g)
	d.Feed([]byte("\x1b[3;3H\x1b[1A\x1b[2C"))
	cur := g.Cursor()
	if cur.Y != 1 || cur.X != 4 {
		t.Fatalf("expected (4,1), got %+v", cur)
	}
}

func TestSGRTrueColorAndReset(t *testing.T) {
	g := grid.New(10, 5, 0)
	d := New(g)
	d.Feed([]byte("\x1b[38;2;10;20;30mX"))
	cell := g.GetRenderCell(0, 0)
	want := cellbuf.RGBColor(10, 20, 30)
	if cell.Fg != want {
		t.Fatalf("expected fg %+v, got %+v", want, cell.Fg)
	}
	d.Feed([]byte("\x1b[0mY"))
	cell = g.GetRenderCell(1, 0)
	if cell.Fg != cellbuf.DefaultFG {
		t.Fatalf("expected default fg after SGR 0, got %+v", cell.Fg)
	}
}

func TestSGRIndexedColorColonForm(t *testing.T) {
	g := grid.New(10, 5, 0)
	d := New(g)
	d.Feed([]byte("\x1b[38:5:196mX"))
	cell := g.GetRenderCell(0, 0)
	if cell.Fg != cellbuf.IndexedColor(196) {
		t.Fatalf("expected indexed color 196, got %+v", cell.Fg)
	}
}

func TestSGRBoldAndClear(t *testing.T) {
	g := grid.New(10, 5, 0)
	d := New(g)
	d.Feed([]byte("\x1b[1mX\x1b[22mY"))
	if !g.GetRenderCell(0, 0).Attrs.Bold {
		t.Fatal("expected bold set on first cell")
	}
	if g.GetRenderCell(1, 0).Attrs.Bold {
		t.Fatal("expected bold cleared by SGR 22 on second cell")
	}
}

func TestEraseInLine(t *testing.T) {
	g := grid.New(5, 2, 0)
	d := New(g)
	d.Feed([]byte("abcde\x1b[1;1H\x1b[2K"))
	for x := 0; x < 5; x++ {
		if g.GetRenderCell(x, 0).Char != ' ' {
			t.Fatalf("expected cell %d cleared, got %q", x, g.GetRenderCell(x, 0).Char)
		}
	}
}

func TestDECPrivateAltScreenRoundTrip(t *testing.T) {
	g := grid.New(5, 3, 0)
	d := New(g)
	d.Feed([]byte("X"))
	d.Feed([]byte("\x1b[?1049h"))
	d.Feed([]byte("Z"))
	d.Feed([]byte("\x1b[?1049l"))
	if got := g.GetRenderCell(0, 0).Char; got != 'X' {
		t.Fatalf("expected main screen content 'X' restored, got %q", got)
	}
}

func TestDECPrivateBracketedPasteMode(t *testing.T) {
	g := grid.New(5, 3, 0)
	d := New(g)
	d.Feed([]byte("\x1b[?2004h"))
	if !g.Modes().BracketedPaste {
		t.Fatal("expected bracketed paste mode set")
	}
	d.Feed([]byte("\x1b[?2004l"))
	if g.Modes().BracketedPaste {
		t.Fatal("expected bracketed paste mode cleared")
	}
}

func TestSynchronizedOutputModeTogglesSnapshot(t *testing.T) {
	g := grid.New(5, 3, 0)
	d := New(g)
	d.Feed([]byte("\x1b[?2026h"))
	d.Feed([]byte("A"))
	snap := g.GetRenderCell(0, 0)
	d.Feed([]byte("B"))
	if g.GetRenderCell(0, 0) != snap {
		t.Fatal("expected snapshot stable while synchronized output active")
	}
	d.Feed([]byte("\x1b[?2026l"))
}

func TestCursorPositionReportQueuesResponse(t *testing.T) {
	g := grid.New(10, 5, 0)
	d := New(g)
	d.Feed([]byte("\x1b[3;4H\x1b[6n"))
	resp := g.TakeResponses()
	if len(resp) != 1 || resp[0] != "\x1b[3;4R" {
		t.Fatalf("expected a single CPR response \\x1b[3;4R, got %v", resp)
	}
}

func TestMultiByteUTF8AcrossFeedCalls(t *testing.T) {
	g := grid.New(5, 2, 0)
	d := New(g)
	r := []byte("界") // 3-byte UTF-8 rune
	d.Feed(r[:1])
	d.Feed(r[1:])
	if got := g.GetRenderCell(0, 0).Char; got != '界' {
		t.Fatalf("expected rune split across Feed calls to decode, got %q", got)
	}
}

func TestUnknownCSIIsIgnoredNotCrash(t *testing.T) {
	g := grid.New(5, 2, 0)
	d := New(g)
	d.Feed([]byte("\x1b[123;456;789zX"))
	if got := g.GetRenderCell(0, 0).Char; got != 'X' {
		t.Fatalf("expected parser to recover after an unknown CSI, got %q", got)
	}
}

func TestESCReverseIndexScrollsAtTopMargin(t *testing.T) {
	g := grid.New(5, 3, 0)
	d := New(g)
	d.Feed([]byte("abc\x1b[1;1H\x1bM"))
	// cursor starts at (0,0) (top margin); RI there must scroll the region
	// down rather than doing nothing.
	if got := g.GetRenderCell(0, 1).Char; got != 'a' {
		t.Fatalf("expected row shifted down by reverse index, got %q", got)
	}
}
