package input

import (
	"testing"

	"github.com/alejandroqh/term39/internal/keymode"
	"github.com/alejandroqh/term39/internal/termwindow"
	"github.com/alejandroqh/term39/internal/wm"
)

// newTestChain builds a Chain with a Window Manager holding one focused,
// unlocked window at the given geometry, and a Keyboard Mode State already
// in the given sub-mode. The window carries no Emulator: handleMove's and
// handleResize's incremental/edge-snap paths only touch Frame fields, never
// the emulator, so the tests stay PTY-free.
func newTestChain(sub keymode.SubMode, x, y, w, h int) (*Chain, *termwindow.Window) {
	m := wm.New(80, 24)
	win := &termwindow.Window{Frame: termwindow.Frame{ID: 1, X: x, Y: y, W: w, H: h}}
	win.Frame.IsFocused = true
	m.Windows = append(m.Windows, win)
	m.Focus = wm.Focus{Kind: wm.FocusWindow, WindowID: 1}

	km := &keymode.State{Mode: keymode.WindowMode, Sub: sub}
	return &Chain{WM: m, KeyMode: km}, win
}

func TestDirFromNavHJKL(t *testing.T) {
	cases := map[rune]direction{'h': dirLeft, 'l': dirRight, 'k': dirUp, 'j': dirDown}
	for r, want := range cases {
		if got := dirFromNav(KeyEvent{Rune: r}); got != want {
			t.Errorf("dirFromNav(%q) = %v, want %v", r, got, want)
		}
	}
}

func TestDirFromNavArrows(t *testing.T) {
	if dirFromNav(KeyEvent{Key: KeyLeft}) != dirLeft {
		t.Fatal("expected KeyLeft to map to dirLeft")
	}
}

func TestSnapDirFromShift(t *testing.T) {
	if snapDirFromShift(KeyEvent{Rune: 'H'}) != dirLeft {
		t.Fatal("expected Shift+H to map to dirLeft")
	}
	if snapDirFromShift(KeyEvent{Rune: 'x'}) != 0 {
		t.Fatal("expected an unrelated rune to map to no direction")
	}
}

func TestHandleMoveShiftSnapsToEdge(t *testing.T) {
	cases := []struct {
		name  string
		rune  rune
		wantX int
		wantY int
	}{
		{"shift-H snaps left", 'H', 0, 5},
		{"shift-L snaps right", 'L', 80 - 20, 5},
		{"shift-K snaps top", 'K', 10, 1},
		{"shift-J snaps bottom", 'J', 10, 24 - 1 - 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, win := newTestChain(keymode.Move, 10, 5, 20, 8)
			if !c.handleMove(KeyEvent{Rune: tc.rune, Mod: ModShift}) {
				t.Fatal("expected shift+hjkl to be handled in Move mode")
			}
			if win.Frame.X != tc.wantX || win.Frame.Y != tc.wantY {
				t.Fatalf("got (%d,%d), want (%d,%d)", win.Frame.X, win.Frame.Y, tc.wantX, tc.wantY)
			}
			if win.Frame.W != 20 || win.Frame.H != 8 {
				t.Fatalf("Move-mode edge snap must not change size, got (%d,%d)", win.Frame.W, win.Frame.H)
			}
		})
	}
}

func TestHandleMoveShiftIgnoresTileLockedWindow(t *testing.T) {
	c, win := newTestChain(keymode.Move, 10, 5, 20, 8)
	win.Frame.TileLocked = true
	if !c.handleMove(KeyEvent{Rune: 'H', Mod: ModShift}) {
		t.Fatal("a locked window must still consume the keystroke")
	}
	if win.Frame.X != 10 || win.Frame.Y != 5 {
		t.Fatal("a tile-locked window must not move on shift+hjkl")
	}
}

// Resize-mode tests start from a 25x10 frame (well clear of the 20x5
// minimums Frame.Clamp enforces) so a 1-cell shrink never gets clamped
// back up and masks the anchor-edge assertion.

func TestHandleResizeShiftFlipsAnchorHorizontal(t *testing.T) {
	c, win := newTestChain(keymode.Resize, 10, 5, 25, 10)

	// Non-shift 'l' grows width from the right edge: X unchanged, W grows.
	if !c.handleResize(KeyEvent{Rune: 'l'}) {
		t.Fatal("expected 'l' to be handled in Resize mode")
	}
	if win.Frame.X != 10 || win.Frame.W != 26 {
		t.Fatalf("got X=%d W=%d, want X=10 W=26 (right-edge growth)", win.Frame.X, win.Frame.W)
	}

	c, win = newTestChain(keymode.Resize, 10, 5, 25, 10)
	// Shift+L flips the anchor to the left edge: shrinks width, and the
	// left edge (X) moves right to keep the right edge fixed.
	if !c.handleResize(KeyEvent{Rune: 'L', Mod: ModShift}) {
		t.Fatal("expected shift+L to be handled in Resize mode")
	}
	if win.Frame.X != 11 || win.Frame.W != 24 {
		t.Fatalf("got X=%d W=%d, want X=11 W=24 (left-edge anchored shrink)", win.Frame.X, win.Frame.W)
	}

	c, win = newTestChain(keymode.Resize, 10, 5, 25, 10)
	// Shift+H flips the anchor to the left edge: grows width, left edge
	// moves left.
	if !c.handleResize(KeyEvent{Rune: 'H', Mod: ModShift}) {
		t.Fatal("expected shift+H to be handled in Resize mode")
	}
	if win.Frame.X != 9 || win.Frame.W != 26 {
		t.Fatalf("got X=%d W=%d, want X=9 W=26 (left-edge anchored growth)", win.Frame.X, win.Frame.W)
	}
}

func TestHandleResizeShiftFlipsAnchorVertical(t *testing.T) {
	// Non-shift 'j' grows height from the bottom edge: Y unchanged, H grows.
	c, win := newTestChain(keymode.Resize, 10, 5, 25, 10)
	if !c.handleResize(KeyEvent{Rune: 'j'}) {
		t.Fatal("expected 'j' to be handled in Resize mode")
	}
	if win.Frame.Y != 5 || win.Frame.H != 11 {
		t.Fatalf("got Y=%d H=%d, want Y=5 H=11 (bottom-edge growth)", win.Frame.Y, win.Frame.H)
	}

	// Shift+J flips the anchor to the top edge: shrinks height, and the
	// top edge (Y) moves down to keep the bottom edge fixed.
	c, win = newTestChain(keymode.Resize, 10, 5, 25, 10)
	if !c.handleResize(KeyEvent{Rune: 'J', Mod: ModShift}) {
		t.Fatal("expected shift+J to be handled in Resize mode")
	}
	if win.Frame.Y != 6 || win.Frame.H != 9 {
		t.Fatalf("got Y=%d H=%d, want Y=6 H=9 (top-edge anchored shrink)", win.Frame.Y, win.Frame.H)
	}

	// Shift+K flips the anchor to the top edge: grows height, top edge
	// moves up.
	c, win = newTestChain(keymode.Resize, 10, 5, 25, 10)
	if !c.handleResize(KeyEvent{Rune: 'K', Mod: ModShift}) {
		t.Fatal("expected shift+K to be handled in Resize mode")
	}
	if win.Frame.Y != 4 || win.Frame.H != 11 {
		t.Fatalf("got Y=%d H=%d, want Y=4 H=11 (top-edge anchored growth)", win.Frame.Y, win.Frame.H)
	}
}

func TestHandleResizeShiftIgnoresTileLockedWindow(t *testing.T) {
	c, win := newTestChain(keymode.Resize, 10, 5, 20, 8)
	win.Frame.TileLocked = true
	if !c.handleResize(KeyEvent{Rune: 'L', Mod: ModShift}) {
		t.Fatal("a locked window must still consume the keystroke")
	}
	if win.Frame.X != 10 || win.Frame.W != 20 {
		t.Fatal("a tile-locked window must not resize on shift+hjkl")
	}
}

func TestReturnsToNavigation(t *testing.T) {
	for _, ev := range []KeyEvent{{Key: KeyEnter}, {Key: KeyEscape}, {Key: KeyF8}, {Rune: 'm'}} {
		if !returnsToNavigation(ev) {
			t.Errorf("expected %+v to return to navigation", ev)
		}
	}
	if returnsToNavigation(KeyEvent{Rune: 'z'}) {
		t.Fatal("unrelated key must not return to navigation")
	}
}
