package termwindow

import "testing"

func TestMaximizeRestoreRoundTrip(t *testing.T) {
	f := Frame{X: 5, Y: 3, W: 40, H: 12}
	f.Maximize(80, 24)
	if f.X != 0 || f.Y != 1 || f.W != 80 || f.H != 22 {
		t.Fatalf("unexpected maximized geometry: %+v", f)
	}
	f.RestoreFromMaximize()
	if f.X != 5 || f.Y != 3 || f.W != 40 || f.H != 12 {
		t.Fatalf("restore did not reinstate pre-maximize geometry exactly: %+v", f)
	}
}

func TestResizeHandleIsBottomRightCorner(t *testing.T) {
	f := Frame{X: 0, Y: 0, W: 10, H: 5}
	if !f.IsInResizeHandle(9, 4) {
		t.Fatal("expected bottom-right corner to be the resize handle")
	}
	if f.IsInResizeHandle(9, 3) || f.IsInResizeHandle(8, 4) {
		t.Fatal("resize handle hit test too permissive")
	}
}

func TestTitleBarExcludesButtonZone(t *testing.T) {
	f := Frame{X: 0, Y: 0, W: 20, H: 5}
	if f.IsInTitleBar(1, 0) {
		t.Fatal("button zone column should not count as the title bar")
	}
	if !f.IsInTitleBar(10, 0) {
		t.Fatal("expected column past the button zone to be the title bar")
	}
}

func TestClampEnforcesMinimums(t *testing.T) {
	f := Frame{W: 1, H: 1}
	f.Clamp()
	if f.W != MinWidth || f.H != MinHeight {
		t.Fatalf("expected clamp to minimums, got w=%d h=%d", f.W, f.H)
	}
}
