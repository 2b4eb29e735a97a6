package wm

import "testing"

func TestTileLayoutCounts(t *testing.T) {
	m := New(80, 24)
	for n := 1; n <= 4; n++ {
		rects := m.tileLayout(n)
		if len(rects) != n {
			t.Fatalf("n=%d: expected %d rects, got %d", n, n, len(rects))
		}
	}
}

func TestTileLayoutFourQuartersCoverDesktop(t *testing.T) {
	m := New(80, 24)
	rects := m.tileLayout(4)
	u := m.usableRect()
	total := 0
	for _, r := range rects {
		total += r.W * r.H
	}
	if total != u.W*u.H {
		t.Fatalf("expected four quarters to exactly tile the usable area: got %d want %d", total, u.W*u.H)
	}
}

func TestSnapRectFullLeftIsHalfWidth(t *testing.T) {
	r := SnapRect(SnapFullLeft, 80, 24, 1)
	if r.W != 40 || r.X != 0 {
		t.Fatalf("unexpected full-left rect: %+v", r)
	}
}

func TestDetectSnapZoneCorners(t *testing.T) {
	m := New(90, 30)
	pos, ok := m.DetectSnapZone(1, 2)
	if !ok || pos != SnapTopLeft {
		t.Fatalf("expected top-left corner zone, got pos=%v ok=%v", pos, ok)
	}
	pos, ok = m.DetectSnapZone(45, 15)
	if ok {
		t.Fatalf("expected center of the screen to be outside every snap zone, got %v", pos)
	}
}

func TestIsPointOnPivotRequiresTiling(t *testing.T) {
	m := New(80, 24)
	m.Pivot = Pivot{X: 40, Y: 12}
	if m.IsPointOnPivot(40, 12) {
		t.Fatal("expected pivot hit test to require auto-tiling to be active")
	}
}
