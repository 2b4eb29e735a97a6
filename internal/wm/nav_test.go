package wm

import "testing"

func TestAbsHelper(t *testing.T) {
	if abs(-5) != 5 || abs(5) != 5 || abs(0) != 0 {
		t.Fatal("abs implementation incorrect")
	}
}

func TestClampIntKeepsWithinRange(t *testing.T) {
	if clampInt(5, 10, 20) != 10 {
		t.Fatal("expected clamp below range to return lo")
	}
	if clampInt(25, 10, 20) != 20 {
		t.Fatal("expected clamp above range to return hi")
	}
	if clampInt(15, 10, 20) != 15 {
		t.Fatal("expected in-range value to pass through")
	}
}
