package termwindow

import "testing"

func TestSelectionCharModeSingleLine(t *testing.T) {
	var s Selection
	s.Begin(2, 5, SelectionChar)
	s.Extend(8, 5)
	if !s.Contains(5, 5) {
		t.Fatal("expected midpoint to be inside a same-line char selection")
	}
	if s.Contains(1, 5) || s.Contains(9, 5) {
		t.Fatal("expected points outside [anchor,extent] to be excluded")
	}
	if s.Contains(5, 6) {
		t.Fatal("expected a different row to be excluded")
	}
}

func TestSelectionBlockModeColumnBand(t *testing.T) {
	var s Selection
	s.Begin(5, 0, SelectionBlock)
	s.Extend(2, 3)
	// Block mode: any row in [0,3], column in [2,5].
	if !s.Contains(3, 2) {
		t.Fatal("expected column band to be selected regardless of anchor order")
	}
	if s.Contains(6, 2) {
		t.Fatal("expected column outside the band to be excluded")
	}
}

func TestSelectionLineModeWholeRows(t *testing.T) {
	var s Selection
	s.Begin(7, 1, SelectionLine)
	s.Extend(2, 3)
	if !s.Contains(0, 2) || !s.Contains(99, 2) {
		t.Fatal("expected line mode to select entire intermediate rows")
	}
}

func TestClearResetsSelection(t *testing.T) {
	var s Selection
	s.Begin(1, 1, SelectionChar)
	s.Clear()
	if s.Active {
		t.Fatal("expected Clear to deactivate the selection")
	}
	if s.Contains(1, 1) {
		t.Fatal("expected cleared selection to contain nothing")
	}
}
