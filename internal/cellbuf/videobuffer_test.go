package cellbuf

import "testing"

type fakeWriter struct {
	moves  int
	writes [][]byte
	fg, bg []Color
}

func (f *fakeWriter) Write(p []byte) (int, error) {
	f.writes = append(f.writes, append([]byte(nil), p...))
	return len(p), nil
}
func (f *fakeWriter) MoveCursor(x, y int) error   { f.moves++; return nil }
func (f *fakeWriter) SetForeground(c Color) error { f.fg = append(f.fg, c); return nil }
func (f *fakeWriter) SetBackground(c Color) error  { f.bg = append(f.bg, c); return nil }
func (f *fakeWriter) SetAttrs(a Attrs) error       { return nil }

func TestPresentCleanFrameEmitsNothing(t *testing.T) {
	vb := New(4, 2)
	w := &fakeWriter{}
	n, err := vb.Present(w)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || len(w.writes) != 0 {
		t.Fatalf("expected zero writes on a fresh clean buffer, got n=%d writes=%d", n, len(w.writes))
	}

	// Presenting again with no intervening Set calls must also emit nothing.
	n, err = vb.Present(w)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || len(w.writes) != 0 {
		t.Fatalf("expected zero writes on an unchanged frame, got n=%d writes=%d", n, len(w.writes))
	}
}

func TestPresentOnlyChangedCells(t *testing.T) {
	vb := New(4, 2)
	vb.Set(1, 0, Cell{Char: 'A', Fg: DefaultFG, Bg: DefaultBG, Width: 1})
	w := &fakeWriter{}
	n, err := vb.Present(w)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one changed cell, got %d", n)
	}

	// Now present again with no changes: must be silent.
	w2 := &fakeWriter{}
	n, err = vb.Present(w2)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || len(w2.writes) != 0 {
		t.Fatalf("expected silent second present, got n=%d writes=%d", n, len(w2.writes))
	}
}

func TestOutOfBoundsSetIsIgnored(t *testing.T) {
	vb := New(2, 2)
	vb.Set(-1, 0, Cell{Char: 'x'})
	vb.Set(100, 100, Cell{Char: 'y'})
	w := &fakeWriter{}
	if _, err := vb.Present(w); err != nil {
		t.Fatal(err)
	}
	if len(w.writes) != 0 {
		t.Fatalf("out-of-bounds writes should never reach the backend, got %d", len(w.writes))
	}
}

func TestSaveRestoreRegion(t *testing.T) {
	vb := New(5, 5)
	vb.Set(1, 1, Cell{Char: 'Z', Width: 1})
	saved := vb.SaveRegion(1, 1, 2, 2)
	vb.Set(1, 1, Cell{Char: ' ', Width: 1})
	vb.RestoreRegion(1, 1, 2, 2, saved)
	c, _ := vb.GetBack(1, 1)
	if c.Char != 'Z' {
		t.Fatalf("expected restored cell to carry 'Z', got %q", c.Char)
	}
}

func TestResizeDiscardsBuffers(t *testing.T) {
	vb := New(3, 3)
	vb.Set(0, 0, Cell{Char: 'Q', Width: 1})
	vb.Resize(6, 2)
	cols, rows := vb.Dimensions()
	if cols != 6 || rows != 2 {
		t.Fatalf("expected resized dimensions 6x2, got %dx%d", cols, rows)
	}
	c, _ := vb.GetBack(0, 0)
	if c != DefaultCell {
		t.Fatalf("expected resize to discard prior contents, got %+v", c)
	}
}
