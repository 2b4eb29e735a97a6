package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandroqh/term39/internal/wm"
)

func TestCaptureEmptyManager(t *testing.T) {
	m := wm.New(80, 24)
	snap := Capture(m)
	if snap.ID == "" {
		t.Fatal("expected a non-empty snapshot id")
	}
	if len(snap.Windows) != 0 {
		t.Fatalf("expected no windows, got %d", len(snap.Windows))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	snap := Snapshot{
		ID:         "test-id",
		AutoTiling: true,
		PivotX:     40,
		PivotY:     12,
		Windows: []WindowRecord{
			{ID: 1, Title: "shell", X: 1, Y: 1, W: 40, H: 20},
		},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "session.json")
	if err := Save(path, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != snap.ID || got.PivotX != snap.PivotX || len(got.Windows) != 1 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Windows[0].Title != "shell" {
		t.Fatalf("expected window title to survive round trip, got %q", got.Windows[0].Title)
	}
}

func TestContentDimsClampsToAtLeastOne(t *testing.T) {
	w, h := contentDims(1, 1)
	if w < 1 || h < 1 {
		t.Fatalf("expected clamped dims >= 1, got %d x %d", w, h)
	}
}
