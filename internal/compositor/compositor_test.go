package compositor

import (
	"testing"
	"time"

	"github.com/alejandroqh/term39/internal/cellbuf"
	"github.com/alejandroqh/term39/internal/render"
	"github.com/alejandroqh/term39/internal/wm"
)

// fakeBackend is an in-memory render.Backend stand-in, avoiding any real
// terminal or framebuffer device in tests.
type fakeBackend struct {
	cols, rows   int
	resizedTo    [2]int
	hasResize    bool
	presentCalls int
}

func (f *fakeBackend) Present(vb *cellbuf.VideoBuffer) error { f.presentCalls++; return nil }
func (f *fakeBackend) Dimensions() (int, int)                { return f.cols, f.rows }
func (f *fakeBackend) CheckResize() (int, int, bool) {
	if f.hasResize {
		f.hasResize = false
		return f.resizedTo[0], f.resizedTo[1], true
	}
	return f.cols, f.rows, false
}
func (f *fakeBackend) ScaleMouseCoords(col, row int) (int, int) { return col, row }
func (f *fakeBackend) HasNativeMouseInput() bool                { return false }
func (f *fakeBackend) GetMouseButtonEvent() (render.MouseButtonEvent, bool) {
	return render.MouseButtonEvent{}, false
}
func (f *fakeBackend) GetMouseScrollEvent() (render.MouseScrollEvent, bool) {
	return render.MouseScrollEvent{}, false
}
func (f *fakeBackend) SetTTYCursor(col, row int) {}
func (f *fakeBackend) ClearTTYCursor()           {}
func (f *fakeBackend) UpdateCursor()             {}
func (f *fakeBackend) DrawCursor()               {}
func (f *fakeBackend) RestoreCursorArea()        {}
func (f *fakeBackend) Close() error              { return nil }

func TestFramePresentsWithNoWindows(t *testing.T) {
	backend := &fakeBackend{cols: 80, rows: 24}
	manager := wm.New(80, 24)
	comp := New(backend, manager, nil)

	if err := comp.Frame(time.Now()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if backend.presentCalls != 1 {
		t.Fatalf("expected exactly one Present call, got %d", backend.presentCalls)
	}
}

func TestFrameResizesVideoBufferAndManager(t *testing.T) {
	backend := &fakeBackend{cols: 80, rows: 24, hasResize: true, resizedTo: [2]int{100, 30}}
	manager := wm.New(80, 24)
	comp := New(backend, manager, nil)

	if err := comp.Frame(time.Now()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if manager.Width != 100 || manager.Height != 30 {
		t.Fatalf("expected manager resized to 100x30, got %dx%d", manager.Width, manager.Height)
	}
	if cols, rows := comp.vb.Dimensions(); cols != 100 || rows != 30 {
		t.Fatalf("expected video buffer resized to 100x30, got %dx%d", cols, rows)
	}
}

func TestLogMethodsAreNoOpWithoutLogger(t *testing.T) {
	comp := New(&fakeBackend{cols: 10, rows: 10}, wm.New(10, 10), nil)
	comp.Log("hello")
	comp.LogInfo("hello %d", 1)
	comp.LogWarn("hello")
	comp.LogError("hello")
}

func TestToastQueueShowActiveDismiss(t *testing.T) {
	var q ToastQueue
	now := time.Unix(1000, 0)

	if q.Active() {
		t.Fatal("expected no active toast initially")
	}
	q.Show("saved", now)
	if !q.Active() || q.Current() != "saved" {
		t.Fatalf("expected active toast %q, got %q", "saved", q.Current())
	}

	q.DismissIfOlderThan(ToastDismissThreshold, now)
	if !q.Active() {
		t.Fatal("toast dismissed before its threshold elapsed")
	}

	later := now.Add(ToastDismissThreshold + time.Millisecond)
	q.DismissIfOlderThan(ToastDismissThreshold, later)
	if q.Active() {
		t.Fatal("expected toast to auto-dismiss once past the threshold")
	}
}
