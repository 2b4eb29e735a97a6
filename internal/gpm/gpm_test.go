//go:build linux

package gpm

import (
	"testing"
	"unsafe"
)

func TestRawEventIs28Bytes(t *testing.T) {
	if sz := unsafe.Sizeof(rawEvent{}); sz != 28 {
		t.Fatalf("rawEvent is %d bytes, want 28", sz)
	}
}

func TestNormalizeInvertsLeftRight(t *testing.T) {
	raw := rawEvent{Buttons: byte(ButtonLeft), X: 10, Y: 5}
	ev := normalize(raw)
	if ev.Buttons != ButtonRight {
		t.Fatalf("expected left to invert to right, got %d", ev.Buttons)
	}

	raw2 := rawEvent{Buttons: byte(ButtonRight)}
	ev2 := normalize(raw2)
	if ev2.Buttons != ButtonLeft {
		t.Fatalf("expected right to invert to left, got %d", ev2.Buttons)
	}
}

func TestNormalizeLeavesMiddleUntouched(t *testing.T) {
	raw := rawEvent{Buttons: byte(ButtonMiddle)}
	ev := normalize(raw)
	if ev.Buttons != ButtonMiddle {
		t.Fatalf("expected middle button untouched, got %d", ev.Buttons)
	}
}

func TestNormalizeBothButtonsInvertSymmetrically(t *testing.T) {
	raw := rawEvent{Buttons: byte(ButtonLeft | ButtonRight)}
	ev := normalize(raw)
	if ev.Buttons != ButtonLeft|ButtonRight {
		t.Fatalf("expected both-pressed to remain both-pressed after swap, got %d", ev.Buttons)
	}
}
