package input

import "testing"

func identityScale(c, r int) (int, int) { return c, r }

func TestDecodeOnePrintableRune(t *testing.T) {
	ev, rest, ok := decodeOne([]byte("a"), identityScale)
	if !ok {
		t.Fatal("expected a decode")
	}
	if ev.Key == nil || ev.Key.Rune != 'a' {
		t.Fatalf("expected rune 'a', got %+v", ev.Key)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder, got %q", rest)
	}
}

func TestDecodeOneArrowKey(t *testing.T) {
	ev, rest, ok := decodeOne([]byte("\x1b[A"), identityScale)
	if !ok {
		t.Fatal("expected a decode")
	}
	if ev.Key == nil || ev.Key.Key != KeyUp {
		t.Fatalf("expected KeyUp, got %+v", ev.Key)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder, got %q", rest)
	}
}

func TestDecodeOneTildeFunctionKey(t *testing.T) {
	ev, _, ok := decodeOne([]byte("\x1b[19~"), identityScale)
	if !ok || ev.Key == nil || ev.Key.Key != KeyF8 {
		t.Fatalf("expected KeyF8, got %+v ok=%v", ev, ok)
	}
}

func TestDecodeOneIncompleteEscapeWaitsForMore(t *testing.T) {
	_, _, ok := decodeOne([]byte("\x1b["), identityScale)
	if ok {
		t.Fatal("expected incomplete escape sequence to report not-yet-decodable")
	}
}

func TestDecodeSGRMouseDown(t *testing.T) {
	ev, rest, ok := decodeOne([]byte("\x1b[<0;10;5M"), identityScale)
	if !ok {
		t.Fatal("expected a decode")
	}
	if ev.Mouse == nil {
		t.Fatalf("expected a mouse event, got %+v", ev)
	}
	if ev.Mouse.Col != 9 || ev.Mouse.Row != 4 {
		t.Fatalf("expected 0-based col/row 9,4, got %d,%d", ev.Mouse.Col, ev.Mouse.Row)
	}
	if ev.Mouse.Kind != MouseDown || ev.Mouse.Button != ButtonLeft {
		t.Fatalf("expected left button down, got %+v", ev.Mouse)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder, got %q", rest)
	}
}

func TestDecodeSGRMouseUp(t *testing.T) {
	ev, _, ok := decodeOne([]byte("\x1b[<0;1;1m"), identityScale)
	if !ok || ev.Mouse == nil || ev.Mouse.Kind != MouseUp {
		t.Fatalf("expected mouse up, got %+v ok=%v", ev, ok)
	}
}

func TestDecodeSGRMouseScroll(t *testing.T) {
	ev, _, ok := decodeOne([]byte("\x1b[<64;1;1M"), identityScale)
	if !ok || ev.Mouse == nil || ev.Mouse.Kind != MouseScroll || ev.Mouse.ScrollDelta != 1 {
		t.Fatalf("expected scroll-up, got %+v ok=%v", ev, ok)
	}
}

func TestCtrlByteControlCharacters(t *testing.T) {
	ev, _, ok := decodeOne([]byte{0x03}, identityScale)
	if !ok || ev.Key == nil || ev.Key.Mod != ModCtrl || ev.Key.Rune != 'c' {
		t.Fatalf("expected Ctrl+C decode, got %+v ok=%v", ev, ok)
	}
}
