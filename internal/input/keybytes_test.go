package input

import "testing"

func TestArrowUsesCSIWithoutDECCKM(t *testing.T) {
	got := KeyToBytes(KeyEvent{Key: KeyUp}, false, false)
	if string(got) != "\x1b[A" {
		t.Fatalf("expected CSI up, got %q", got)
	}
}

func TestArrowUsesSS3WithDECCKM(t *testing.T) {
	got := KeyToBytes(KeyEvent{Key: KeyUp}, true, false)
	if string(got) != "\x1bOA" {
		t.Fatalf("expected SS3 up, got %q", got)
	}
}

func TestEnterPlain(t *testing.T) {
	got := KeyToBytes(KeyEvent{Key: KeyEnter}, false, false)
	if string(got) != "\r" {
		t.Fatalf("expected CR, got %q", got)
	}
}

func TestShiftEnterWithEnhancement(t *testing.T) {
	got := KeyToBytes(KeyEvent{Key: KeyEnter, Mod: ModShift}, false, true)
	if string(got) != "\x1b[13;2u" {
		t.Fatalf("expected keyboard-enhancement shift-enter sequence, got %q", got)
	}
}

func TestShiftEnterWithoutEnhancementFallsBackToPlainCR(t *testing.T) {
	got := KeyToBytes(KeyEvent{Key: KeyEnter, Mod: ModShift}, false, false)
	if string(got) != "\r" {
		t.Fatalf("expected plain CR when enhancement is off, got %q", got)
	}
}

func TestBackspaceIsDEL(t *testing.T) {
	got := KeyToBytes(KeyEvent{Key: KeyBackspace}, false, false)
	if len(got) != 1 || got[0] != 0x7F {
		t.Fatalf("expected 0x7F, got %v", got)
	}
}

func TestCtrlLetterToControlByte(t *testing.T) {
	got := KeyToBytes(KeyEvent{Rune: 'c', Mod: ModCtrl}, false, false)
	if len(got) != 1 || got[0] != 0x03 {
		t.Fatalf("expected Ctrl+C -> 0x03, got %v", got)
	}
}

func TestPrintableRuneEncodesUTF8(t *testing.T) {
	got := KeyToBytes(KeyEvent{Rune: '€'}, false, false)
	if string(got) != "€" {
		t.Fatalf("expected UTF-8 euro sign, got %q", got)
	}
}

func TestFunctionKeySequences(t *testing.T) {
	cases := map[Key]string{
		KeyF1:  "\x1bOP",
		KeyF8:  "\x1b[19~",
		KeyF12: "\x1b[24~",
	}
	for k, want := range cases {
		got := KeyToBytes(KeyEvent{Key: k}, false, false)
		if string(got) != want {
			t.Errorf("key %v: got %q want %q", k, got, want)
		}
	}
}

func TestGloballyInterceptedKeysListsExpectedSet(t *testing.T) {
	for _, k := range []Key{KeyF1, KeyF2, KeyF3, KeyF4, KeyF6, KeyF7, KeyF8, KeyF10, KeyF12} {
		if !GloballyInterceptedKeys[k] {
			t.Errorf("expected %v to be globally intercepted", k)
		}
	}
	if GloballyInterceptedKeys[KeyF5] || GloballyInterceptedKeys[KeyF9] || GloballyInterceptedKeys[KeyF11] {
		t.Fatal("F5/F9/F11 must not be globally intercepted")
	}
}
