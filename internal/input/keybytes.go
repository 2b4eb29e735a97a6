package input

import "unicode/utf8"

// KeyToBytes encodes a KeyEvent for PTY forwarding. decckm is the grid's
// DECCKM (application cursor keys) flag; shiftEnhanced reports whether
// the keyboard-enhancement protocol is active, which changes how
// Shift+Enter is encoded.
func KeyToBytes(ev KeyEvent, decckm bool, shiftEnhanced bool) []byte {
	if ev.Mod&ModCtrl != 0 && ev.Key == KeyNone && ev.Rune != 0 {
		if b, ok := ctrlByte(ev.Rune); ok {
			return []byte{b}
		}
	}

	switch ev.Key {
	case KeyEnter:
		if ev.Mod&ModShift != 0 && shiftEnhanced {
			return []byte("\x1b[13;2u")
		}
		return []byte{'\r'}
	case KeyBackspace:
		return []byte{0x7F}
	case KeyTab:
		return []byte{'\t'}
	case KeyBackTab:
		return []byte("\x1b[Z")
	case KeyUp:
		return cursorSeq('A', decckm)
	case KeyDown:
		return cursorSeq('B', decckm)
	case KeyRight:
		return cursorSeq('C', decckm)
	case KeyLeft:
		return cursorSeq('D', decckm)
	case KeyHome:
		return cursorSeq('H', decckm)
	case KeyEnd:
		return cursorSeq('F', decckm)
	case KeyPageUp:
		return []byte("\x1b[5~")
	case KeyPageDown:
		return []byte("\x1b[6~")
	case KeyDelete:
		return []byte("\x1b[3~")
	case KeyInsert:
		return []byte("\x1b[2~")
	case KeyEscape:
		return []byte{0x1b}
	case KeyF1:
		return []byte("\x1bOP")
	case KeyF2:
		return []byte("\x1bOQ")
	case KeyF3:
		return []byte("\x1bOR")
	case KeyF4:
		return []byte("\x1bOS")
	case KeyF5:
		return []byte("\x1b[15~")
	case KeyF6:
		return []byte("\x1b[17~")
	case KeyF7:
		return []byte("\x1b[18~")
	case KeyF8:
		return []byte("\x1b[19~")
	case KeyF9:
		return []byte("\x1b[20~")
	case KeyF10:
		return []byte("\x1b[21~")
	case KeyF11:
		return []byte("\x1b[23~")
	case KeyF12:
		return []byte("\x1b[24~")
	case KeyBacktick:
		return []byte{'`'}
	}

	if ev.Rune != 0 {
		buf := make([]byte, utf8.UTFMax)
		n := utf8.EncodeRune(buf, ev.Rune)
		return buf[:n]
	}
	return nil
}

// cursorSeq builds an arrow/Home/End CSI sequence, using the SS3 form
// (ESC O x) instead of CSI (ESC [ x) when DECCKM (application cursor
// keys) is set.
func cursorSeq(final byte, decckm bool) []byte {
	if decckm {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

// ctrlByte converts a letter to its control-code byte (Ctrl+A -> 0x01,
// ..., Ctrl+Z -> 0x1A), the mapping every terminal emulator's line
// discipline relies on.
func ctrlByte(r rune) (byte, bool) {
	lower := r
	if lower >= 'A' && lower <= 'Z' {
		lower = lower - 'A' + 'a'
	}
	if lower >= 'a' && lower <= 'z' {
		return byte(lower-'a') + 1, true
	}
	switch r {
	case '[':
		return 0x1b, true
	case ']':
		return 0x1d, true
	case '\\':
		return 0x1c, true
	case '^':
		return 0x1e, true
	case '_':
		return 0x1f, true
	}
	return 0, false
}

// GloballyInterceptedKeys are F-keys that never reach PTY forwarding:
// they're consumed earlier in the dispatch chain (help, cycle, save,
// clear, copy, paste, window-mode toggle, exit, lock).
var GloballyInterceptedKeys = map[Key]bool{
	KeyF1:  true,
	KeyF2:  true,
	KeyF3:  true,
	KeyF4:  true,
	KeyF6:  true,
	KeyF7:  true,
	KeyF8:  true,
	KeyF10: true,
	KeyF12: true,
}
