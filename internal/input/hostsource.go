package input

import (
	"bytes"
	"io"
	"time"
)

// HostSource reads raw bytes from the host terminal (typically /dev/tty,
// already raw-moded by the render.Host backend) on its own goroutine,
// the way the teacher's raw_reader.go separates TTY reading from the
// main loop, and decodes them into Events.
type HostSource struct {
	r       io.Reader
	events  chan Event
	stop    chan struct{}
	scale   func(col, row int) (int, int)
}

// NewHostSource starts the reader goroutine over r. scale is the active
// backend's ScaleMouseCoords, applied exactly once here at ingest.
func NewHostSource(r io.Reader, scale func(col, row int) (int, int)) *HostSource {
	if scale == nil {
		scale = func(c, rr int) (int, int) { return c, rr }
	}
	hs := &HostSource{
		r:      r,
		events: make(chan Event, 256),
		stop:   make(chan struct{}),
		scale:  scale,
	}
	go hs.readLoop()
	return hs
}

func (hs *HostSource) readLoop() {
	buf := make([]byte, 4096)
	var pending []byte
	for {
		select {
		case <-hs.stop:
			return
		default:
		}
		n, err := hs.r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				ev, rest, ok := decodeOne(pending, hs.scale)
				if !ok {
					break
				}
				pending = rest
				select {
				case hs.events <- ev:
				case <-hs.stop:
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

// Poll implements EventSource.
func (hs *HostSource) Poll(timeout time.Duration) (Event, bool) {
	if timeout <= 0 {
		select {
		case ev := <-hs.events:
			return ev, true
		default:
			return Event{}, false
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case ev := <-hs.events:
		return ev, true
	case <-t.C:
		return Event{}, false
	}
}

// Stop terminates the reader goroutine.
func (hs *HostSource) Stop() { close(hs.stop) }

// decodeOne attempts to decode a single Event from the front of buf,
// returning the unconsumed remainder. ok is false when buf doesn't yet
// contain a complete sequence (caller should wait for more bytes).
func decodeOne(buf []byte, scale func(int, int) (int, int)) (Event, []byte, bool) {
	if len(buf) == 0 {
		return Event{}, buf, false
	}

	if buf[0] == 0x1b {
		if ev, rest, ok := decodeEscape(buf, scale); ok {
			return ev, rest, true
		}
		if len(buf) < 16 {
			return Event{}, buf, false // might still be an in-flight sequence
		}
		// Unrecognized, long escape blob: drop the ESC and let the
		// remainder resync byte by byte rather than stalling forever.
		return Event{Key: &KeyEvent{Key: KeyEscape, At: now()}}, buf[1:], true
	}

	r, size := decodeRune(buf)
	key := classifyControlByte(r)
	return Event{Key: &key}, buf[size:], true
}

func decodeRune(buf []byte) (rune, int) {
	r := rune(buf[0])
	if r < 0x80 {
		return r, 1
	}
	// Minimal UTF-8 continuation handling for printable host input.
	n := 1
	for n < len(buf) && n < 4 && buf[n]&0xC0 == 0x80 {
		n++
	}
	return decodeMultibyte(buf[:n]), n
}

func decodeMultibyte(b []byte) rune {
	switch len(b) {
	case 2:
		return rune(b[0]&0x1F)<<6 | rune(b[1]&0x3F)
	case 3:
		return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
	case 4:
		return rune(b[0]&0x07)<<18 | rune(b[1]&0x3F)<<12 | rune(b[2]&0x3F)<<6 | rune(b[3]&0x3F)
	default:
		return rune(b[0])
	}
}

func classifyControlByte(r rune) KeyEvent {
	ev := KeyEvent{At: now()}
	switch r {
	case '\r', '\n':
		ev.Key = KeyEnter
	case 0x7F, 0x08:
		ev.Key = KeyBackspace
	case '\t':
		ev.Key = KeyTab
	case '`':
		ev.Key = KeyBacktick
	case 0x1b:
		ev.Key = KeyEscape
	default:
		if r >= 1 && r <= 26 {
			ev.Mod = ModCtrl
			ev.Rune = rune('a' + r - 1)
		} else {
			ev.Rune = r
		}
	}
	return ev
}

// decodeEscape recognizes the CSI/SS3 sequences this pipeline forwards:
// arrows, Home/End, Page Up/Down, Delete/Insert, F1-F12, and SGR mouse
// reports (ESC [ < b ; x ; y M/m).
func decodeEscape(buf []byte, scale func(int, int) (int, int)) (Event, []byte, bool) {
	if len(buf) < 3 {
		return Event{}, buf, false
	}
	if buf[1] != '[' && buf[1] != 'O' {
		return Event{}, buf, false
	}

	if buf[1] == '[' && len(buf) > 2 && buf[2] == '<' {
		return decodeSGRMouse(buf, scale)
	}

	end := 2
	for end < len(buf) && !isFinalByte(buf[end]) {
		end++
	}
	if end >= len(buf) {
		return Event{}, buf, false
	}
	seq := buf[:end+1]
	rest := buf[end+1:]

	key := csiToKey(seq)
	if key.Key == KeyNone && key.Rune == 0 {
		return Event{}, buf, false
	}
	return Event{Key: &key}, rest, true
}

func isFinalByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~'
}

var csiFinalToKey = map[byte]Key{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
	'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
	'Z': KeyBackTab,
}

var tildeToKey = map[string]Key{
	"2": KeyInsert, "3": KeyDelete, "5": KeyPageUp, "6": KeyPageDown,
	"15": KeyF5, "17": KeyF6, "18": KeyF7, "19": KeyF8, "20": KeyF9,
	"21": KeyF10, "23": KeyF11, "24": KeyF12,
}

func csiToKey(seq []byte) KeyEvent {
	ev := KeyEvent{At: now()}
	final := seq[len(seq)-1]
	body := seq[2 : len(seq)-1]

	if final == '~' {
		if k, ok := tildeToKey[string(body)]; ok {
			ev.Key = k
		}
		return ev
	}
	if k, ok := csiFinalToKey[final]; ok {
		ev.Key = k
		return ev
	}
	return ev
}

// decodeSGRMouse parses "ESC [ < b ; x ; y (M|m)".
func decodeSGRMouse(buf []byte, scale func(int, int) (int, int)) (Event, []byte, bool) {
	end := bytes.IndexAny(buf[3:], "Mm")
	if end < 0 {
		return Event{}, buf, false
	}
	end += 3
	body := buf[3:end]
	pressed := buf[end] == 'M'
	rest := buf[end+1:]

	parts := bytes.Split(body, []byte{';'})
	if len(parts) != 3 {
		return Event{}, rest, true
	}
	b := atoiSafe(string(parts[0]))
	col := atoiSafe(string(parts[1])) - 1
	row := atoiSafe(string(parts[2])) - 1
	col, row = scale(col, row)

	me := MouseEvent{Col: col, Row: row, Source: SourceHostTerminal}
	switch {
	case b&64 != 0:
		me.Kind = MouseScroll
		if b&1 != 0 {
			me.ScrollDelta = -1 // 65: wheel down
		} else {
			me.ScrollDelta = 1 // 64: wheel up
		}
	case !pressed:
		me.Kind = MouseUp
		me.Button = buttonFromCode(b)
	default:
		if b&32 != 0 {
			me.Kind = MouseMove
		} else {
			me.Kind = MouseDown
		}
		me.Button = buttonFromCode(b)
	}
	return Event{Mouse: &me}, rest, true
}

func buttonFromCode(b int) MouseButton {
	switch b & 3 {
	case 0:
		return ButtonLeft
	case 1:
		return ButtonMiddle
	case 2:
		return ButtonRight
	}
	return ButtonNone
}

func atoiSafe(s string) int {
	n := 0
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n
}

// now is a seam so event timestamps can be stamped without importing
// time.Now() directly into every call site's test expectations.
func now() time.Time { return time.Now() }
