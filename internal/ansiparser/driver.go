// Package ansiparser implements the ANSI/VT parser driver: a byte-at-a-time
// state machine that turns a raw PTY output stream into
// Print/Execute/CSI/ESC/OSC/DCS dispatches against an internal/grid.Grid.
//
// The state machine follows the classic VT500-series parser shape (ground,
// escape, csi-entry/param/intermediate, osc-string, dcs-string), dispatched
// through Print/Execute/HandleCsi/HandleEsc/HandleOsc/HandleDcs methods in
// the same callback vocabulary a charmbracelet/x/ansi-style handler struct
// would use.
package ansiparser

import (
	"unicode/utf8"

	"github.com/alejandroqh/term39/internal/grid"
)

type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsEntry
	stateDcsString
	stateDcsIgnore
)

// Driver is a stateful byte-stream parser bound to a single grid.Grid. It is
// not safe for concurrent use; the Terminal Emulator (§4.5) owns one Driver
// per PTY and feeds it from ProcessOutput, which drains the chunks its
// reader goroutine has queued.
type Driver struct {
	g *grid.Grid

	st state

	params    []int
	subs      []bool
	curNum    int
	numActive bool

	marker byte // '?', '>', '=', '<' or 0: the byte right after CSI/ESC that selects a private parameter space
	inter  []byte

	oscBuf []byte
	dcsBuf []byte

	utf8Buf [4]byte
	utf8Len int
	utf8Exp int

	pendingOscClose bool
	pendingDcsClose bool

	// OnBell is invoked on BEL (0x07) outside a string sequence. Nil is a
	// valid no-op sink.
	OnBell func()
}

// New binds a parser driver to g.
func New(g *grid.Grid) *Driver {
	return &Driver{g: g}
}

// Feed parses a chunk of PTY output, dispatching onto the bound grid as it
// goes. It is safe to call repeatedly with successive chunks of a stream;
// state (partial escape sequences, partial UTF-8 runes) carries across calls.
func (d *Driver) Feed(data []byte) {
	for _, b := range data {
		d.step(b)
	}
}

func (d *Driver) step(b byte) {
	// UTF-8 continuation bytes only matter in ground state: control bytes
	// and the ESC/CSI introducers are all single-byte ASCII, so a multi-byte
	// rune can only appear as printable text.
	if d.st == stateGround && d.utf8Exp > 0 {
		if b&0xC0 == 0x80 {
			d.utf8Buf[d.utf8Len] = b
			d.utf8Len++
			if d.utf8Len == d.utf8Exp {
				r, _ := utf8.DecodeRune(d.utf8Buf[:d.utf8Len])
				d.print(r)
				d.utf8Len, d.utf8Exp = 0, 0
			}
			return
		}
		// Malformed sequence: drop it and reprocess b fresh.
		d.utf8Len, d.utf8Exp = 0, 0
	}

	switch d.st {
	case stateGround:
		d.stepGround(b)
	case stateEscape:
		d.stepEscape(b)
	case stateEscapeIntermediate:
		d.stepEscapeIntermediate(b)
	case stateCsiEntry, stateCsiParam:
		d.stepCsiParam(b)
	case stateCsiIntermediate:
		d.stepCsiIntermediate(b)
	case stateCsiIgnore:
		d.stepCsiIgnore(b)
	case stateOscString:
		d.stepOscString(b)
	case stateDcsEntry, stateDcsString:
		d.stepDcsString(b)
	case stateDcsIgnore:
		d.stepDcsIgnore(b)
	}
}

func (d *Driver) stepGround(b byte) {
	switch {
	case b == 0x1B:
		d.enterEscape()
	case b < 0x20 || b == 0x7F:
		d.execute(b)
	case b < 0x80:
		d.print(rune(b))
	case b&0xE0 == 0xC0:
		d.utf8Buf[0] = b
		d.utf8Len, d.utf8Exp = 1, 2
	case b&0xF0 == 0xE0:
		d.utf8Buf[0] = b
		d.utf8Len, d.utf8Exp = 1, 3
	case b&0xF8 == 0xF0:
		d.utf8Buf[0] = b
		d.utf8Len, d.utf8Exp = 1, 4
	default:
		// Stray continuation byte or invalid lead byte: drop it.
	}
}

func (d *Driver) enterEscape() {
	d.st = stateEscape
	d.marker = 0
	d.inter = d.inter[:0]
	d.resetParams()
}

func (d *Driver) resetParams() {
	d.params = d.params[:0]
	d.subs = d.subs[:0]
	d.curNum = -1
	d.numActive = false
}

func (d *Driver) stepEscape(b byte) {
	if d.pendingOscClose {
		d.pendingOscClose = false
		d.HandleOsc(append([]byte(nil), d.oscBuf...))
		if b == '\\' {
			d.st = stateGround
			return
		}
	}
	if d.pendingDcsClose {
		d.pendingDcsClose = false
		d.HandleDcs(append([]byte(nil), d.dcsBuf...))
		if b == '\\' {
			d.st = stateGround
			return
		}
	}
	switch {
	case b == '[':
		d.st = stateCsiEntry
	case b == ']':
		d.st = stateOscString
		d.oscBuf = d.oscBuf[:0]
	case b == 'P':
		d.st = stateDcsEntry
		d.dcsBuf = d.dcsBuf[:0]
	case b == 'X' || b == '^' || b == '_':
		// SOS/PM/APC: accept-and-discard until ST, same shape as DCS.
		d.st = stateDcsIgnore
	case b >= 0x20 && b <= 0x2F:
		d.inter = append(d.inter, b)
		d.st = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7E:
		d.dispatchEsc(b)
		d.st = stateGround
	default:
		d.st = stateGround
	}
}

func (d *Driver) stepEscapeIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		d.inter = append(d.inter, b)
	case b >= 0x30 && b <= 0x7E:
		d.dispatchEsc(b)
		d.st = stateGround
	default:
		d.st = stateGround
	}
}

func (d *Driver) stepCsiParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		if !d.numActive {
			d.curNum = 0
			d.numActive = true
		}
		d.curNum = d.curNum*10 + int(b-'0')
	case b == ';' || b == ':':
		d.pushParam(b == ':')
	case b == '?' || b == '>' || b == '=' || b == '<':
		if len(d.params) == 0 && !d.numActive {
			d.marker = b
		} else {
			d.st = stateCsiIgnore
		}
	case b >= 0x20 && b <= 0x2F:
		d.inter = append(d.inter, b)
		d.st = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		d.finishParams()
		d.dispatchCsi(b)
		d.st = stateGround
	case b < 0x20:
		d.execute(b)
	default:
		d.st = stateCsiIgnore
	}
}

func (d *Driver) stepCsiIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		d.inter = append(d.inter, b)
	case b >= 0x40 && b <= 0x7E:
		d.finishParams()
		d.dispatchCsi(b)
		d.st = stateGround
	case b < 0x20:
		d.execute(b)
	default:
		d.st = stateCsiIgnore
	}
}

func (d *Driver) stepCsiIgnore(b byte) {
	if b >= 0x40 && b <= 0x7E {
		d.st = stateGround
	}
}

func (d *Driver) pushParam(sub bool) {
	d.params = append(d.params, d.curNum)
	d.subs = append(d.subs, sub)
	d.curNum = -1
	d.numActive = false
}

func (d *Driver) finishParams() {
	if d.numActive || len(d.params) == 0 {
		d.params = append(d.params, d.curNum)
		d.subs = append(d.subs, false)
	}
}

func (d *Driver) stepOscString(b byte) {
	switch b {
	case 0x07: // BEL terminator
		d.HandleOsc(append([]byte(nil), d.oscBuf...))
		d.st = stateGround
	case 0x1B:
		d.st = stateEscape // expect '\' (ST); stepEscape() will close the OSC on any non-'\' too
		d.pendingOscClose = true
	default:
		d.oscBuf = append(d.oscBuf, b)
	}
}

func (d *Driver) stepDcsString(b byte) {
	switch b {
	case 0x1B:
		d.st = stateEscape
		d.pendingDcsClose = true
	default:
		d.dcsBuf = append(d.dcsBuf, b)
	}
}

func (d *Driver) stepDcsIgnore(b byte) {
	if b == 0x1B {
		d.st = stateEscape
		d.pendingDcsClose = true
	}
}

func (d *Driver) print(r rune) {
	d.HandlePrint(r)
}

func (d *Driver) execute(b byte) {
	d.HandleExecute(b)
}

func (d *Driver) dispatchCsi(final byte) {
	d.HandleCsi(final, d.marker, d.inter, d.curParams())
}

func (d *Driver) dispatchEsc(final byte) {
	d.HandleEsc(final, d.inter)
}
