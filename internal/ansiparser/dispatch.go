package ansiparser

import (
	"github.com/alejandroqh/term39/internal/cellbuf"
	"github.com/alejandroqh/term39/internal/grid"
)

// HandlePrint writes one printable rune to the grid.
func (d *Driver) HandlePrint(r rune) {
	d.g.PutChar(r)
}

// HandleExecute runs a C0 control code.
func (d *Driver) HandleExecute(b byte) {
	switch b {
	case 0x07: // BEL
		if d.OnBell != nil {
			d.OnBell()
		}
	case 0x08: // BS
		d.g.Backspace()
	case 0x09: // HT
		d.g.Tab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF: all advance a line
		d.g.Linefeed()
	case 0x0D: // CR
		d.g.CarriageReturn()
	case 0x0E: // SO: select G1
		d.g.ShiftOut()
	case 0x0F: // SI: select G0
		d.g.ShiftIn()
	}
}

func (d *Driver) curParams() Params {
	return Params{vals: d.params, subs: d.subs}
}

// HandleCsi dispatches a completed CSI sequence: final byte, any
// intermediate bytes (space, '!', etc.) and the private-marker byte
// ('?', '>', '=', '<') if one preceded the parameters.
func (d *Driver) HandleCsi(final byte, marker byte, inter []byte, p Params) {
	if marker == '?' {
		d.dispatchDecPrivate(final, p)
		return
	}
	if marker == '>' && final == 'c' {
		d.g.QueueResponse("\x1b[>0;100;0c") // DA2: plausible xterm-class identifier, no real hardware to report
		return
	}

	switch final {
	case 'A':
		n, _ := p.Param(0, 1)
		d.g.MoveCursorRelative(0, -orOne(n))
	case 'B':
		n, _ := p.Param(0, 1)
		d.g.MoveCursorRelative(0, orOne(n))
	case 'C':
		n, _ := p.Param(0, 1)
		d.g.MoveCursorRelative(orOne(n), 0)
	case 'D':
		n, _ := p.Param(0, 1)
		d.g.MoveCursorRelative(-orOne(n), 0)
	case 'E': // CNL: next line(s), column 1
		n, _ := p.Param(0, 1)
		cur := d.g.Cursor()
		d.g.GotoOriginAware(cur.Y+orOne(n), 0)
	case 'F': // CPL: previous line(s), column 1
		n, _ := p.Param(0, 1)
		cur := d.g.Cursor()
		d.g.GotoOriginAware(cur.Y-orOne(n), 0)
	case 'G', '`': // CHA / HPA: column absolute
		n, _ := p.Param(0, 1)
		cur := d.g.Cursor()
		d.g.GotoOriginAware(cur.Y, n-1)
	case 'd': // VPA: row absolute
		n, _ := p.Param(0, 1)
		cur := d.g.Cursor()
		d.g.GotoOriginAware(n-1, cur.X)
	case 'H', 'f': // CUP / HVP
		row, _ := p.Param(0, 1)
		col, _ := p.Param(1, 1)
		d.g.GotoOriginAware(row-1, col-1)
	case 'J':
		mode, _ := p.Param(0, 0)
		d.g.EraseInDisplay(mode)
	case 'K':
		mode, _ := p.Param(0, 0)
		d.g.EraseInLine(mode)
	case 'L':
		n, _ := p.Param(0, 1)
		d.g.InsertLines(orOne(n))
	case 'M':
		n, _ := p.Param(0, 1)
		d.g.DeleteLines(orOne(n))
	case 'P':
		n, _ := p.Param(0, 1)
		d.g.DeleteChars(orOne(n))
	case '@':
		n, _ := p.Param(0, 1)
		d.g.InsertChars(orOne(n))
	case 'X':
		n, _ := p.Param(0, 1)
		d.g.EraseChars(orOne(n))
	case 'S':
		n, _ := p.Param(0, 1)
		d.g.ScrollUp(orOne(n))
	case 'T':
		n, _ := p.Param(0, 1)
		d.g.ScrollDown(orOne(n))
	case 'r':
		_, rows := d.g.Dimensions()
		top, _ := p.Param(0, 1)
		bottom, _ := p.Param(1, rows)
		if bottom == 0 {
			bottom = rows
		}
		d.g.SetScrollRegion(top-1, bottom-1)
	case 's': // ANSI.SYS save cursor position
		d.g.SaveCursorPosition()
	case 'u': // ANSI.SYS restore cursor position
		d.g.RestoreCursorPosition()
	case 'h':
		d.setAnsiModes(p, true)
	case 'l':
		d.setAnsiModes(p, false)
	case 'm':
		d.applySGR(p)
	case 'n':
		n, _ := p.Param(0, 0)
		switch n {
		case 5:
			d.g.QueueResponse("\x1b[0n")
		case 6:
			d.g.QueueCursorPositionReport()
		}
	case 'c':
		if marker == 0 {
			d.g.QueueResponse("\x1b[?62c") // DA1: VT220, no options
		}
	case 'q':
		if len(inter) == 1 && inter[0] == ' ' {
			n, _ := p.Param(0, 0)
			d.setCursorShape(n)
		}
	}
}

func orOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (d *Driver) setCursorShape(n int) {
	switch n {
	case 0, 1, 2:
		d.g.SetCursorShape(cellbuf.CursorBlock)
	case 3, 4:
		d.g.SetCursorShape(cellbuf.CursorUnderline)
	case 5, 6:
		d.g.SetCursorShape(cellbuf.CursorBar)
	}
}

// setAnsiModes handles non-DEC-private 'h'/'l': 4 IRM, 20 LNM.
func (d *Driver) setAnsiModes(p Params, set bool) {
	m := d.g.ModesPtr()
	for i := 0; i < p.Len(); i++ {
		n, _ := p.Param(i, 0)
		switch n {
		case 4:
			m.IRM = set
		case 20:
			m.LNM = set
		}
	}
}

// dispatchDecPrivate handles CSI ? Pn h/l: 1 DECCKM, 6 DECOM, 7 DECAWM,
// 9/1000/1002/1003 mouse, 25 cursor visibility, 47/1047/1048/1049 alt
// screen, 1004 focus events, 1006 SGR mouse, 1015 urxvt mouse, 2004
// bracketed paste, 2026 synchronized output.
func (d *Driver) dispatchDecPrivate(final byte, p Params) {
	set := final == 'h'
	m := d.g.ModesPtr()
	for i := 0; i < p.Len(); i++ {
		n, _ := p.Param(i, 0)
		switch n {
		case 1:
			m.DECCKM = set
		case 6:
			d.g.SetOriginMode(set)
		case 7:
			m.DECAWM = set
		case 9:
			m.MouseX10 = set
		case 25:
			d.g.SetCursorVisible(set)
		case 47, 1047:
			if set {
				d.g.UseAltScreen()
			} else {
				d.g.UseMainScreen()
			}
		case 1048:
			if set {
				d.g.SaveCursor()
			} else {
				d.g.RestoreCursor()
			}
		case 1049:
			if set {
				d.g.SaveCursor()
				d.g.UseAltScreen()
			} else {
				d.g.UseMainScreen()
				d.g.RestoreCursor()
			}
		case 1000:
			m.MouseNormal = set
		case 1002:
			m.MouseButtonEvent = set
		case 1003:
			m.MouseAnyEvent = set
		case 1004:
			m.FocusEvents = set
		case 1006:
			m.MouseSGR = set
		case 1015:
			m.MouseURXVT = set
		case 2004:
			m.BracketedPaste = set
		case 2026:
			if set {
				d.g.BeginSynchronizedOutput()
			} else {
				d.g.EndSynchronizedOutput()
			}
		}
	}
}

// HandleEsc dispatches a completed ESC sequence (a final byte, optionally
// preceded by intermediates) that isn't a CSI/OSC/DCS introducer.
func (d *Driver) HandleEsc(final byte, inter []byte) {
	switch final {
	case 'D': // IND
		d.g.Linefeed()
	case 'M': // RI
		d.g.ReverseIndex()
	case 'E': // NEL
		d.g.CarriageReturn()
		d.g.Linefeed()
	case '7': // DECSC
		d.g.SaveCursor()
	case '8': // DECRC
		d.g.RestoreCursor()
	case 'c': // RIS: full reset
		d.fullReset()
	case 'H': // HTS
		d.g.SetTabStop()
	}

	if len(inter) == 1 {
		d.dispatchCharsetDesignate(inter[0], final)
	}
}

func (d *Driver) dispatchCharsetDesignate(designator, final byte) {
	var cs grid.CharSet
	switch final {
	case '0':
		cs = grid.DecSpecialGraphics
	case 'B', 'A':
		cs = grid.Ascii
	default:
		return
	}
	switch designator {
	case '(':
		d.g.SetG0(cs)
	case ')':
		d.g.SetG1(cs)
	}
}

func (d *Driver) fullReset() {
	cols, rows := d.g.Dimensions()
	*d.g = *grid.New(cols, rows, d.g.MaxScrollback())
}

// HandleOsc is invoked with the full OSC payload (the bytes between the
// ']' introducer and the BEL/ST terminator). Window-title and clipboard
// (OSC 52) sequences are accepted and discarded rather than acted on.
func (d *Driver) HandleOsc(payload []byte) {
	_ = payload
}

// HandleDcs is invoked with the full DCS payload. Device Control Strings
// (e.g. Sixel, DECRQSS) are accepted and discarded, not acted on.
func (d *Driver) HandleDcs(payload []byte) {
	_ = payload
}
