package ansiparser

import "github.com/alejandroqh/term39/internal/cellbuf"

// applySGR walks an SGR ("m") parameter list left to right, mutating the
// grid's live pen. 0/omitted resets everything;
// 1-9 set an attribute; 21-29 clear one; 30-37/90-97 and 40-47/100-107 pick
// one of the 16 named colors; 38/48 switch to indexed (sub-param 5) or
// truecolor (sub-param 2), accepting both the classic ';'-separated xterm
// form and the ITU ':'-separated sub-parameter form.
func (d *Driver) applySGR(p Params) {
	if p.Len() == 0 {
		d.g.ResetPen()
		return
	}
	pen := d.g.Pen()
	i := 0
	for i < p.Len() {
		n, _ := p.Param(i, 0)
		switch {
		case n == 0:
			d.g.ResetPen()
			pen = d.g.Pen()
		case n == 1:
			pen.Attrs.Bold = true
		case n == 2:
			pen.Attrs.Dim = true
		case n == 3:
			pen.Attrs.Italic = true
		case n == 4:
			pen.Attrs.Underline = true
		case n == 5 || n == 6:
			pen.Attrs.Blink = true
		case n == 7:
			pen.Attrs.Reverse = true
		case n == 8:
			pen.Attrs.Hidden = true
		case n == 9:
			pen.Attrs.Strikethrough = true
		case n == 21:
			pen.Attrs.Bold = false
		case n == 22:
			pen.Attrs.Bold, pen.Attrs.Dim = false, false
		case n == 23:
			pen.Attrs.Italic = false
		case n == 24:
			pen.Attrs.Underline = false
		case n == 25:
			pen.Attrs.Blink = false
		case n == 27:
			pen.Attrs.Reverse = false
		case n == 28:
			pen.Attrs.Hidden = false
		case n == 29:
			pen.Attrs.Strikethrough = false
		case n >= 30 && n <= 37:
			pen.Fg = cellbuf.NamedColor(uint8(n - 30))
		case n == 39:
			pen.Fg = cellbuf.DefaultFG
		case n >= 40 && n <= 47:
			pen.Bg = cellbuf.NamedColor(uint8(n - 40))
		case n == 49:
			pen.Bg = cellbuf.DefaultBG
		case n >= 90 && n <= 97:
			pen.Fg = cellbuf.NamedColor(uint8(n - 90 + 8))
		case n >= 100 && n <= 107:
			pen.Bg = cellbuf.NamedColor(uint8(n - 100 + 8))
		case n == 38 || n == 48:
			color, consumed := d.parseExtendedColor(p, i)
			if n == 38 {
				pen.Fg = color
			} else {
				pen.Bg = color
			}
			i += consumed
			continue
		}
		i++
	}
	d.g.SetPen(pen)
}

// parseExtendedColor reads the sub-sequence that follows a 38/48 selector
// and returns the resulting color plus how many parameter slots it
// consumed in total, including the 38/48 selector itself at index i.
func (d *Driver) parseExtendedColor(p Params, i int) (cellbuf.Color, int) {
	mode, _ := p.Param(i+1, -1)
	switch mode {
	case 5: // indexed: 38;5;N
		idx, _ := p.Param(i+2, 0)
		return cellbuf.IndexedColor(uint8(idx)), 3
	case 2: // truecolor: 38;2;R;G;B, or 38:2:CS:R:G:B with a colour-space slot
		off := 2
		if p.IsSub(i + 5) {
			off = 3
		}
		r, _ := p.Param(i+off, 0)
		g, _ := p.Param(i+off+1, 0)
		b, _ := p.Param(i+off+2, 0)
		return cellbuf.RGBColor(uint8(r), uint8(g), uint8(b)), off + 3
	default:
		return cellbuf.DefaultFG, 1
	}
}
