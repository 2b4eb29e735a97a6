//go:build linux

package render

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/alejandroqh/term39/internal/cellbuf"
	"github.com/alejandroqh/term39/internal/psf"
)

const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// fbBitfield mirrors Linux's struct fb_bitfield.
type fbBitfield struct {
	Offset, Length, MSBRight uint32
}

// fbVarScreenInfo mirrors the fields of struct fb_var_screeninfo this
// backend actually consumes.
type fbVarScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp fbBitfield
	Rest                     [22]uint32 // remaining fields this backend doesn't need
}

// fbFixScreenInfo mirrors the fields of struct fb_fix_screeninfo this
// backend actually consumes.
type fbFixScreenInfo struct {
	ID         [16]byte
	SmemStart  uint64
	SmemLen    uint32
	Type       uint32
	TypeAux    uint32
	Visual     uint32
	XPanStep   uint16
	YPanStep   uint16
	YWrapStep  uint16
	LineLength uint32
	Rest       [16]byte
}

// TextMode is a named {cols, rows, cell geometry} selectable by config.
type TextMode struct {
	Name          string
	Cols, Rows    int
	CellW, CellH  int
}

// TextModes is the built-in catalog of selectable text modes.
var TextModes = map[string]TextMode{
	"80x25":  {Name: "80x25", Cols: 80, Rows: 25, CellW: 8, CellH: 16},
	"80x50":  {Name: "80x50", Cols: 80, Rows: 50, CellW: 8, CellH: 8},
	"132x43": {Name: "132x43", Cols: 132, Rows: 43, CellW: 8, CellH: 16},
}

// dosPalette is the 16-color DOS/VGA RGB palette named colors map onto.
var dosPalette = [16][3]uint8{
	{0x00, 0x00, 0x00}, {0xAA, 0x00, 0x00}, {0x00, 0xAA, 0x00}, {0xAA, 0x55, 0x00},
	{0x00, 0x00, 0xAA}, {0xAA, 0x00, 0xAA}, {0x00, 0xAA, 0xAA}, {0xAA, 0xAA, 0xAA},
	{0x55, 0x55, 0x55}, {0xFF, 0x55, 0x55}, {0x55, 0xFF, 0x55}, {0xFF, 0xFF, 0x55},
	{0x55, 0x55, 0xFF}, {0xFF, 0x55, 0xFF}, {0x55, 0xFF, 0xFF}, {0xFF, 0xFF, 0xFF},
}

// cursorSprite is a 16x16 mask: 0 transparent, 1 black outline, 2 white fill.
var cursorSprite = buildCursorSprite()

func buildCursorSprite() [16][16]byte {
	var s [16][16]byte
	for y := 0; y < 16; y++ {
		for x := 0; x < 16-y && x < 16; x++ {
			if x == 0 || x == 15-y || y == 15 {
				s[y][x] = 1
			} else {
				s[y][x] = 2
			}
		}
	}
	return s
}

type savedPixel struct {
	x, y int
	rgb  [3]uint8
}

// Framebuffer is the Linux direct-framebuffer Rendering Backend: rasterizes
// a PSF bitmap font over /dev/fb0 (or whatever path is given), tracking a
// previous-frame cell matrix so each present only redraws changed cells.
type Framebuffer struct {
	f   *os.File
	mem []byte

	screenW, screenH int
	bytesPerPixel    int
	lineLength       int
	redOff, greenOff, blueOff uint32

	mode  TextMode
	scale int
	offX, offY int // centering offset in pixels

	font *psf.Font

	prev []cellbuf.Cell
	cols, rows int

	cursorCol, cursorRow int
	cursorSet            bool
	savedPixels          []savedPixel
}

// OpenFramebuffer opens path (normally /dev/fb0), refusing anything that
// isn't a character device, reads its geometry via FBIOGET_VSCREENINFO /
// FBIOGET_FSCREENINFO, mmaps the device, and picks a TextMode + pixel
// scale.
func OpenFramebuffer(path string, mode TextMode, pixelScale int, fontName string) (*Framebuffer, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("render: stat %s: %w", path, err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("render: refusing symlinked framebuffer path %s", path)
	}
	if fi.Mode()&os.ModeCharDevice == 0 {
		return nil, fmt.Errorf("render: %s is not a character device", path)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("render: open %s: %w", path, err)
	}

	var vinfo fbVarScreenInfo
	if err := ioctl(f.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("render: FBIOGET_VSCREENINFO: %w", err)
	}
	var finfo fbFixScreenInfo
	if err := ioctl(f.Fd(), fbioGetFScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("render: FBIOGET_FSCREENINFO: %w", err)
	}

	screenW, screenH := int(vinfo.XRes), int(vinfo.YRes)
	bpp := int(vinfo.BitsPerPixel) / 8
	lineLength := int(finfo.LineLength)

	size := lineLength * screenH
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("render: mmap: %w", err)
	}

	scale := pixelScale
	if scale <= 0 {
		scale = maxIntegerScale(mode, screenW, screenH)
	}
	if scale < 1 {
		scale = 1
	}

	fnt, err := loadFont(fontName, mode.CellW, mode.CellH)
	if err != nil {
		unix.Munmap(mem)
		f.Close()
		return nil, err
	}

	contentW := mode.Cols * mode.CellW * scale
	contentH := mode.Rows * mode.CellH * scale

	fb := &Framebuffer{
		f:             f,
		mem:           mem,
		screenW:       screenW,
		screenH:       screenH,
		bytesPerPixel: bpp,
		lineLength:    lineLength,
		redOff:        vinfo.Red.Offset / 8,
		greenOff:      vinfo.Green.Offset / 8,
		blueOff:       vinfo.Blue.Offset / 8,
		mode:          mode,
		scale:         scale,
		offX:          (screenW - contentW) / 2,
		offY:          (screenH - contentH) / 2,
		font:          fnt,
		cols:          mode.Cols,
		rows:          mode.Rows,
	}
	if fb.offX < 0 {
		fb.offX = 0
	}
	if fb.offY < 0 {
		fb.offY = 0
	}
	fb.prev = make([]cellbuf.Cell, fb.cols*fb.rows)
	for i := range fb.prev {
		fb.prev[i] = cellbuf.Cell{Char: 0}
	}
	return fb, nil
}

// loadFont resolves fontName via internal/psf, falling back to an
// embedded minimal font (safe to run on a fresh system with no console
// fonts installed) if nothing matches the requested cell size.
func loadFont(fontName string, cellW, cellH int) (*psf.Font, error) {
	if fontName != "" {
		if f, err := psf.Open(fontName); err == nil && f.Width == cellW && f.Height == cellH {
			return f, nil
		}
	}
	for _, dir := range psf.SearchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			f, err := psf.Open(e.Name())
			if err != nil {
				continue
			}
			if f.Width == cellW && f.Height == cellH {
				return f, nil
			}
		}
	}
	return embeddedFallbackFont(cellW, cellH), nil
}

// maxIntegerScale returns the largest integer s such that the mode's
// content still fits the physical screen.
func maxIntegerScale(mode TextMode, screenW, screenH int) int {
	contentW := mode.Cols * mode.CellW
	contentH := mode.Rows * mode.CellH
	if contentW == 0 || contentH == 0 {
		return 1
	}
	sw := screenW / contentW
	sh := screenH / contentH
	s := sw
	if sh < s {
		s = sh
	}
	if s < 1 {
		s = 1
	}
	return s
}

func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Present rasterizes only cells whose value differs from the previous
// frame's matrix.
func (fb *Framebuffer) Present(vb *cellbuf.VideoBuffer) error {
	cols, rows := vb.Dimensions()
	if cols != fb.cols || rows != fb.rows {
		return fmt.Errorf("render: video buffer %dx%d does not match mode %dx%d", cols, rows, fb.cols, fb.rows)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c, _ := vb.GetBack(x, y)
			i := y*cols + x
			if c == fb.prev[i] {
				continue
			}
			fb.rasterizeCell(x, y, c)
			fb.prev[i] = c
		}
	}
	return nil
}

func (fb *Framebuffer) rasterizeCell(col, row int, c cellbuf.Cell) {
	glyph := fb.font.GlyphForRune(c.Char)
	if glyph == nil {
		glyph = fb.font.GlyphForRune(' ')
	}
	fg := colorToRGB(c.Fg)
	bg := colorToRGB(c.Bg)
	if c.Attrs.Reverse {
		fg, bg = bg, fg
	}

	originX := fb.offX + col*fb.mode.CellW*fb.scale
	originY := fb.offY + row*fb.mode.CellH*fb.scale

	if fb.scale == 1 && fb.mode.CellW == 8 {
		fb.rasterizeHotPath(originX, originY, glyph, fg, bg)
		return
	}
	fb.rasterizeGeneral(originX, originY, glyph, fg, bg)
}

// rasterizeHotPath handles the common case: scale 1, 8-pixel-wide glyphs,
// one byte per row with no divisions.
func (fb *Framebuffer) rasterizeHotPath(x0, y0 int, glyph []byte, fg, bg [3]uint8) {
	bytesPerRow := 1
	for row := 0; row < fb.mode.CellH; row++ {
		rowByte := glyph[row*bytesPerRow]
		for bit := 0; bit < 8; bit++ {
			set := rowByte&(1<<uint(7-bit)) != 0
			color := bg
			if set {
				color = fg
			}
			fb.putPixel(x0+bit, y0+row, color)
		}
	}
}

// rasterizeGeneral handles wider glyphs and/or scale > 1.
func (fb *Framebuffer) rasterizeGeneral(x0, y0 int, glyph []byte, fg, bg [3]uint8) {
	bytesPerRow := (fb.mode.CellW + 7) / 8
	for row := 0; row < fb.mode.CellH; row++ {
		rowBytes := glyph[row*bytesPerRow : (row+1)*bytesPerRow]
		for col := 0; col < fb.mode.CellW; col++ {
			set := psf.BitSet(rowBytes, col)
			color := bg
			if set {
				color = fg
			}
			for sy := 0; sy < fb.scale; sy++ {
				for sx := 0; sx < fb.scale; sx++ {
					px := x0 + col*fb.scale + sx
					py := y0 + row*fb.scale + sy
					fb.putPixel(px, py, color)
				}
			}
		}
	}
}

func (fb *Framebuffer) putPixel(x, y int, rgb [3]uint8) {
	if x < 0 || y < 0 || x >= fb.screenW || y >= fb.screenH {
		return
	}
	off := y*fb.lineLength + x*fb.bytesPerPixel
	if off+fb.bytesPerPixel > len(fb.mem) {
		return
	}
	switch fb.bytesPerPixel {
	case 4:
		fb.mem[off+int(fb.redOff)] = rgb[0]
		fb.mem[off+int(fb.greenOff)] = rgb[1]
		fb.mem[off+int(fb.blueOff)] = rgb[2]
	case 3:
		fb.mem[off+int(fb.redOff)] = rgb[0]
		fb.mem[off+int(fb.greenOff)] = rgb[1]
		fb.mem[off+int(fb.blueOff)] = rgb[2]
	case 2:
		v := uint16(rgb[0]>>3)<<11 | uint16(rgb[1]>>2)<<5 | uint16(rgb[2]>>3)
		fb.mem[off] = byte(v)
		fb.mem[off+1] = byte(v >> 8)
	default:
		gray := (uint16(rgb[0]) + uint16(rgb[1]) + uint16(rgb[2])) / 3
		fb.mem[off] = byte(gray)
	}
}

func colorToRGB(c cellbuf.Color) [3]uint8 {
	switch c.Kind {
	case cellbuf.ColorNamed:
		if int(c.Index) < len(dosPalette) {
			p := dosPalette[c.Index]
			return [3]uint8{p[0], p[1], p[2]}
		}
	case cellbuf.ColorIndexed:
		p := dosPalette[int(c.Index)%16]
		return [3]uint8{p[0], p[1], p[2]}
	case cellbuf.ColorRGB:
		return [3]uint8{c.R, c.G, c.B}
	}
	return [3]uint8{0, 0, 0}
}

func (fb *Framebuffer) Dimensions() (cols, rows int) { return fb.cols, fb.rows }

// CheckResize re-reads the framebuffer's variable screen info; a change
// in screen resolution recomputes the pixel scale and centering offset.
func (fb *Framebuffer) CheckResize() (cols, rows int, changed bool) {
	var vinfo fbVarScreenInfo
	if err := ioctl(fb.f.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		return fb.cols, fb.rows, false
	}
	if int(vinfo.XRes) == fb.screenW && int(vinfo.YRes) == fb.screenH {
		return fb.cols, fb.rows, false
	}
	fb.screenW, fb.screenH = int(vinfo.XRes), int(vinfo.YRes)
	fb.scale = maxIntegerScale(fb.mode, fb.screenW, fb.screenH)
	contentW := fb.mode.Cols * fb.mode.CellW * fb.scale
	contentH := fb.mode.Rows * fb.mode.CellH * fb.scale
	fb.offX = (fb.screenW - contentW) / 2
	fb.offY = (fb.screenH - contentH) / 2
	return fb.cols, fb.rows, false
}

// ScaleMouseCoords maps a pixel-space pointer report into grid cell
// coordinates, inverting the centering offset and cell geometry.
func (fb *Framebuffer) ScaleMouseCoords(x, y int) (int, int) {
	cellW := fb.mode.CellW * fb.scale
	cellH := fb.mode.CellH * fb.scale
	if cellW == 0 || cellH == 0 {
		return 0, 0
	}
	col := (x - fb.offX) / cellW
	row := (y - fb.offY) / cellH
	return col, row
}

func (fb *Framebuffer) HasNativeMouseInput() bool { return true }

// GetMouseButtonEvent and GetMouseScrollEvent are satisfied by the GPM
// client in internal/input, not polled here directly: the framebuffer
// device itself carries no pointer protocol.
func (fb *Framebuffer) GetMouseButtonEvent() (MouseButtonEvent, bool) { return MouseButtonEvent{}, false }
func (fb *Framebuffer) GetMouseScrollEvent() (MouseScrollEvent, bool) { return MouseScrollEvent{}, false }

func (fb *Framebuffer) SetTTYCursor(col, row int) {
	fb.cursorCol, fb.cursorRow = col, row
	fb.cursorSet = true
}

func (fb *Framebuffer) ClearTTYCursor() { fb.cursorSet = false }

// UpdateCursor is a no-op placeholder; DrawCursor/RestoreCursorArea do
// the actual pixel work, run after Present so the pointer sits on top.
func (fb *Framebuffer) UpdateCursor() {}

// DrawCursor rasterizes the 16x16 cursor sprite at the current TTY cursor
// position, first saving every pixel it's about to overwrite.
func (fb *Framebuffer) DrawCursor() {
	if !fb.cursorSet {
		return
	}
	fb.savedPixels = fb.savedPixels[:0]
	x0 := fb.offX + fb.cursorCol*fb.mode.CellW*fb.scale
	y0 := fb.offY + fb.cursorRow*fb.mode.CellH*fb.scale
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			mask := cursorSprite[y][x]
			if mask == 0 {
				continue
			}
			px, py := x0+x, y0+y
			fb.savedPixels = append(fb.savedPixels, savedPixel{x: px, y: py, rgb: fb.readPixel(px, py)})
			color := [3]uint8{0, 0, 0}
			if mask == 2 {
				color = [3]uint8{255, 255, 255}
			}
			fb.putPixel(px, py, color)
		}
	}
}

// RestoreCursorArea drains the saved-pixel list, restoring exactly what
// DrawCursor overwrote so the next frame's diff sees a pristine back
// buffer underneath.
func (fb *Framebuffer) RestoreCursorArea() {
	for _, p := range fb.savedPixels {
		fb.putPixel(p.x, p.y, p.rgb)
	}
	fb.savedPixels = fb.savedPixels[:0]
}

func (fb *Framebuffer) readPixel(x, y int) [3]uint8 {
	if x < 0 || y < 0 || x >= fb.screenW || y >= fb.screenH {
		return [3]uint8{}
	}
	off := y*fb.lineLength + x*fb.bytesPerPixel
	if off+fb.bytesPerPixel > len(fb.mem) || fb.bytesPerPixel < 3 {
		return [3]uint8{}
	}
	return [3]uint8{fb.mem[off+int(fb.redOff)], fb.mem[off+int(fb.greenOff)], fb.mem[off+int(fb.blueOff)]}
}

// Close unmaps the device and closes its file descriptor.
func (fb *Framebuffer) Close() error {
	if err := unix.Munmap(fb.mem); err != nil {
		fb.f.Close()
		return err
	}
	return fb.f.Close()
}
