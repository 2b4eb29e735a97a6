//go:build linux

package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/alejandroqh/term39/internal/psf"
)

// embeddedFallbackFont builds a bitmap font for cellW x cellH at runtime,
// so the framebuffer backend has something to draw even on a fresh system
// with no consolefonts package installed. Printable ASCII is rasterized
// from golang.org/x/image/font/basicfont's fixed 7x13 face (scaled/cropped
// to the requested cell size via its font.Face.Glyph masks); everything
// outside basicfont's range renders as a simple block outline.
func embeddedFallbackFont(cellW, cellH int) *psf.Font {
	stride := (cellW + 7) / 8
	glyphCount := 256
	glyphs := make([]byte, glyphCount*stride*cellH)

	face := basicfont.Face7x13

	for g := 0; g < glyphCount; g++ {
		base := g * stride * cellH
		if g < 0x20 || g == 0x7F {
			continue // control characters render blank
		}
		if g <= 0x7E {
			if rasterizeFromFace(face, rune(g), glyphs[base:base+stride*cellH], cellW, cellH, stride) {
				continue
			}
		}
		drawOutline(glyphs[base:base+stride*cellH], cellW, cellH, stride)
	}

	return &psf.Font{
		Width:       cellW,
		Height:      cellH,
		GlyphCount:  glyphCount,
		Glyphs:      glyphs,
		GlyphStride: stride * cellH,
	}
}

// rasterizeFromFace samples face's mask for r and nearest-neighbor scales it
// into a cellW x cellH bit-packed glyph. Returns false if the face has no
// glyph for r.
func rasterizeFromFace(face font.Face, r rune, out []byte, cellW, cellH, stride int) bool {
	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok || mask == nil {
		return false
	}
	srcW := dr.Dx()
	srcH := dr.Dy()
	if srcW <= 0 || srcH <= 0 {
		return false
	}

	for row := 0; row < cellH; row++ {
		srcY := dr.Min.Y + row*srcH/cellH
		rowOff := row * stride
		for col := 0; col < cellW; col++ {
			srcX := dr.Min.X + col*srcW/cellW
			_, _, _, a := mask.At(maskp.X+(srcX-dr.Min.X), maskp.Y+(srcY-dr.Min.Y)).RGBA()
			if a == 0 {
				continue
			}
			byteIdx := rowOff + col/8
			bit := 7 - uint(col%8)
			out[byteIdx] |= 1 << bit
		}
	}
	return true
}

// drawOutline fills a simple block border, used for codepoints basicfont
// doesn't cover (box-drawing/line-drawing glyphs above 0x7E).
func drawOutline(out []byte, cellW, cellH, stride int) {
	for row := 0; row < cellH; row++ {
		rowOff := row * stride
		border := row == 0 || row == cellH-1
		for col := 0; col < cellW; col++ {
			if !border && col != 0 && col != cellW-1 {
				continue
			}
			byteIdx := rowOff + col/8
			bit := 7 - uint(col%8)
			out[byteIdx] |= 1 << bit
		}
	}
}
