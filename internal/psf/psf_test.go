package psf

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildPSF1(glyphCount int, charSize int, withUnicode bool) []byte {
	mode := byte(0)
	if glyphCount == 512 {
		mode |= psf1ModeHas512
	}
	if withUnicode {
		mode |= psf1ModeHasUnicode
	}
	buf := &bytes.Buffer{}
	buf.Write([]byte{psf1Magic0, psf1Magic1, mode, byte(charSize)})
	for i := 0; i < glyphCount*charSize; i++ {
		buf.WriteByte(0xAA)
	}
	if withUnicode {
		for g := 0; g < glyphCount; g++ {
			binary.Write(buf, binary.LittleEndian, uint16('A')+uint16(g))
			binary.Write(buf, binary.LittleEndian, unicodeSeparator)
		}
	}
	return buf.Bytes()
}

func TestParsePSF1Basic(t *testing.T) {
	data := buildPSF1(256, 16, false)
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Width != 8 || f.Height != 16 || f.GlyphCount != 256 {
		t.Fatalf("unexpected dims: %+v", f)
	}
	g := f.Glyph(0)
	if len(g) != 16 {
		t.Fatalf("expected 16-byte glyph, got %d", len(g))
	}
}

func TestParsePSF1WithUnicodeTable(t *testing.T) {
	data := buildPSF1(256, 8, true)
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if idx, ok := f.Unicode['A']; !ok || idx != 0 {
		t.Fatalf("expected 'A' to map to glyph 0, got %d ok=%v", idx, ok)
	}
	if idx, ok := f.Unicode['B']; !ok || idx != 1 {
		t.Fatalf("expected 'B' to map to glyph 1, got %d ok=%v", idx, ok)
	}
}

func TestParsePSF2Basic(t *testing.T) {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, psf2Magic)
	binary.Write(buf, binary.LittleEndian, uint32(0))  // version
	binary.Write(buf, binary.LittleEndian, uint32(32)) // headersize
	binary.Write(buf, binary.LittleEndian, uint32(0))  // flags
	binary.Write(buf, binary.LittleEndian, uint32(2))  // length
	binary.Write(buf, binary.LittleEndian, uint32(16)) // charsize
	binary.Write(buf, binary.LittleEndian, uint32(16)) // height
	binary.Write(buf, binary.LittleEndian, uint32(8))  // width
	for i := 0; i < 2*16; i++ {
		buf.WriteByte(0xFF)
	}

	f, err := Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Width != 8 || f.Height != 16 || f.GlyphCount != 2 {
		t.Fatalf("unexpected dims: %+v", f)
	}
}

func TestUnrecognizedMagicErrors(t *testing.T) {
	if _, err := Parse(bytes.NewReader([]byte{0, 1, 2, 3})); err == nil {
		t.Fatal("expected an error for unrecognized magic")
	}
}

func TestBitSet(t *testing.T) {
	row := []byte{0b10000001}
	if !BitSet(row, 0) {
		t.Fatal("expected bit 0 set")
	}
	if BitSet(row, 1) {
		t.Fatal("expected bit 1 clear")
	}
	if !BitSet(row, 7) {
		t.Fatal("expected bit 7 set")
	}
	if BitSet(row, 64) {
		t.Fatal("expected out-of-range bit to report clear")
	}
}

func TestValidName(t *testing.T) {
	cases := map[string]bool{
		"ter-116n":       true,
		"Lat2-Terminus16": true,
		"":               false,
		"../../etc/passwd": false,
		"font name":      false,
	}
	for name, want := range cases {
		if got := ValidName(name); got != want {
			t.Errorf("ValidName(%q) = %v, want %v", name, got, want)
		}
	}
}
