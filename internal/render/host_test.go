package render

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/alejandroqh/term39/internal/cellbuf"
)

func newTestHost() (*Host, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Host{out: bufio.NewWriter(&buf)}, &buf
}

func TestSetForegroundNamedLow(t *testing.T) {
	h, buf := newTestHost()
	if err := h.SetForeground(cellbuf.NamedColor(2)); err != nil {
		t.Fatalf("SetForeground: %v", err)
	}
	h.out.Flush()
	if !strings.Contains(buf.String(), "\x1b[32m") {
		t.Fatalf("expected SGR 32 for green, got %q", buf.String())
	}
}

func TestSetForegroundNamedBright(t *testing.T) {
	h, buf := newTestHost()
	if err := h.SetForeground(cellbuf.NamedColor(9)); err != nil {
		t.Fatalf("SetForeground: %v", err)
	}
	h.out.Flush()
	if !strings.Contains(buf.String(), "\x1b[91m") {
		t.Fatalf("expected SGR 91 for bright red, got %q", buf.String())
	}
}

func TestSetBackgroundRGB(t *testing.T) {
	h, buf := newTestHost()
	if err := h.SetBackground(cellbuf.RGBColor(10, 20, 30)); err != nil {
		t.Fatalf("SetBackground: %v", err)
	}
	h.out.Flush()
	if !strings.Contains(buf.String(), "48;2;10;20;30") {
		t.Fatalf("expected truecolor background SGR, got %q", buf.String())
	}
}

func TestSetAttrsEmitsResetThenFlags(t *testing.T) {
	h, buf := newTestHost()
	if err := h.SetAttrs(cellbuf.Attrs{Bold: true, Underline: true}); err != nil {
		t.Fatalf("SetAttrs: %v", err)
	}
	h.out.Flush()
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b[0m") {
		t.Fatalf("expected attrs to start with a reset, got %q", out)
	}
	if !strings.Contains(out, "\x1b[1m") || !strings.Contains(out, "\x1b[4m") {
		t.Fatalf("expected bold+underline SGR codes, got %q", out)
	}
}

func TestScaleMouseCoordsIdentity(t *testing.T) {
	h := &Host{}
	col, row := h.ScaleMouseCoords(5, 7)
	if col != 5 || row != 7 {
		t.Fatalf("expected identity scaling, got %d,%d", col, row)
	}
}

func TestHasNativeMouseInputFalse(t *testing.T) {
	h := &Host{}
	if h.HasNativeMouseInput() {
		t.Fatal("host backend must not claim native mouse input")
	}
}
