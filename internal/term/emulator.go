// Package term implements the Terminal Emulator: the PTY owner that wires a
// spawned shell/command's byte stream through internal/ansiparser into an
// internal/grid.Grid, the way the teacher's window.go wires go-pty into its
// bubbletea-era vt.Terminal.
package term

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	pty "github.com/aymanbagabas/go-pty"

	"github.com/alejandroqh/term39/internal/ansiparser"
	"github.com/alejandroqh/term39/internal/cellbuf"
	"github.com/alejandroqh/term39/internal/grid"
)

const (
	chunkCap  = 64   // bounded channel capacity between reader goroutine and process_output
	readBytes = 8192 // max bytes read per PTY read, matching the spec's <=8 KiB chunk size

	bracketedPasteStart = "\x1b[200~"
	bracketedPasteEnd   = "\x1b[201~"

	// MaxLinesPerTerminal caps how many rows a session snapshot retains per
	// window.
	MaxLinesPerTerminal = 5000
)

// ShellConfig is the caller-supplied shell override; an empty Path means
// "use the platform default".
type ShellConfig struct {
	Path string
	Args []string
}

// Emulator owns one PTY, its child process, and the grid it feeds.
type Emulator struct {
	pty pty.Pty
	cmd *pty.Cmd

	mu     sync.Mutex // guards grid + parser access from ProcessOutput
	grid   *grid.Grid
	driver *ansiparser.Driver

	chunks chan []byte

	exited atomic.Bool

	writeMu sync.Mutex
}

// New opens a PTY of the given size and spawns either command (if non-empty,
// used by the launcher to run one specific program) or the configured/
// detected shell.
func New(cols, rows, maxScrollback int, command []string, shellConfig ShellConfig) (*Emulator, error) {
	p, err := pty.New()
	if err != nil {
		return nil, fmt.Errorf("term: open pty: %w", err)
	}

	name, args := spawnTarget(command, shellConfig)
	cmd := p.Command(name, args...)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		"PROMPT_EOL_MARK=",
		"PROMPT_SP=",
	)

	if err := cmd.Start(); err != nil {
		p.Close()
		return nil, fmt.Errorf("term: start %s: %w", name, err)
	}

	if err := p.Resize(cols, rows); err != nil {
		// Non-fatal: the child still runs at whatever size the PTY opened with.
		_ = err
	}

	e := &Emulator{
		pty:    p,
		cmd:    cmd,
		grid:   grid.New(cols, rows, maxScrollback),
		chunks: make(chan []byte, chunkCap),
	}
	e.driver = ansiparser.New(e.grid)

	go e.readLoop()
	go e.waitLoop()

	return e, nil
}

func spawnTarget(command []string, shellConfig ShellConfig) (string, []string) {
	if len(command) > 0 {
		return command[0], command[1:]
	}
	return resolveShell(shellConfig.Path), shellConfig.Args
}

func (e *Emulator) readLoop() {
	buf := make([]byte, readBytes)
	for {
		n, err := e.pty.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			e.chunks <- chunk // blocks when full: back-pressure throttles runaway output
		}
		if err != nil {
			close(e.chunks)
			return
		}
	}
}

func (e *Emulator) waitLoop() {
	e.cmd.Wait()
	e.exited.Store(true)
}

// ProcessOutput drains whatever PTY output has arrived since the last call,
// feeds it through the parser under the grid lock, flushes any queued
// terminal responses back to the PTY, and reports whether the child is
// still running. It is meant to be called once per compositor frame.
func (e *Emulator) ProcessOutput() bool {
	var chunks [][]byte
	chunksClosed := false
drain:
	for {
		select {
		case c, ok := <-e.chunks:
			if !ok {
				chunksClosed = true
				break drain
			}
			chunks = append(chunks, c)
		default:
			break drain
		}
	}

	if len(chunks) > 0 {
		e.mu.Lock()
		for _, c := range chunks {
			e.driver.Feed(c)
		}
		responses := e.grid.TakeResponses()
		e.mu.Unlock()

		for _, r := range responses {
			_, _ = e.pty.Write([]byte(r))
		}
	}

	if chunksClosed || e.exited.Load() {
		return false
	}
	return true
}

// WriteInput writes bytes straight through to the PTY. Writes are not
// buffered, so each call is its own write and Flush has nothing to do.
func (e *Emulator) WriteInput(b []byte) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	_, err := e.pty.Write(b)
	return err
}

// Flush is a no-op on every platform, since WriteInput does not buffer;
// it exists so callers have one call site regardless of platform.
func (e *Emulator) Flush() {}

// Paste sends payload to the child, wrapping it in bracketed-paste markers
// when the grid has DEC 2004 enabled.
func (e *Emulator) Paste(payload []byte) error {
	e.mu.Lock()
	bracketed := e.grid.Modes().BracketedPaste
	e.mu.Unlock()

	if !bracketed {
		return e.WriteInput(payload)
	}
	wrapped := make([]byte, 0, len(bracketedPasteStart)+len(payload)+len(bracketedPasteEnd))
	wrapped = append(wrapped, bracketedPasteStart...)
	wrapped = append(wrapped, payload...)
	wrapped = append(wrapped, bracketedPasteEnd...)
	return e.WriteInput(wrapped)
}

// Resize rewraps the grid to the new size and tells the PTY, so the child
// receives SIGWINCH.
func (e *Emulator) Resize(cols, rows int) {
	e.mu.Lock()
	e.grid.Resize(cols, rows)
	e.mu.Unlock()
	_ = e.pty.Resize(cols, rows)
}

// Grid exposes the underlying grid for rendering and session extraction.
func (e *Emulator) Grid() *grid.Grid { return e.grid }

// Close tears down the PTY and best-effort kills the child.
func (e *Emulator) Close() error {
	err := e.pty.Close()
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	return err
}

// ForegroundProcessName reports the name of the process currently in the
// foreground of the PTY, for window titling. Returns "" when it can't be
// determined (unsupported platform, process gone, etc).
func (e *Emulator) ForegroundProcessName() string {
	if e.cmd == nil || e.cmd.Process == nil {
		return ""
	}
	return foregroundProcessName(e.cmd.Process.Pid)
}

// Pid returns the PTY-owning child process's pid, or 0 if it has already
// exited or never started. Used by callers that want process introspection
// (CPU/memory readouts) beyond what this package tracks itself.
func (e *Emulator) Pid() int {
	if e.cmd == nil || e.cmd.Process == nil {
		return 0
	}
	return e.cmd.Process.Pid
}

// SerializableCell is the wire/session-store form of a grid cell.
type SerializableCell struct {
	Char  rune
	Fg    cellbuf.Color
	Bg    cellbuf.Color
	Attrs cellbuf.Attrs
	Width int
}

// ExtractSession walks scrollback oldest-first then the visible screen,
// truncated to at most MaxLinesPerTerminal most-recent lines, alongside the
// cursor snapshot.
func (e *Emulator) ExtractSession() (lines [][]SerializableCell, cursor cellbuf.Cursor) {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw := e.grid.ExtractLines()
	if len(raw) > MaxLinesPerTerminal {
		raw = raw[len(raw)-MaxLinesPerTerminal:]
	}
	lines = make([][]SerializableCell, len(raw))
	for y, row := range raw {
		line := make([]SerializableCell, len(row))
		for x, c := range row {
			line[x] = SerializableCell{Char: c.Char, Fg: c.Fg, Bg: c.Bg, Attrs: c.Attrs, Width: c.Width}
		}
		lines[y] = line
	}
	return lines, e.grid.Cursor()
}

// RestoreSession reconstructs grid content from a prior ExtractSession
// snapshot, re-padding rows to the grid's current width.
func (e *Emulator) RestoreSession(lines [][]SerializableCell, cursor cellbuf.Cursor) {
	raw := make([][]cellbuf.Cell, len(lines))
	for y, line := range lines {
		row := make([]cellbuf.Cell, len(line))
		for x, c := range line {
			row[x] = cellbuf.Cell{Char: c.Char, Fg: c.Fg, Bg: c.Bg, Attrs: c.Attrs, Width: c.Width}
		}
		raw[y] = row
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid.RestoreContent(raw, cursor)
}
