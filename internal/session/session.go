// Package session implements the Session Store: serializing the live
// desktop (window geometry, scrollback, cursor) to a snapshot that can be
// written to disk and later restored, the way original_source's session
// save/restore commands round-trip a desktop across restarts.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/alejandroqh/term39/internal/cellbuf"
	"github.com/alejandroqh/term39/internal/term"
	"github.com/alejandroqh/term39/internal/termwindow"
	"github.com/alejandroqh/term39/internal/wm"
)

// WindowRecord is the persisted form of one Terminal Window.
type WindowRecord struct {
	ID    int
	Title string

	X, Y int
	W, H int

	IsMinimized bool
	IsMaximized bool

	PreMaximizeX, PreMaximizeY, PreMaximizeW, PreMaximizeH int

	Lines  [][]term.SerializableCell
	Cursor cellbuf.Cursor

	// CPUPercent and MemRSS are a best-effort snapshot of the window's
	// foreground process at capture time, for a taskbar readout to show
	// next to the restored window. Zero when the process had already
	// exited or introspection isn't supported.
	CPUPercent float64
	MemRSS     uint64
}

// processStats reads gopsutil's portable CPU/memory view of pid, returning
// zero values rather than an error when the process is gone or stats
// aren't available on this platform.
func processStats(pid int) (cpuPercent float64, memRSS uint64) {
	if pid <= 0 {
		return 0, 0
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return 0, 0
	}
	cpuPercent, _ = p.CPUPercent()
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		memRSS = mem.RSS
	}
	return cpuPercent, memRSS
}

// Snapshot is a full desktop session: every window plus the Window
// Manager state needed to restore layout (auto-tiling, pivot).
type Snapshot struct {
	ID string

	AutoTiling bool
	TilingGaps bool
	PivotX     int
	PivotY     int

	Windows []WindowRecord
}

// Capture walks m's z-ordered windows (bottom to top, so restoring preserves
// stacking order) and produces a Snapshot.
func Capture(m *wm.Manager) Snapshot {
	snap := Snapshot{
		ID:         uuid.NewString(),
		AutoTiling: m.AutoTiling,
		TilingGaps: m.TilingGaps,
		PivotX:     m.Pivot.X,
		PivotY:     m.Pivot.Y,
	}

	for _, w := range m.Windows {
		lines, cursor := w.Emulator.ExtractSession()
		cpuPercent, memRSS := processStats(w.Emulator.Pid())
		snap.Windows = append(snap.Windows, WindowRecord{
			ID:                w.Frame.ID,
			Title:              w.Frame.Title,
			X:                  w.Frame.X,
			Y:                  w.Frame.Y,
			W:                  w.Frame.W,
			H:                  w.Frame.H,
			IsMinimized:        w.Frame.IsMinimized,
			IsMaximized:        w.Frame.IsMaximized,
			PreMaximizeX:       w.Frame.PreMaximizeX,
			PreMaximizeY:       w.Frame.PreMaximizeY,
			PreMaximizeW:       w.Frame.PreMaximizeW,
			PreMaximizeH:       w.Frame.PreMaximizeH,
			Lines:              lines,
			Cursor:             cursor,
			CPUPercent:         cpuPercent,
			MemRSS:             memRSS,
		})
	}
	return snap
}

// Save marshals snap as JSON to path, creating parent directories as
// needed. The on-disk format is deliberately plain JSON: spec.md §1 scopes
// a specific wire/file format out of the core, so this is the reference
// collaborator rather than a fixed contract.
func Save(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("session: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("session: write %s: %w", path, err)
	}
	return nil
}

// Load reads and unmarshals a Snapshot from path.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("session: read %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("session: parse %s: %w", path, err)
	}
	return snap, nil
}

// RestoreInto recreates snap's windows in m, in recorded z-order, spawning
// a fresh Emulator for each and replaying its scrollback+cursor. newShell
// opens the PTY for a restored window (the caller decides shell/command,
// matching the configured default shell).
func RestoreInto(m *wm.Manager, snap Snapshot, newShell func(cols, rows int) (*termwindow.Window, error)) error {
	m.AutoTiling = snap.AutoTiling
	m.TilingGaps = snap.TilingGaps
	m.Pivot = wm.Pivot{X: snap.PivotX, Y: snap.PivotY}

	for _, rec := range snap.Windows {
		cw, ch := contentDims(rec.W, rec.H)
		w, err := newShell(cw, ch)
		if err != nil {
			return fmt.Errorf("session: restore window %d: %w", rec.ID, err)
		}
		w.Frame.Title = rec.Title
		w.Frame.X, w.Frame.Y = rec.X, rec.Y
		w.Frame.W, w.Frame.H = rec.W, rec.H
		w.Frame.IsMinimized = rec.IsMinimized
		w.Frame.IsMaximized = rec.IsMaximized
		w.Frame.PreMaximizeX, w.Frame.PreMaximizeY = rec.PreMaximizeX, rec.PreMaximizeY
		w.Frame.PreMaximizeW, w.Frame.PreMaximizeH = rec.PreMaximizeW, rec.PreMaximizeH
		w.Emulator.RestoreSession(rec.Lines, rec.Cursor)

		m.Windows = append(m.Windows, w)
	}
	return nil
}

// contentDims mirrors termwindow.Frame.ContentSize without constructing a
// Frame, for sizing the PTY before the Window exists.
func contentDims(frameW, frameH int) (int, int) {
	const borderCols, chromeRows = 2, 2
	w := frameW - borderCols
	h := frameH - chromeRows
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
