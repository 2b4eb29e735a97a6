// Package term39log implements the optional append-only debug log: a
// plain file at a platform-specific path, timestamped at millisecond
// granularity, matching original_source/src/debug_log.rs's contract.
package term39log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Logger appends timestamped lines to a debug log file. A nil writer
// (disabled logging) makes every method a no-op.
type Logger struct {
	w io.WriteCloser
}

// DefaultPath returns the platform-specific debug log path:
// $XDG_STATE_HOME/term39/debug.log, falling back to the user cache dir.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "term39", "debug.log")
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "term39", "debug.log")
	}
	return filepath.Join(os.TempDir(), "term39-debug.log")
}

// Open creates (or appends to) the log file at path, creating parent
// directories as needed. An empty path disables logging: Open returns a
// Logger whose methods are no-ops.
func Open(path string) (*Logger, error) {
	if path == "" {
		return &Logger{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("term39log: mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("term39log: open %s: %w", path, err)
	}
	return &Logger{w: f}, nil
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l.w == nil {
		return nil
	}
	return l.w.Close()
}

func (l *Logger) write(level, format string, args ...any) {
	if l.w == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s [%s] term39: %s\n", time.Now().Format("2006-01-02T15:04:05.000Z07:00"), level, msg)
	_, _ = l.w.Write([]byte(line))
}

// Info, Warn, Error write a leveled, timestamped line. Debug is the
// catch-all level used for compositor-frame-loop chatter.
func (l *Logger) Info(format string, args ...any)  { l.write("INFO", format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.write("WARN", format, args...) }
func (l *Logger) Error(format string, args ...any) { l.write("ERROR", format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.write("DEBUG", format, args...) }
