package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileSource is the default Source: a JSON record at a fixed path, watched
// with fsnotify so external callers (the config dialog, the lock-screen
// PIN setup flow) see reloads without polling. The on-disk format itself
// is outside the core's concern (spec.md §1 Non-goals); this is the
// reference collaborator the core's Source interface is shaped against.
type FileSource struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewFileSource returns a FileSource rooted at path. The file need not
// exist yet; Load returns Default() until Save is first called.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/term39/config.json, falling back to
// the user config dir.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "term39", "config.json")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "term39", "config.json")
	}
	return "term39-config.json"
}

// Load reads and unmarshals the config file, returning Default() if it
// doesn't exist yet.
func (f *FileSource) Load() (Config, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", f.path, err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", f.path, err)
	}
	return c, nil
}

// Save marshals and writes c to the config file, creating parent
// directories as needed.
func (f *FileSource) Save(c Config) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", f.path, err)
	}
	return nil
}

// Watch starts an fsnotify watch on the config file's directory (the file
// itself may not exist yet, and editors commonly replace-via-rename) and
// emits a freshly-loaded Config on every write/create event that targets
// the config path.
func (f *FileSource) Watch() (<-chan Config, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: new watcher: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.Close()
		return nil, fmt.Errorf("config: mkdir: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", dir, err)
	}
	f.watcher = w

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(f.path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := f.Load()
				if err != nil {
					continue
				}
				select {
				case out <- cfg:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}

// Close stops the fsnotify watcher, if one was started.
func (f *FileSource) Close() error {
	if f.watcher == nil {
		return nil
	}
	return f.watcher.Close()
}
