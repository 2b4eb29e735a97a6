// Package config defines the Configuration external-collaborator contract
// described in spec.md §6. Parsing a specific file format and persisting
// it is out of scope for the compositing core (spec.md §1): config.go
// defines the record the core reads via getters/writes via setters,
// sensible defaults, and the Source interface a loader/watcher satisfies;
// file_source.go's FileSource is one such loader, reading and saving a
// JSON file and watching it with fsnotify.
package config

// Theme names a named color theme; the theme's actual palette lives
// outside the core, per spec.md §1's explicit Non-goals.
type Theme string

// CharsetMode selects which glyph set chrome drawing uses.
type CharsetMode int

const (
	CharsetUnicodeDouble CharsetMode = iota
	CharsetUnicodeSingle
	CharsetASCII
)

// LockscreenAuthMode selects how the lock screen authenticates a user.
type LockscreenAuthMode int

const (
	AuthNone LockscreenAuthMode = iota
	AuthPIN
	AuthOS
)

// FramebufferConfig holds the options specific to the Linux framebuffer
// rendering backend.
type FramebufferConfig struct {
	TextModeName string // e.g. "80x25", resolved against internal/render's mode table
	PixelScale   int    // 0 means "auto": largest integer scale that fits the screen
	MouseEnabled bool
	FontName     string // empty means "auto-select by cell size"
}

// Config is the full recognized configuration record.
type Config struct {
	Theme             Theme
	Charset           CharsetMode
	BackgroundChar    rune
	AutoTiling        bool
	TilingGaps        bool
	ShowDateInClock   bool
	AutoSaveSession   bool
	LockscreenEnabled bool
	LockscreenAuth    LockscreenAuthMode
	PINHash           string
	PINSalt           string
	ShellPath         string
	ShellArgs         []string
	Framebuffer       FramebufferConfig
	MaxScrollback     int
	SessionPath       string
	SuppressLockOnNoExit bool
}

// Default returns the configuration a fresh install starts with.
func Default() Config {
	return Config{
		Theme:           "classic",
		Charset:         CharsetUnicodeDouble,
		BackgroundChar:  ' ',
		AutoTiling:      false,
		TilingGaps:      false,
		ShowDateInClock: true,
		AutoSaveSession: true,
		LockscreenEnabled: false,
		LockscreenAuth:  AuthNone,
		ShellPath:       "",
		Framebuffer: FramebufferConfig{
			TextModeName: "80x25",
			PixelScale:   0,
			MouseEnabled: true,
		},
		MaxScrollback: 1000,
	}
}

// Source is the contract an external config loader/persister satisfies:
// Load reads the on-disk record (or returns Default() if none exists yet),
// Save persists mutations, and Watch is driven by an fsnotify.Watcher on
// the config file's path, delivering a fresh Load()'d Config whenever the
// file changes on disk.
type Source interface {
	Load() (Config, error)
	Save(Config) error
	Watch() (<-chan Config, error)
	Close() error
}
