package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alejandroqh/term39/internal/compositor"
	"github.com/alejandroqh/term39/internal/config"
	"github.com/alejandroqh/term39/internal/input"
	"github.com/alejandroqh/term39/internal/keymode"
	"github.com/alejandroqh/term39/internal/render"
	"github.com/alejandroqh/term39/internal/session"
	"github.com/alejandroqh/term39/internal/term"
	"github.com/alejandroqh/term39/internal/term39log"
	"github.com/alejandroqh/term39/internal/termwindow"
	"github.com/alejandroqh/term39/internal/wm"
)

// frameInterval targets the teacher's NormalFPS-equivalent cadence for a
// terminal-refresh loop: fast enough to feel live, slow enough not to spin.
const frameInterval = 16 * time.Millisecond

type runOptions struct {
	useFramebuffer bool
	fbDevice       string
	fbMode         string
	fbScale        int
	fbFont         string
	configPath     string
	logPath        string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the desktop",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runEngine(opts)
		},
	}
	cmd.Flags().BoolVar(&opts.useFramebuffer, "fb", false, "render to the Linux framebuffer device instead of the host terminal")
	cmd.Flags().StringVar(&opts.fbDevice, "fb-device", "/dev/fb0", "framebuffer device path (with --fb)")
	cmd.Flags().StringVar(&opts.fbMode, "fb-mode", "80x25", "text mode: 80x25, 80x50, or 132x43 (with --fb)")
	cmd.Flags().IntVar(&opts.fbScale, "fb-scale", 0, "pixel scale; 0 auto-fits the screen (with --fb)")
	cmd.Flags().StringVar(&opts.fbFont, "fb-font", "", "PSF console font name; empty auto-selects by cell size (with --fb)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "configuration file path; empty uses the platform default")
	cmd.Flags().StringVar(&opts.logPath, "debug-log", "", "debug log file path; empty disables logging")
	return cmd
}

func runEngine(opts *runOptions) error {
	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfgSource := config.NewFileSource(cfgPath)
	defer cfgSource.Close()
	cfg, err := cfgSource.Load()
	if err != nil {
		return fmt.Errorf("term39: load config: %w", err)
	}

	logger, err := term39log.Open(opts.logPath)
	if err != nil {
		return fmt.Errorf("term39: open debug log: %w", err)
	}
	defer logger.Close()
	logger.Info("term39 starting, fb=%v", opts.useFramebuffer)

	backend, err := openBackend(opts, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	cols, rows := backend.Dimensions()
	manager := wm.New(cols, rows)
	manager.AutoTiling = cfg.AutoTiling
	manager.TilingGaps = cfg.TilingGaps
	manager.MaxScrollback = cfg.MaxScrollback
	manager.ShellConfig = term.ShellConfig{Path: cfg.ShellPath, Args: cfg.ShellArgs}

	sessionPath := cfg.SessionPath
	if sessionPath == "" {
		sessionPath = filepath.Join(filepath.Dir(cfgPath), "session.json")
	}

	if cfg.AutoSaveSession {
		if snap, err := session.Load(sessionPath); err == nil {
			if err := session.RestoreInto(manager, snap, newShellFactory(manager)); err != nil {
				logger.Warn("restore session: %v", err)
			} else {
				logger.Info("restored %d window(s) from %s", len(snap.Windows), sessionPath)
			}
		}
	}

	if len(manager.Windows) == 0 {
		x, y := manager.NextCascadePosition(40, 12)
		if _, err := manager.CreateWindow(x, y, 40, 12, "shell", nil); err != nil {
			return fmt.Errorf("term39: create first window: %w", err)
		}
	}

	chain := &input.Chain{
		WM:      manager,
		KeyMode: &keymode.State{},
		DECCKM: func() bool {
			if w := manager.FocusedWindow(); w != nil {
				return w.Emulator.Grid().Modes().DECCKM
			}
			return false
		},
	}

	extLock := input.NewExternalLock()
	defer extLock.Stop()
	chain.ExternalLock = extLock.Poll
	chain.OnExternalLock = func() { logger.Info("locked via external signal") }

	events := buildEventSources(backend)
	defer events.stop()

	comp := compositor.New(backend, manager, logger)
	comp.Theme = termwindow.Theme{}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			logger.Info("shutting down")
			if cfg.AutoSaveSession {
				snap := session.Capture(manager)
				if err := session.Save(sessionPath, snap); err != nil {
					logger.Error("save session: %v", err)
				}
			}
			return nil
		case <-ticker.C:
		}

		for _, ev := range input.Pump(events.source) {
			if ev.Key != nil {
				chain.DispatchKey(*ev.Key)
			}
			if ev.Mouse != nil {
				chain.DispatchMouse(*ev.Mouse)
			}
		}

		if exited := manager.ProcessAllOutput(); len(exited) > 0 {
			for _, id := range exited {
				logger.Info("window %d exited", id)
			}
		}

		if err := comp.Frame(time.Now()); err != nil {
			return fmt.Errorf("term39: frame: %w", err)
		}
	}
}

func openBackend(opts *runOptions, cfg config.Config) (render.Backend, error) {
	if opts.useFramebuffer {
		mode, ok := render.TextModes[opts.fbMode]
		if !ok {
			return nil, fmt.Errorf("term39: unknown text mode %q", opts.fbMode)
		}
		fbFont := opts.fbFont
		if fbFont == "" {
			fbFont = cfg.Framebuffer.FontName
		}
		scale := opts.fbScale
		if scale == 0 {
			scale = cfg.Framebuffer.PixelScale
		}
		fb, err := render.OpenFramebuffer(opts.fbDevice, mode, scale, fbFont)
		if err != nil {
			return nil, fmt.Errorf("term39: open framebuffer: %w", err)
		}
		return fb, nil
	}
	host, err := render.DefaultHost()
	if err != nil {
		return nil, fmt.Errorf("term39: open host terminal: %w", err)
	}
	return host, nil
}

// newShellFactory returns the callback session.RestoreInto uses to spawn a
// window for each restored record, allocating its id from manager so the
// counter stays consistent with windows created after restore.
func newShellFactory(manager *wm.Manager) func(cols, rows int) (*termwindow.Window, error) {
	return func(cols, rows int) (*termwindow.Window, error) {
		id := manager.AllocateID()
		return termwindow.New(id, 0, 0, cols, rows, "", manager.MaxScrollback, nil, manager.ShellConfig)
	}
}
