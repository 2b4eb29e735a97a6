package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alejandroqh/term39/internal/config"
	"github.com/alejandroqh/term39/internal/session"
)

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func newSessionsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect the saved desktop session",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file path; empty uses the platform default")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the windows recorded in the saved session",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSessionsList(configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the saved session file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSessionsClear(configPath)
		},
	})

	return cmd
}

func resolveSessionPath(configPath string) (string, error) {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.NewFileSource(cfgPath).Load()
	if err != nil {
		return "", fmt.Errorf("term39: load config: %w", err)
	}
	if cfg.SessionPath != "" {
		return cfg.SessionPath, nil
	}
	return filepath.Join(filepath.Dir(cfgPath), "session.json"), nil
}

func runSessionsList(configPath string) error {
	path, err := resolveSessionPath(configPath)
	if err != nil {
		return err
	}
	snap, err := session.Load(path)
	if err != nil {
		return fmt.Errorf("term39: no saved session at %s: %w", path, err)
	}

	if len(snap.Windows) == 0 {
		fmt.Println("No windows in saved session.")
		return nil
	}

	fmt.Printf("Session %s (%d window(s)):\n", snap.ID, len(snap.Windows))
	for _, w := range snap.Windows {
		status := "normal"
		switch {
		case w.IsMinimized:
			status = "minimized"
		case w.IsMaximized:
			status = "maximized"
		}
		fmt.Printf("  #%-3d %-20q %3dx%-3d at (%d,%d) %s  cpu=%.1f%% rss=%dKB\n",
			w.ID, w.Title, w.W, w.H, w.X, w.Y, status, w.CPUPercent, w.MemRSS/1024)
	}
	return nil
}

func runSessionsClear(configPath string) error {
	path, err := resolveSessionPath(configPath)
	if err != nil {
		return err
	}
	if err := removeIfExists(path); err != nil {
		return fmt.Errorf("term39: clear session: %w", err)
	}
	fmt.Printf("Cleared session at %s\n", path)
	return nil
}
