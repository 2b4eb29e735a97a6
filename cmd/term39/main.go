// Command term39 is the CLI entrypoint for the compositing engine in
// internal/compositor: it bootstraps configuration, the Window Manager,
// a rendering backend (host terminal or Linux framebuffer), the input
// pipeline, and the session store, then runs the frame loop.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, the same three-variable set the teacher's build
// wires up via goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "term39",
		Short: "A DOS-styled terminal windowing desktop",
		Long: `term39 multiplexes several PTY-backed terminal windows onto one
screen, DOS-desktop style: draggable/resizable/snap-to-grid windows, a
keyboard-driven Window Mode, optional tiling, and a session store that
can save and restore the whole desktop across restarts.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSessionsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
