package term

import (
	"os"
	"os/exec"
	"runtime"
)

// defaultShell picks the platform default shell the same way the teacher's
// detectShell does: $SHELL first, then a platform-specific candidate list,
// falling back to a guaranteed-present shell.
func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" && shellUsable(sh) {
		return sh
	}
	if runtime.GOOS == "windows" {
		for _, candidate := range []string{"pwsh.exe", "powershell.exe", "cmd.exe"} {
			if path, err := exec.LookPath(candidate); err == nil {
				return path
			}
		}
		return "cmd.exe"
	}
	for _, candidate := range []string{"/bin/bash", "/bin/zsh", "/bin/fish", "/bin/sh"} {
		if shellUsable(candidate) {
			return candidate
		}
	}
	return "/bin/sh"
}

// shellUsable validates a POSIX shell path exists and is executable before
// spawn; an empty or invalid configured shell falls back to the platform
// default rather than failing window creation.
func shellUsable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0111 != 0
}

// resolveShell returns configuredShell if it passes shellUsable, otherwise
// the platform default.
func resolveShell(configuredShell string) string {
	if configuredShell != "" && shellUsable(configuredShell) {
		return configuredShell
	}
	return defaultShell()
}
