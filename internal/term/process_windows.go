//go:build windows

package term

import (
	"os/exec"
	"strconv"
	"strings"
)

// foregroundProcessName shells out to wmic, since Windows has no /proc and
// ConPTY (via go-pty) doesn't expose a foreground-process-group concept the
// way POSIX job control does; pid here is the immediate child's pid, which
// is the closest available analogue.
func foregroundProcessName(pid int) string {
	out, err := exec.Command("wmic", "process", "where", "ProcessId="+strconv.Itoa(pid), "get", "Name").Output()
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) < 2 {
		return ""
	}
	return strings.TrimSpace(lines[1])
}
