//go:build darwin || freebsd || netbsd || openbsd

package term

import (
	"os/exec"
	"strconv"
	"strings"
)

// foregroundProcessName shells out to ps(1), the same portable approach the
// pack uses on non-Linux BSD-family kernels where /proc isn't guaranteed to
// exist (or is a Linux-compat shim not worth depending on).
func foregroundProcessName(pid int) string {
	tpgid, ok := psTpgid(pid)
	if !ok {
		return ""
	}
	out, err := exec.Command("ps", "-o", "comm=", "-p", strconv.Itoa(tpgid)).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func psTpgid(pid int) (int, bool) {
	out, err := exec.Command("ps", "-o", "tpgid=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
