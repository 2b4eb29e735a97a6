//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package term

import "github.com/shirou/gopsutil/v4/process"

// foregroundProcessName has no tpgid-walking implementation on this
// platform; gopsutil gives us the PTY-owning process's own name as a
// portable (if less precise) stand-in, rather than reporting nothing.
func foregroundProcessName(pid int) string {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}
