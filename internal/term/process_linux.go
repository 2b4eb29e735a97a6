//go:build linux

package term

import (
	"bytes"
	"os"
	"strconv"
	"strings"
)

// foregroundProcessName reads /proc/<pid>/stat to find the tpgid field (the
// foreground process group of the controlling terminal), then resolves that
// pgid to a name via /proc/<tpgid>/comm.
func foregroundProcessName(pid int) string {
	tpgid, ok := readTpgid(pid)
	if !ok || tpgid <= 0 {
		return ""
	}
	data, err := os.ReadFile("/proc/" + strconv.Itoa(tpgid) + "/comm")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readTpgid parses field 8 of /proc/<pid>/stat. The comm field (field 2) is
// parenthesized and may itself contain spaces or parens, so the scan starts
// after the last ')' rather than naively splitting on whitespace.
func readTpgid(pid int) (int, bool) {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return 0, false
	}
	close := bytes.LastIndexByte(data, ')')
	if close < 0 || close+2 >= len(data) {
		return 0, false
	}
	fields := strings.Fields(string(data[close+2:]))
	// After comm, fields are: state(1) ppid(2) pgrp(3) session(4) tty_nr(5)
	// tpgid(6) ... (1-indexed relative to this slice).
	const tpgidIndex = 5
	if len(fields) <= tpgidIndex {
		return 0, false
	}
	n, err := strconv.Atoi(fields[tpgidIndex])
	if err != nil {
		return 0, false
	}
	return n, true
}
