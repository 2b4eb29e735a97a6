package psf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SearchPaths lists the directories console fonts are conventionally
// installed under, Linux first then the BSD layouts.
var SearchPaths = []string{
	"/usr/share/consolefonts",
	"/usr/share/kbd/consolefonts",
	"/usr/lib/kbd/consolefonts",
	"/lib/kbd/consolefonts",
	"/usr/local/share/consolefonts",
	"/usr/share/syscons/fonts",
	"/usr/local/share/syscons/fonts",
}

// ValidName reports whether name is an acceptable font name: 1..128
// characters drawn only from [A-Za-z0-9._-], which rules out path
// separators and any ".." traversal attempt by construction.
func ValidName(name string) bool {
	if len(name) == 0 || len(name) > 128 {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

// Find resolves name to an on-disk font file by trying name,
// name+".psf", name+".psf.gz", name+".psfu", and name+".psfu.gz" under
// each of SearchPaths, returning the first that exists. It re-validates
// that the symlink-resolved path is still inside the (symlink-resolved)
// directory it was joined to, rejecting any candidate that escapes via
// symlink shenanigans.
func Find(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("psf: invalid font name %q", name)
	}

	suffixes := []string{"", ".psf", ".psf.gz", ".psfu", ".psfu.gz"}
	for _, dir := range SearchPaths {
		for _, suffix := range suffixes {
			candidate := filepath.Join(dir, name+suffix)
			if !withinBase(dir, candidate) {
				continue
			}
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				realDir, errDir := filepath.EvalSymlinks(dir)
				realPath, errPath := filepath.EvalSymlinks(candidate)
				if errDir != nil || errPath != nil || !withinBase(realDir, realPath) {
					continue
				}
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("psf: font %q not found in search paths", name)
}

// withinBase reports whether the cleaned form of candidate lies inside
// base. The comparison is textual; Find applies it to both the joined
// path and its symlink-resolved form.
func withinBase(base, candidate string) bool {
	cleanBase := filepath.Clean(base)
	cleanCandidate := filepath.Clean(candidate)
	rel, err := filepath.Rel(cleanBase, cleanCandidate)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Open resolves name via Find and parses it.
func Open(name string) (*Font, error) {
	path, err := Find(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("psf: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}
