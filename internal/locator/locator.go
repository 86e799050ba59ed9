// Package locator implements the external test locator described in
// spec §6: given a logical test name, search a fixed set of candidate
// base directories and suffixes for the first regular, executable file.
package locator

import (
	"os"
	"path/filepath"
)

// suffixes are tried, in order, against each candidate base directory.
var suffixes = []string{"-t", ".t", ""}

// Resolve searches ".", build, and source (each combined with every
// suffix) for name, returning the first match that is a regular file
// with at least one executable bit set. If nothing matches, it returns
// name unchanged, on the theory that the caller (the Supervisor) will
// surface a clearer "exec failed" error than the locator could.
func Resolve(name, source, build string) string {
	bases := []string{".", build, source}
	for _, base := range bases {
		if base == "" {
			continue
		}
		for _, suffix := range suffixes {
			candidate := filepath.Join(base, name+suffix)
			if isRegularExecutable(candidate) {
				return candidate
			}
		}
	}
	return name
}

func isRegularExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode()&0o111 != 0
}
