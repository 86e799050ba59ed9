// Package testlist reads the newline-delimited test-list file (§6):
// one logical test name per line, blank lines and "#" comments ignored,
// each non-comment line capped at a maximum length.
package testlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrz1836/taprun/pkg/tap"
)

// maxLineLength rejects pathologically long lines outright rather than
// silently truncating a test name.
const maxLineLength = 1024

// Read parses path and returns one empty Testset skeleton per
// non-comment, non-blank line, in file order.
func Read(path string) ([]*tap.Testset, error) {
	f, err := os.Open(path) //nolint:gosec // path is an operator-supplied CLI argument
	if err != nil {
		return nil, fmt.Errorf("testlist: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parse(f)
}

func parse(r io.Reader) ([]*tap.Testset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	var sets []*tap.Testset
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sets = append(sets, tap.New(line))
	}
	if err := scanner.Err(); err != nil {
		// lineNo counts only the lines scanned successfully; the line
		// that failed is the next one.
		return nil, fmt.Errorf("testlist: error at line %d: %w", lineNo+1, err)
	}
	return sets, nil
}
