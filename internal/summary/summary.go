// Package summary formats the Batch Driver's aggregate Summary and
// per-testset failure list into the human-readable report printed at
// the end of a run (§6's "summary formatter" external collaborator).
package summary

import (
	"fmt"
	"io"

	"github.com/mrz1836/taprun/pkg/harness"
)

// Write renders s to w: one line per failing testset, followed by the
// aggregate totals line.
func Write(w io.Writer, s harness.Summary) {
	for _, f := range s.Failures {
		_, _ = fmt.Fprintf(w, "FAIL %s: %s\n", f.File, f.Verdict.Summary)
	}

	verdict := "PASS"
	if !s.Success() {
		verdict = "FAIL"
	}
	_, _ = fmt.Fprintf(w, "%s: %d tests, %d passed, %d failed, %d skipped, %d aborted\n",
		verdict, s.Total, s.Passed, s.Failed, s.Skipped, s.Aborted)
}

// ExitCode maps a Summary to a process exit status: 0 on overall
// success, 1 otherwise, matching the harness's use as a build-system
// gate (§1).
func ExitCode(s harness.Summary) int {
	if s.Success() {
		return 0
	}
	return 1
}
