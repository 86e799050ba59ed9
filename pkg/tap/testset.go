package tap

import "os"

// initialCapacity is the starting size for the dynamically grown results
// slice, per §9's "Variable-length results with geometric growth" note.
const initialCapacity = 32

// Testset is the complete parser state for one test executable. It is
// constructed empty by the Batch Driver from a logical test name,
// mutated exclusively by the Interpreter while the child runs, and
// finally consumed by the Analyzer.
type Testset struct {
	// File is the caller-supplied logical name.
	File string
	// Path is the resolved executable path, filled by the external
	// locator before the Supervisor spawns the child.
	Path string

	Plan      PlanStatus
	Count     int // expected number of tests; 0 until a plan or result is seen, then grown by result numbers until a plan arrives
	Allocated int // capacity of Results
	Current   int // last test number observed

	Results []Status // length Allocated, indexed by test number - 1

	Passed  int
	Failed  int
	Skipped int

	Aborted    bool
	Reported   bool
	AllSkipped bool
	Reason     string

	// AbortMessage is the canned "ABORTED (...)" diagnostic produced the
	// instant a stream-abort condition (§4.4, §7 "Stream abort
	// (reported)") is detected. Nothing prints it at that point; for a
	// Reported testset the Analyzer returns it unchanged as the verdict
	// summary, so it is reported exactly once.
	AbortMessage string

	// TAPVersion is 0 until the first line is inspected, then either the
	// parsed `TAP version N` value or the implied default of 12.
	TAPVersion int

	// Status is the child's wait status, filled by the Supervisor after
	// the pipe reaches EOF and the process is reaped.
	Status *os.ProcessState

	// Length is a cosmetic cursor width consumed by an external progress
	// printer; the core never reads it back.
	Length int
}

// New constructs an empty Testset for the given logical test name.
func New(file string) *Testset {
	return &Testset{File: file}
}

// growTo ensures Results has capacity for at least n tests (1-indexed),
// doubling geometrically from initialCapacity as described in §9, and
// fills any newly added slots with Invalid (invariant 2).
func (t *Testset) growTo(n int) {
	if n <= t.Allocated {
		return
	}
	newCap := t.Allocated
	if newCap == 0 {
		newCap = initialCapacity
	}
	for newCap < n {
		newCap *= 2
	}
	grown := make([]Status, newCap)
	copy(grown, t.Results)
	t.Results = grown
	t.Allocated = newCap
}

// setResult records the outcome of test number n (1-indexed), updating
// the running counters. The caller (the Interpreter) is responsible for
// validating n and for rejecting duplicates before calling this.
func (t *Testset) setResult(n int, status Status) {
	t.growTo(n)
	t.Results[n-1] = status
	switch status {
	case Pass:
		t.Passed++
	case Fail:
		t.Failed++
	case Skip:
		t.Skipped++
	case Invalid:
		// never recorded directly
	}
	t.Current = n
}

// resultAt returns the status of test number n (1-indexed), or Invalid
// if n falls outside the allocated range.
func (t *Testset) resultAt(n int) Status {
	if n < 1 || n > t.Allocated {
		return Invalid
	}
	return t.Results[n-1]
}

// abort marks the testset as a reported stream abort (§7's "Stream
// abort (reported)" class) and formats the canned diagnostic. An empty
// reason yields the bare "ABORTED" message, satisfying the bail-out
// testable property that an empty trailer prints no reason.
func (t *Testset) abort(reason string) {
	t.Aborted = true
	t.Reported = true
	if reason == "" {
		t.AbortMessage = "ABORTED"
	} else {
		t.AbortMessage = "ABORTED (" + reason + ")"
	}
}
