// Package hctx holds the process-wide mutable toggles the harness
// threads through the Interpreter and Line Reader, per spec.md §9's
// "bundle them into an explicit harness context value" guidance —
// deliberately not package-level globals.
package hctx

// Context bundles the knobs that are runtime-configurable both via CLI
// defaults and via in-band pragma, with per-testset reset semantics
// (§3 invariant 6, §4.3).
type Context struct {
	// Strict enforces strict TAP: lax constructs that would otherwise be
	// tolerated are treated as stream aborts.
	Strict bool

	// ReadBlock, when true, makes the Line Reader treat the child pipe
	// as blocking with unbounded retry; when false, non-blocking with a
	// bounded retry budget of BlockingTime seconds.
	ReadBlock bool

	// BlockingTime is the retry budget (in one-second increments) the
	// Line Reader honors under non-blocking policy.
	BlockingTime int

	// CaptureStderr merges the child's stderr into the same pipe as
	// stdout when true; otherwise stderr is redirected to a null sink.
	CaptureStderr bool
}

// DefaultBlockingTime matches c-tap-harness's historical default retry
// budget: roughly a minute of 1-second polls before giving up on a
// stalled, non-blocking pipe.
const DefaultBlockingTime = 60

// NewDefault returns a Context seeded with the harness's CLI defaults.
func NewDefault() *Context {
	return &Context{
		Strict:        false,
		ReadBlock:     false,
		BlockingTime:  DefaultBlockingTime,
		CaptureStderr: false,
	}
}
