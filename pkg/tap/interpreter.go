package tap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mrz1836/taprun/pkg/hctx"
)

var (
	planLineRe  = regexp.MustCompile(`^1\.\.(-?\d+)(.*)$`)
	skipPlanRe  = regexp.MustCompile(`(?i)^\s*#\s*skip\b[:\s]*(.*)$`)
	resultLine  = regexp.MustCompile(`(?i)^(not\s+)?ok\b(?:\s+(\d+))?(?:\s+[^#]*)?(?:#\s*(.*))?\s*$`)
	versionLine = regexp.MustCompile(`^TAP version\s+(\d+)\s*$`)
)

// minVersionForPragma is the lowest TAP version at which pragma lines are
// recognized (§4.4 step 4); below it a `pragma` line gets no special
// treatment and is handled like any other unrecognized line (step 8).
const minVersionForPragma = 13

// defaultTAPVersion is implied when the first line is not a version
// header at all (§4.4 step 3).
const defaultTAPVersion = 12

// Interpreter consumes one line at a time from the Line Reader and
// mutates a Testset accordingly. It never prints anything and never
// returns a Go error for malformed stream content: parsing failures are
// recorded on the Testset (Aborted/Reported/AbortMessage) for the Batch
// Driver or Analyzer to act on, per §7's "parsing errors never throw."
type Interpreter struct {
	ts      *Testset
	pragmas *Registry
	ctx     *hctx.Context
	onLine  func(line string)
}

// NewInterpreter builds an Interpreter bound to ts, using pragmas as the
// dispatch table for `pragma` directive lines and ctx as the harness
// context pragmas may toggle. onLine, if non-nil, receives every
// consumed line verbatim before any interpretation, matching the "all
// consumed lines are forwarded to the log sink" requirement.
func NewInterpreter(ts *Testset, pragmas *Registry, ctx *hctx.Context, onLine func(string)) *Interpreter {
	return &Interpreter{ts: ts, pragmas: pragmas, ctx: ctx, onLine: onLine}
}

// NewStandardRegistry builds a Registry with the two built-in pragmas
// that ship with the harness itself, wired against ctx: `strict` and
// `readblock`. Callers may Register additional pragmas on the returned
// Registry before the first Consume call.
func NewStandardRegistry(ctx *hctx.Context) *Registry {
	r := NewRegistry()
	r.Register("strict", NewBoolToggle(&ctx.Strict), nil)
	r.Register("readblock", NewBoolToggle(&ctx.ReadBlock), nil)
	return r
}

// Consume interprets one line read from the child's stdout. hadNewline
// reports whether the Line Reader terminated the line with a newline
// (false for a line the reader cut off at its buffer limit and for a
// partial fragment at end of stream).
func (ip *Interpreter) Consume(line string, hadNewline bool) {
	ts := ip.ts
	if ip.onLine != nil {
		ip.onLine(line)
	}

	// Step 1: Bail-out takes priority over everything else, including
	// an incomplete trailing line.
	if idx := strings.Index(line, "Bail out!"); idx >= 0 {
		reason := strings.TrimSpace(line[idx+len("Bail out!"):])
		ts.abort(reason)
		return
	}

	// Step 2: Incomplete line (reader ran out of buffer before a
	// newline). Logged above, otherwise ignored entirely - no counters
	// change and no plan/version state is touched.
	if !hadNewline {
		return
	}

	// Step 3: TAP version header, first line only.
	if ts.TAPVersion == 0 {
		if m := versionLine.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < minVersionForPragma {
				ts.abort(fmt.Sprintf("Invalid TAP version: %s", m[1]))
				return
			}
			ts.TAPVersion = n
			return
		}
		ts.TAPVersion = defaultTAPVersion
		// falls through: this line is reinterpreted under the
		// remaining steps as ordinary content.
	}

	// Step 4: Pragma lines, only once a version >= 13 has been seen.
	if ts.TAPVersion >= minVersionForPragma {
		if rest, ok := pragmaBody(line); ok {
			for _, item := range ParsePragmaItems(rest) {
				if !ip.pragmas.Dispatch(item) {
					ts.abort("invalid pragma")
					return
				}
			}
			ip.pragmas.Check(line)
			return
		}
	}

	// Step 5: Diagnostic comment lines.
	if trimmed := strings.TrimLeft(line, " \t"); strings.HasPrefix(trimmed, "#") {
		return
	}

	// Step 6: Plan lines.
	if strings.HasPrefix(line, "1..") {
		ip.consumePlan(line)
		return
	}

	// Step 7: Test result lines.
	if m := resultLine.FindStringSubmatch(line); m != nil {
		ip.consumeResult(m)
		return
	}

	// Step 8: anything else falls outside the recognized TAP grammar.
	// Lenient parsing (the default) tolerates it as harness chatter;
	// strict mode (§4.3 "reject lax outputs as errors") treats an
	// unrecognized line as a stream error instead of silently dropping
	// it.
	if ip.ctx.Strict {
		ts.abort(fmt.Sprintf("unrecognized line: %s", line))
		return
	}
}

// pragmaBody reports whether line's first non-whitespace token is the
// literal "pragma", returning the remainder of the line after that
// token.
func pragmaBody(line string) (rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	const kw = "pragma"
	if !strings.HasPrefix(trimmed, kw) {
		return "", false
	}
	after := trimmed[len(kw):]
	if after != "" && !strings.HasPrefix(after, " ") && !strings.HasPrefix(after, "\t") {
		// e.g. "pragmatic" is not the pragma keyword.
		return "", false
	}
	return strings.TrimSpace(after), true
}

func (ip *Interpreter) consumePlan(line string) {
	ts := ip.ts
	m := planLineRe.FindStringSubmatch(line)
	if m == nil {
		ts.abort("invalid test count")
		return
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		ts.abort("invalid test count")
		return
	}

	if n == 0 {
		if sm := skipPlanRe.FindStringSubmatch(m[2]); sm != nil {
			ts.AllSkipped = true
			ts.Aborted = true
			ts.Count = 0
			ts.Passed, ts.Failed, ts.Skipped = 0, 0, 0
			ts.Reason = strings.TrimSpace(sm[1])
			return
		}
		ts.abort("invalid test count")
		return
	}
	if n < 0 {
		ts.abort("invalid test count")
		return
	}

	switch ts.Plan {
	case PlanInit:
		ts.growTo(n)
		ts.Count = n
		ts.Plan = PlanFirst
	case PlanPending:
		if n < ts.Count {
			ts.abort(fmt.Sprintf("invalid test number %d", n))
			return
		}
		ts.growTo(n)
		ts.Count = n
		ts.Plan = PlanFinal
	case PlanFirst, PlanFinal:
		ts.abort("multiple plans")
	}
}

func (ip *Interpreter) consumeResult(m []string) {
	ts := ip.ts
	isNotOk := m[1] != ""

	var n int
	if m[2] == "" {
		n = ts.Current + 1
	} else {
		parsed, err := strconv.Atoi(m[2])
		if err != nil {
			ts.abort("invalid test number")
			return
		}
		n = parsed
	}
	if n < 1 {
		ts.abort(fmt.Sprintf("invalid test number %d", n))
		return
	}

	switch ts.Plan {
	case PlanFirst, PlanFinal:
		if n > ts.Count {
			ts.abort(fmt.Sprintf("invalid test number %d", n))
			return
		}
	default: // PlanInit, PlanPending
		ts.Plan = PlanPending
		if n > ts.Count {
			ts.Count = n
		}
		ts.growTo(n)
	}

	if ts.resultAt(n) != Invalid {
		ts.abort(fmt.Sprintf("duplicate test number %d", n))
		return
	}

	status := Pass
	if isNotOk {
		status = Fail
	}
	if directive := strings.TrimSpace(m[3]); directive != "" {
		word := strings.ToLower(strings.Fields(directive)[0])
		switch {
		case strings.HasPrefix(word, "skip"):
			status = Skip
		case strings.HasPrefix(word, "todo"):
			// A todo-directed failure is the expected outcome and
			// does not count against the run; a todo-directed pass
			// is an unexpected pass and is flagged as a failure
			// (§9 Open Question, resolved in DESIGN.md).
			if isNotOk {
				status = Skip
			} else {
				status = Fail
			}
		}
	}

	ts.setResult(n, status)
}
