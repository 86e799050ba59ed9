// Package harness implements the Batch Driver (§4.6): it iterates a
// list of pre-constructed Testsets, runs each one through a Child
// Supervisor, Line Reader, and TAP Interpreter, then reconciles the
// outcome with the Testset Analyzer and accumulates aggregate counters.
package harness

import (
	"fmt"
	"io"
	"os"

	"github.com/mrz1836/taprun/internal/tlog"
	"github.com/mrz1836/taprun/pkg/hctx"
	"github.com/mrz1836/taprun/pkg/reader"
	"github.com/mrz1836/taprun/pkg/tap"
)

// ChildSupervisor is the subset of *supervisor.Supervisor the Batch
// Driver depends on, narrowed to an interface so tests (and
// go.uber.org/mock-generated fakes) can substitute a child that never
// actually forks a process.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/child_supervisor.go -package=mocks . ChildSupervisor
type ChildSupervisor interface {
	Start(path string) (io.ReadCloser, error)
	Wait() (*os.ProcessState, error)
}

// SupervisorFactory builds one ChildSupervisor per testset run; a
// Supervisor is single-use (it owns exactly one child's cmd state).
type SupervisorFactory func() ChildSupervisor

// Result pairs one testset's verdict with its logical name, for the
// aggregate failure list.
type Result struct {
	File    string
	Verdict tap.Verdict
}

// Summary is the Batch Driver's final accounting across every testset.
type Summary struct {
	Total, Passed, Failed, Skipped, Aborted int
	Failures                                []Result
}

// Success reports overall batch success: no failed tests and no
// aborted testsets, matching §4.6's exit-status contract.
func (s Summary) Success() bool {
	return s.Failed == 0 && s.Aborted == 0
}

// Driver is the Batch Driver. It is not safe for concurrent use; the
// harness runs one testset at a time (§5).
type Driver struct {
	ctx      *hctx.Context
	Pragmas  *tap.Registry
	logger   tlog.Logger
	factory  SupervisorFactory
	lineSink func(line string)
}

// New builds a Driver. logger receives per-testset progress; factory
// produces a fresh ChildSupervisor for every testset; lineSink, if
// non-nil, is forwarded every line the Interpreter consumes (e.g. to an
// external file logger) per §4.4's "all consumed lines are forwarded
// verbatim" requirement.
func New(ctx *hctx.Context, logger tlog.Logger, factory SupervisorFactory, lineSink func(string)) *Driver {
	return &Driver{
		ctx:      ctx,
		Pragmas:  tap.NewStandardRegistry(ctx),
		logger:   logger,
		factory:  factory,
		lineSink: lineSink,
	}
}

// Run drives every testset in order, resolving each through the
// Supervisor + Line Reader + Interpreter + Analyzer pipeline, and
// returns the aggregate Summary. A fatal harness error (fork/pipe
// failure) aborts the remaining batch immediately and is returned as
// err; summary still reflects everything completed up to that point.
func (d *Driver) Run(testsets []*tap.Testset) (Summary, error) {
	var summary Summary
	for _, ts := range testsets {
		verdict, fatalErr := d.runOne(ts)
		summary.Total++
		summary.Passed += ts.Passed
		summary.Failed += ts.Failed
		summary.Skipped += ts.Skipped
		if ts.Aborted && !ts.AllSkipped {
			summary.Aborted++
		}
		if !verdict.Ok {
			summary.Failures = append(summary.Failures, Result{File: ts.File, Verdict: verdict})
		}
		d.logger.WithField("testset", ts.File).Info("%s", verdict.Summary)
		if fatalErr != nil {
			return summary, fatalErr
		}
	}
	return summary, nil
}

// runOne runs a single testset end to end.
func (d *Driver) runOne(ts *tap.Testset) (tap.Verdict, error) {
	d.Pragmas.ResetAll()

	sup := d.factory()
	stdout, err := sup.Start(ts.Path)
	if err != nil {
		return tap.Verdict{}, fmt.Errorf("harness: fatal error starting %s: %w", ts.File, err)
	}

	lr := reader.New(stdout, d.ctx)
	interp := tap.NewInterpreter(ts, d.Pragmas, d.ctx, d.lineSink)

	for {
		line, hadNewline, outcome := lr.ReadLine()
		if outcome == reader.IoError {
			d.logger.Warn("i/o error reading %s: treating as end of stream", ts.File)
			break
		}
		if line != "" || hadNewline {
			interp.Consume(line, hadNewline)
		}
		if ts.Aborted {
			drain(lr)
			break
		}
		if outcome == reader.EndOfStream {
			break
		}
	}

	_ = stdout.Close()
	state, err := sup.Wait()
	if err != nil {
		d.logger.Warn("wait failed for %s: %v", ts.File, err)
	}
	ts.Status = state

	return tap.Analyze(ts), nil
}

// drain reads and discards everything left on the pipe after an abort,
// so the child does not block writing to a full pipe while the parent
// has stopped reading (§4.6).
func drain(lr *reader.Reader) {
	for {
		_, _, outcome := lr.ReadLine()
		if outcome != reader.MoreAvailable {
			return
		}
	}
}
