// Package supervisor owns the child-process lifecycle for one test
// executable: spawning it with its stdout connected to a pipe, optionally
// merging stderr, and classifying the exit disposition once the child is
// reaped (§4.2).
package supervisor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Reserved child-side exit codes for setup failures that happen before
// the child ever gets to run a test, collide-free with plausible test
// exit codes.
const (
	ExitCodeDupFailed      = 100
	ExitCodeExecFailed     = 101
	ExitCodeNullSinkFailed = 102
)

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithCaptureStderr merges the child's stderr into the same pipe as
// stdout instead of redirecting it to the null sink.
func WithCaptureStderr(capture bool) Option {
	return func(s *Supervisor) { s.captureStderr = capture }
}

// WithEnv appends extra environment variables (e.g. SOURCE, BUILD) on
// top of the parent's inherited environment.
func WithEnv(env []string) Option {
	return func(s *Supervisor) { s.extraEnv = env }
}

// Supervisor spawns a single test executable and owns its pipe and PID
// until Wait is called.
type Supervisor struct {
	captureStderr bool
	extraEnv      []string

	cmd *exec.Cmd
}

// New creates a Supervisor with the given options.
func New(opts ...Option) *Supervisor {
	s := &Supervisor{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches path with no arguments, connecting its stdout to an
// anonymous pipe and returning the read end to the caller. stderr is
// either merged into the same pipe (captureStderr) or redirected to the
// OS null sink. A fork or pipe failure here is fatal to the whole
// harness process, per §4.2 - it is returned unwrapped-severity to the
// caller, who is expected to abort the batch.
func (s *Supervisor) Start(path string) (stdout io.ReadCloser, err error) {
	cmd := exec.Command(path) //nolint:gosec // path is resolved by the harness's own test locator, not attacker input

	cmd.Env = os.Environ()
	if len(s.extraEnv) > 0 {
		cmd.Env = append(cmd.Env, s.extraEnv...)
	}

	stdout, err = cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("supervisor: failed to dup stdout for %s: %w", path, err)
	}

	if s.captureStderr {
		cmd.Stderr = cmd.Stdout
	} else {
		null, nerr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if nerr != nil {
			return nil, fmt.Errorf("supervisor: failed to open null sink for %s: %w", path, nerr)
		}
		cmd.Stderr = null
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("supervisor: failed to start %s: %w", path, err)
	}

	s.cmd = cmd
	return stdout, nil
}

// Wait blocks until the child exits and returns its final
// *os.ProcessState, the same type the Testset Analyzer inspects to
// classify the exit disposition. The stdout pipe must already have
// reached EOF (be fully drained) before calling Wait, or the child may
// block writing to a full pipe.
func (s *Supervisor) Wait() (*os.ProcessState, error) {
	err := s.cmd.Wait()
	state := s.cmd.ProcessState
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok { //nolint:errorlint // ExitError carries the ProcessState we already captured above
			return state, nil
		}
		return state, fmt.Errorf("supervisor: wait failed: %w", err)
	}
	return state, nil
}

// PID returns the child's process ID, valid only after a successful Start.
func (s *Supervisor) PID() int {
	if s.cmd == nil || s.cmd.Process == nil {
		return -1
	}
	return s.cmd.Process.Pid
}
