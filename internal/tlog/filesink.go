package tlog

import (
	"fmt"
	"io"
	"os"
)

// FileSink implements the §6 external Logger contract:
//
//	open(name, append) / write(fmt, …) / writeln(s) / close()
//
// Special names "stdout" and "stderr" bind the sink directly to the
// corresponding process stream without ever closing it, for when the
// caller wants the Batch Driver's consumed TAP lines echoed rather than
// filed away.
type FileSink struct {
	w      io.Writer
	closer io.Closer
}

// OpenFileSink opens name for logging. If append is false the file is
// truncated; if true, output is appended. "stdout"/"stderr" bind to the
// corresponding os.File without being closable.
func OpenFileSink(name string, appendMode bool) (*FileSink, error) {
	switch name {
	case "stdout":
		return &FileSink{w: os.Stdout}, nil
	case "stderr":
		return &FileSink{w: os.Stderr}, nil
	}

	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(name, flags, 0o644) //nolint:gosec // harness log file, caller controls path
	if err != nil {
		return nil, fmt.Errorf("open log sink %q: %w", name, err)
	}
	return &FileSink{w: f, closer: f}, nil
}

// Write formats and writes a line to the sink. Write errors are reported
// to the caller but are non-fatal to the harness (§7: logging is
// best-effort).
func (s *FileSink) Write(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.w, format, args...)
	return err
}

// Writeln writes s followed by a newline, passing it through unmodified
// (the caller is responsible for newline-safe escaping of embedded
// control characters, per §4.4's "forwarded verbatim" requirement).
func (s *FileSink) Writeln(line string) error {
	_, err := fmt.Fprintln(s.w, line)
	return err
}

// Close closes the underlying file, if any. Closing a stdout/stderr
// sink is a no-op.
func (s *FileSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
