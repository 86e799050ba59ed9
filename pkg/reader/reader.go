// Package reader implements the harness's Line Reader: a byte-at-a-time
// reader over a child's stdout pipe that yields newline-terminated
// lines under either blocking or non-blocking retry policy (§4.1).
package reader

import (
	"errors"
	"io"
	"time"

	"github.com/mrz1836/taprun/pkg/hctx"
)

// Outcome is the result of one ReadLine call.
type Outcome int

const (
	// MoreAvailable means a full line was read and more input may follow.
	MoreAvailable Outcome = iota
	// EndOfStream means clean EOF, or the retry budget was exhausted
	// under non-blocking policy; the buffer may hold a partial
	// trailing line with no newline.
	EndOfStream
	// IoError means an unrecoverable read error occurred.
	IoError
)

// maxLineLength bounds a single line; one byte is reserved so the
// terminator check never has to special-case an exactly-full buffer.
const maxLineLength = 65536

// pollInterval is the read-deadline slice used to implement the
// non-blocking retry policy: each expired deadline counts as one
// second against blocking_time.
const pollInterval = time.Second

// deadliner is satisfied by *os.File, the concrete type returned by
// os.Pipe (and, transitively, exec.Cmd's stdout pipe on every
// platform this harness targets). Setting a short read deadline and
// treating its timeout as "would block" is how non-blocking polling
// is done in Go without reaching for raw syscalls.
type deadliner interface {
	SetReadDeadline(time.Time) error
}

// Reader pulls newline-terminated lines from an underlying io.Reader.
// Each ReadLine call starts a fresh line: a line cut off at the buffer
// limit is returned with hadNewline false, and the rest of it comes back
// from the next call as a line of its own.
type Reader struct {
	src io.Reader
	dl  deadliner // non-nil only when src supports read deadlines
	ctx *hctx.Context
	buf []byte
}

// New wraps src, an already-open descriptor, consulting ctx for the
// blocking-retry policy (BlockingTime, ReadBlock). When src supports
// SetReadDeadline (as *os.File does), the reader uses it to implement
// the bounded-retry non-blocking policy; otherwise it simply blocks on
// every read, equivalent to readblock = on.
func New(src io.Reader, ctx *hctx.Context) *Reader {
	r := &Reader{src: src, ctx: ctx, buf: make([]byte, 0, 256)}
	if dl, ok := src.(deadliner); ok {
		r.dl = dl
	}
	return r
}

// ReadLine returns the next line (without its trailing newline) and
// whether that line ended in a newline (false only for a buffer-full
// truncation or an end-of-stream partial fragment).
func (r *Reader) ReadLine() (line string, hadNewline bool, outcome Outcome) {
	r.buf = r.buf[:0]
	elapsed := 0
	one := make([]byte, 1)

	for {
		if r.dl != nil {
			if r.ctx.ReadBlock {
				_ = r.dl.SetReadDeadline(time.Time{})
			} else {
				_ = r.dl.SetReadDeadline(time.Now().Add(pollInterval))
			}
		}

		n, err := r.src.Read(one)
		if n == 1 {
			elapsed = 0
			if one[0] == '\n' {
				return string(r.buf), true, MoreAvailable
			}
			r.buf = append(r.buf, one[0])
			if len(r.buf) >= maxLineLength-1 {
				return string(r.buf), false, MoreAvailable
			}
			continue
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return string(r.buf), false, EndOfStream
		}
		if isTimeout(err) {
			if r.ctx.ReadBlock {
				// Blocking policy retries without limit.
				continue
			}
			elapsed++
			if elapsed >= r.ctx.BlockingTime {
				return string(r.buf), false, EndOfStream
			}
			continue
		}
		return string(r.buf), false, IoError
	}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
