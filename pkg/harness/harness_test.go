package harness

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/mrz1836/taprun/internal/tlog"
	"github.com/mrz1836/taprun/pkg/harness/mocks"
	"github.com/mrz1836/taprun/pkg/hctx"
	"github.com/mrz1836/taprun/pkg/tap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubSupervisor is a minimal hand-rolled ChildSupervisor backed by a
// fixed TAP stream, used where a full gomock expectation set would be
// more ceremony than the assertion needs.
type stubSupervisor struct {
	body     string
	exitCode int
}

func (s stubSupervisor) Start(string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s stubSupervisor) Wait() (*os.ProcessState, error) {
	cmd := exec.Command("sh", "-c", "exit "+itoa(s.exitCode))
	err := cmd.Run()
	if s.exitCode == 0 {
		return cmd.ProcessState, err
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return cmd.ProcessState, nil
	}
	return cmd.ProcessState, err
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}

func quietLogger() tlog.Logger {
	l := tlog.NewCLILogger()
	l.SetOutput(io.Discard)
	return l
}

func TestDriverRunSingleCleanPass(t *testing.T) {
	factory := func() ChildSupervisor {
		return stubSupervisor{body: "1..2\nok 1\nok 2\n", exitCode: 0}
	}
	d := New(hctx.NewDefault(), quietLogger(), factory, nil)

	ts := tap.New("ok.t")
	ts.Path = "ok.t"
	summary, err := d.Run([]*tap.Testset{ts})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.True(t, summary.Success())
	assert.Empty(t, summary.Failures)
}

func TestDriverRunRecordsFailure(t *testing.T) {
	factory := func() ChildSupervisor {
		return stubSupervisor{body: "1..2\nok 1\nnot ok 2\n", exitCode: 0}
	}
	d := New(hctx.NewDefault(), quietLogger(), factory, nil)

	ts := tap.New("bad.t")
	ts.Path = "bad.t"
	summary, err := d.Run([]*tap.Testset{ts})

	require.NoError(t, err)
	assert.False(t, summary.Success())
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "bad.t", summary.Failures[0].File)
}

func TestDriverRunAllSkippedDoesNotCountAsAborted(t *testing.T) {
	factory := func() ChildSupervisor {
		return stubSupervisor{body: "1..0 # skip no platform support\n", exitCode: 0}
	}
	d := New(hctx.NewDefault(), quietLogger(), factory, nil)

	ts := tap.New("skip.t")
	ts.Path = "skip.t"
	summary, err := d.Run([]*tap.Testset{ts})

	require.NoError(t, err)
	assert.True(t, ts.Aborted)
	assert.True(t, ts.AllSkipped)
	assert.Equal(t, 0, summary.Aborted)
	assert.True(t, summary.Success())
	assert.Empty(t, summary.Failures)
}

func TestDriverRunFatalStartErrorStopsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSup := mocks.NewMockChildSupervisor(ctrl)
	mockSup.EXPECT().Start(gomock.Any()).Return(nil, errors.New("fork failed"))

	factory := func() ChildSupervisor { return mockSup }
	d := New(hctx.NewDefault(), quietLogger(), factory, nil)

	ts := tap.New("x.t")
	ts.Path = "x.t"
	_, err := d.Run([]*tap.Testset{ts})
	require.Error(t, err)
}

func TestDriverForwardsLinesToSink(t *testing.T) {
	var seen []string
	factory := func() ChildSupervisor {
		return stubSupervisor{body: "1..1\nok 1\n", exitCode: 0}
	}
	d := New(hctx.NewDefault(), quietLogger(), factory, func(line string) {
		seen = append(seen, line)
	})

	ts := tap.New("t.t")
	ts.Path = "t.t"
	_, err := d.Run([]*tap.Testset{ts})
	require.NoError(t, err)
	assert.Equal(t, []string{"1..1", "ok 1"}, seen)
}
