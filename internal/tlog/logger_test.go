package tlog

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // test-only helper, path is a t.TempDir() file
}

func TestCLILoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewCLILogger()
	l.SetColorEnabled(false)
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestCLILoggerSuccessAndFailIgnoreLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewCLILogger()
	l.SetColorEnabled(false)
	l.SetOutput(&buf)
	l.SetLevel(LevelSilent)

	l.Success("all %d passed", 3)
	l.Fail("boom")

	out := buf.String()
	assert.Contains(t, out, "all 3 passed")
	assert.Contains(t, out, "boom")
}

func TestCLILoggerWithFieldsAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewCLILogger()
	l.SetColorEnabled(false)
	l.SetOutput(&buf)

	scoped := l.WithPrefix("batch").WithField("testset", "foo.t")
	scoped.Info("starting")

	out := buf.String()
	assert.True(t, strings.Contains(out, "[batch]"))
	assert.True(t, strings.Contains(out, "testset=foo.t"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelSilent, ParseLevel("silent"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestDefaultLoggerSwap(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer
	l := NewCLILogger()
	l.SetColorEnabled(false)
	l.SetOutput(&buf)
	SetDefault(l)

	Info("hello %s", "world")
	require.Contains(t, buf.String(), "hello world")
}

func TestFileSinkStdoutIsNotClosable(t *testing.T) {
	sink, err := OpenFileSink("stdout", false)
	require.NoError(t, err)
	require.NoError(t, sink.Write("x"))
	require.NoError(t, sink.Close())
}

func TestFileSinkWritesToRealFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/run.log"

	sink, err := OpenFileSink(path, false)
	require.NoError(t, err)
	require.NoError(t, sink.Writeln("ok 1"))
	require.NoError(t, sink.Close())

	data, err := readFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok 1\n", string(data))
}
