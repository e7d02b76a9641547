package logger

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

/*
New returns logger for test t on debug level.
*/
func New(t testing.TB) *slog.Logger {
	return NewLvl(t, slog.LevelDebug)
}

/*
NewLvl returns logger for test t on level "level". The output is sent to
t.Log so it is interleaved with other test output and only shown for
failed tests (unless -v flag is used).
*/
func NewLvl(t testing.TB, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(
		&testWriter{t: t},
		&slog.HandlerOptions{Level: level},
	))
}

/*
NOP returns a logger which discards everything. Use it for tests for which
it absolutely doesn't make sense to create any logs.
*/
func NOP() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
