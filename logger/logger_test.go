package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_LogConfiguration_logLevel(t *testing.T) {
	var cases = []struct {
		name  string
		level slog.Level
	}{
		{"", slog.LevelInfo},
		{"error", slog.LevelError},
		{"InfO", slog.LevelInfo},
		{"ERROR", slog.LevelError},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"INFO", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"TRACE", LevelTrace},
		{"NONE", levelNone},
		{"info-1", slog.LevelInfo - 1},
		{"info+1", slog.LevelInfo + 1},
		{"garbage", slog.LevelInfo},
	}

	for _, tc := range cases {
		cfg := LogConfiguration{Level: tc.name}
		if lvl := cfg.logLevel(); lvl != tc.level {
			t.Errorf("expected %q to return %d (%s) but got %d (%s)", tc.name, tc.level, tc.level, lvl, lvl)
		}
	}

	// special case - when OutputPath is "discard" return levelNone
	cfg := LogConfiguration{Level: "info", OutputPath: "discard"}
	if lvl := cfg.logLevel(); lvl != levelNone {
		t.Errorf("expected %d but got %d for level", levelNone, lvl)
	}

	cfg = LogConfiguration{Level: "info", OutputPath: os.DevNull}
	if lvl := cfg.logLevel(); lvl != levelNone {
		t.Errorf("expected %d but got %d for level", levelNone, lvl)
	}
}

func Test_formatTimeAttr(t *testing.T) {
	t.Run("empty format string", func(t *testing.T) {
		f := formatTimeAttr("")
		require.Nil(t, f)
	})

	t.Run("format: none", func(t *testing.T) {
		f := formatTimeAttr("none")
		require.NotNil(t, f)
		now := time.Now()

		a := f(nil, slog.Time(slog.TimeKey, now))
		require.Equal(t, slog.Attr{}, a)

		// when not time key value is preserved
		a = f(nil, slog.Time("foo", now))
		require.True(t, a.Equal(slog.Time("foo", now)))
	})

	t.Run("format: format string", func(t *testing.T) {
		f := formatTimeAttr("15:04:05.0000")
		require.NotNil(t, f)

		// zero time is not changed
		a := f(nil, slog.Time(slog.TimeKey, time.Time{}))
		require.Equal(t, slog.Time(slog.TimeKey, time.Time{}), a)

		// valid time is converted to string representation
		now := time.Now()
		a = f(nil, slog.Time(slog.TimeKey, now))
		require.Equal(t, now.Format("15:04:05.0000"), a.Value.String())
	})
}

func Test_New(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		log, err := New(&LogConfiguration{Format: "xml", OutputPath: "discard"})
		require.ErrorContains(t, err, `unknown log format "xml"`)
		require.Nil(t, log)
	})

	t.Run("defaults", func(t *testing.T) {
		log, err := New(nil)
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("json format output", func(t *testing.T) {
		cfg := &LogConfiguration{Level: "debug", Format: "json", OutputPath: "discard"}
		cfg.initDefaults()
		buf := bytes.Buffer{}
		h, err := cfg.handler(&buf)
		require.NoError(t, err)

		log := slog.New(h)
		log.Info("ledger time advanced", Round(4), Error(os.ErrClosed))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "ledger time advanced", rec["msg"])
		require.EqualValues(t, 4, rec[RoundKey])
		require.Equal(t, os.ErrClosed.Error(), rec[ErrorKey])
	})

	t.Run("level none discards records", func(t *testing.T) {
		cfg := &LogConfiguration{Level: "none", Format: "text"}
		cfg.initDefaults()
		buf := bytes.Buffer{}
		h, err := cfg.handler(&buf)
		require.NoError(t, err)

		slog.New(h).Error("must not show up")
		require.Empty(t, buf.Bytes())
	})
}
