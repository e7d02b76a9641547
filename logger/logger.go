package logger

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
)

const (
	// LevelTrace is more verbose than slog.LevelDebug, meant for dumping
	// wire level data etc.
	LevelTrace slog.Level = slog.LevelDebug - 4
	// levelNone is higher than any level used by the loggers so setting it
	// as the handler level disables logging.
	levelNone slog.Level = math.MaxInt32
)

type (
	// LogConfiguration is the logger configuration, built from the logger
	// configuration file and/or command line flags.
	LogConfiguration struct {
		Level      string `yaml:"defaultLevel"`
		Format     string `yaml:"format"`
		OutputPath string `yaml:"outputPath"`
		TimeFormat string `yaml:"timeFormat"`
	}
)

/*
New creates a new logger based on the configuration.
*/
func New(cfg *LogConfiguration) (*slog.Logger, error) {
	if cfg == nil {
		cfg = &LogConfiguration{}
	}
	cfg.initDefaults()

	out, err := cfg.output()
	if err != nil {
		return nil, fmt.Errorf("opening log output: %w", err)
	}

	h, err := cfg.handler(out)
	if err != nil {
		return nil, fmt.Errorf("creating log handler: %w", err)
	}
	return slog.New(h), nil
}

func (cfg *LogConfiguration) initDefaults() {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "stderr"
	}
}

func (cfg *LogConfiguration) output() (io.Writer, error) {
	switch cfg.OutputPath {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "discard", os.DevNull:
		return io.Discard, nil
	}
	file, err := os.OpenFile(filepath.Clean(cfg.OutputPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", cfg.OutputPath, err)
	}
	return file, nil
}

func (cfg *LogConfiguration) handler(out io.Writer) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level:       cfg.logLevel(),
		ReplaceAttr: composeAttrFmt(formatLevelAttr, formatTimeAttr(cfg.TimeFormat)),
	}
	switch strings.ToLower(cfg.Format) {
	case "text":
		return slog.NewTextHandler(out, opts), nil
	case "console":
		// text handler with human readable time and no date, meant for
		// console output during development.
		if cfg.TimeFormat == "" {
			opts.ReplaceAttr = composeAttrFmt(formatLevelAttr, formatTimeAttr("15:04:05.0000"))
		}
		return slog.NewTextHandler(out, opts), nil
	case "json":
		return slog.NewJSONHandler(out, opts), nil
	}
	return nil, fmt.Errorf("unknown log format %q", cfg.Format)
}

/*
logLevel converts the log level name in the configuration to slog.Level.
In addition to the levels named by the slog package "trace" and "none" are
supported and names may carry offsets, ie "info-1".
*/
func (cfg *LogConfiguration) logLevel() slog.Level {
	if cfg.OutputPath == "discard" || cfg.OutputPath == os.DevNull {
		return levelNone
	}
	switch strings.ToLower(cfg.Level) {
	case "none":
		return levelNone
	case "trace":
		return LevelTrace
	case "warning":
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

/*
formatLevelAttr translates the custom level values to level names.
*/
func formatLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

/*
formatTimeAttr returns ReplaceAttr function for the time field of the log
record. Empty format string means "use handler default", "none" drops the
time field.
*/
func formatTimeAttr(format string) func(groups []string, a slog.Attr) slog.Attr {
	switch format {
	case "":
		return nil
	case "none":
		return func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
	default:
		return func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t := a.Value.Time(); !t.IsZero() {
					a.Value = slog.StringValue(t.Format(format))
				}
			}
			return a
		}
	}
}

/*
composeAttrFmt combines attribute formatters into single func.
If input contains nil values those are discarded.
*/
func composeAttrFmt(f ...func(groups []string, a slog.Attr) slog.Attr) func(groups []string, a slog.Attr) slog.Attr {
	funcs := make([]func(groups []string, a slog.Attr) slog.Attr, 0, len(f))
	for _, fn := range f {
		if fn != nil {
			funcs = append(funcs, fn)
		}
	}
	switch len(funcs) {
	case 0:
		return nil
	case 1:
		return funcs[0]
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		for _, fn := range funcs {
			a = fn(groups, a)
		}
		return a
	}
}
