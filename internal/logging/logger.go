package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely the service logs.
type Options struct {
	Level string
	// File switches output from stdout to a rotating log file.
	File string
}

// New builds the process logger. The returned closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." && dir != "" {
			_ = os.MkdirAll(dir, 0o755)
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = rotating
		closer = rotating
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	return slog.New(handler), closer
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything; handy for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
