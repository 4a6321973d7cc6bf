package internal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSize    = 16 // MB
	logFileMaxBackups = 3
	logFileMaxAge     = 28 // days
)

var errLogLevel = errors.New("invalid log level")

// LogParams contains the parameters for logging console output and errors.
// These will vary depending on whether the replay runs in ticker or tui mode.
// # Ticker mode
// - console output goes to stdout
// - error logs go to stderr
// # TUI mode
// - console output is discarded, the terminal belongs to the TUI
// - error logs go to a rotating log file
// .
type LogParams struct {
	ConsoleOut io.Writer
	ErrorOut   io.Writer
}

// Logger is the application logger together with the file it writes to, if any.
type Logger struct {
	*slog.Logger
	LogFile string
	closer  io.Closer
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("parseLevel: %w: %q", errLogLevel, level)
	}
}

// NewLogger writes JSON logs to a rotating file when path is set, and text logs to
// params.ErrorOut otherwise.
func NewLogger(params LogParams, level, path string) (*Logger, error) {
	lvl, levelErr := ParseLevel(level)
	if levelErr != nil {
		return nil, fmt.Errorf("newLogger: %w", levelErr)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if path == "" {
		out := params.ErrorOut
		if out == nil {
			out = os.Stderr
		}
		return &Logger{Logger: slog.New(slog.NewTextHandler(out, opts)), LogFile: "", closer: nil}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd // rwxr-xr-x
			return nil, fmt.Errorf("newLogger: %w", err)
		}
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSize,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAge,
	}

	return &Logger{
		Logger:  slog.New(slog.NewJSONHandler(w, opts)),
		LogFile: w.Filename,
		closer:  w,
	}, nil
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	if err := l.closer.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
