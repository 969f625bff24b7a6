package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// StdLogger adapts log/slog to ports.Logger.
type StdLogger struct {
	verbose bool
	log     *slog.Logger
	file    *os.File
}

// Options selects the log destination.
type Options struct {
	// Verbose writes human-readable records to stderr.
	Verbose bool
	// Level is debug|info|warn|error.
	Level string
	// File, when set, receives JSON records regardless of Verbose.
	File string
}

// NewStd creates a StdLogger that only speaks when verbose.
func NewStd(verbose bool) *StdLogger {
	l, _ := New(Options{Verbose: verbose, Level: "debug"})
	return l
}

// New builds a logger from opts. A file that cannot be opened is reported and
// the logger falls back to stderr/discard.
func New(opts Options) (*StdLogger, error) {
	level := parseLevel(opts.Level)
	var handlers []slog.Handler
	if opts.Verbose {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	var (
		file    *os.File
		openErr error
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			openErr = err
		} else if f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
			openErr = err
		} else {
			file = f
			handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(io.Discard, nil)
	case 1:
		handler = handlers[0]
	default:
		handler = fanout(handlers)
	}

	return &StdLogger{
		verbose: opts.Verbose,
		log:     slog.New(handler),
		file:    file,
	}, openErr
}

// Close releases the log file, if any.
func (l *StdLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, attrs(fields)...)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, attrs(fields)...)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, attrs(fields)...)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	l.log.Error(msg, args...)
}

func attrs(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
