// Package logger builds the process-wide slog logger: text on stderr,
// optionally JSON to a file and errors to Sentry.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Options configures New.
type Options struct {
	// Level is debug, info, warn or error. Unknown values mean warn.
	Level string
	// Stderr receives human-readable logs. Defaults to os.Stderr.
	Stderr io.Writer
	// Quiet drops the stderr handler, for full-screen UIs that own the
	// terminal. File and Sentry handlers still apply.
	Quiet bool
	// File, when set, also receives JSON logs (appended).
	File string
	// SentryDSN, when set, sends error-level records to Sentry.
	SentryDSN string
	// Release is reported to Sentry.
	Release string
}

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds a logger from opts. The returned close function flushes
// Sentry and closes the log file; it is never nil.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := ParseLevel(opts.Level)
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var handlers []slog.Handler
	var closers []func() error

	// Base handler for stderr; stdout is reserved for output.
	if !opts.Quiet {
		handlers = append(handlers, slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closers = append(closers, f.Close)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	// Optional Sentry handler (sends errors only)
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     opts.SentryDSN,
			Release: opts.Release,
		})
		if err != nil {
			closeAll(closers)
			return nil, nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		handlers = append(handlers, slogsentry.Option{
			Level: slog.LevelError,
		}.NewSentryHandler())
		closers = append(closers, func() error {
			sentry.Flush(2 * time.Second)
			return nil
		})
	}

	// Use multi-handler if we have multiple, otherwise use single
	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.DiscardHandler
	case 1:
		handler = handlers[0]
	default:
		handler = slogmulti.Fanout(handlers...)
	}

	return slog.New(handler), func() error { return closeAll(closers) }, nil
}

// Init builds a logger with New and installs it as slog's default.
func Init(opts Options) (func() error, error) {
	log, closeFn, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log)
	return closeFn, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func closeAll(closers []func() error) error {
	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
