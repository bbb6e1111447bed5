// Package logging provides zerolog-based structured logging for the
// estimation library and its CLI. Loggers travel on the context so that
// engine code can emit structured events without owning logger plumbing.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level (trace, debug, info, warn, error).
	Level string

	// Format selects "console" (human-readable) or "json".
	Format string

	// Output selects "stderr", "stdout", or "file".
	Output string

	// File is the log file path when Output is "file".
	File string
}

// New builds a logger from cfg. Unparseable levels fall back to info.
// File output that cannot be opened falls back to stderr rather than
// failing the command.
func New(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			out = os.Stderr
		} else {
			out = f
		}
	default:
		out = os.Stderr
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext retrieves the logger embedded in ctx, or a disabled logger
// when none was attached. Engine code should never log to a logger it did
// not receive through the context.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx for downstream FromContext calls.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}
