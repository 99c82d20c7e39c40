// Package logging carries the run logger for skillcatalog.
//
// The CLI builds one logger per invocation from its --verbose and --debug
// flags and stores it in the command context. Code that receives a context
// resolves it with WithContext; leaf packages without a context fall back to
// the process default.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// LevelDebug is the level at which per-skill detail is emitted.
const LevelDebug = slog.LevelDebug

var defaultLogger atomic.Pointer[slog.Logger]

// Options configures the run logger.
type Options struct {
	// Level is the minimum level written. The zero value is info.
	Level slog.Level
	// Output defaults to os.Stderr so stdout stays reserved for progress lines.
	Output io.Writer
	// AddSource includes file and line, used with --debug.
	AddSource bool
}

// DefaultOptions returns a warn-level logger on stderr.
func DefaultOptions() Options {
	return Options{Level: slog.LevelWarn, Output: os.Stderr}
}

// New builds a text logger from opts.
func New(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return slog.New(slog.NewTextHandler(opts.Output, &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
	}))
}

// Default returns the process logger, creating a warn-level one on first use.
func Default() *slog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	defaultLogger.CompareAndSwap(nil, New(DefaultOptions()))
	return defaultLogger.Load()
}

// SetDefault replaces the process logger and slog's default.
func SetDefault(logger *slog.Logger) {
	defaultLogger.Store(logger)
	slog.SetDefault(logger)
}

// Debug logs through the process logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

type loggerKey struct{}

// NewContext attaches logger to ctx.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, or nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	l, _ := ctx.Value(loggerKey{}).(*slog.Logger)
	return l
}

// WithContext returns the logger attached to ctx, or the process logger.
func WithContext(ctx context.Context) *slog.Logger {
	if l := FromContext(ctx); l != nil {
		return l
	}
	return Default()
}

// Attribute keys shared by every log line.
const (
	KeySkill     = "skill"
	KeyPath      = "path"
	KeyOperation = "operation"
	KeyFormat    = "format"
	KeyCount     = "count"
	KeyError     = "error"
	KeyDuration  = "duration"
)

// Skill tags a line with a skill id.
func Skill(id string) slog.Attr { return slog.String(KeySkill, id) }

// Path tags a line with a file path.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Operation tags a line with the step being run.
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

// Format tags a line with an export format.
func Format(f string) slog.Attr { return slog.String(KeyFormat, f) }

// Count tags a line with a number of items.
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }

// Err tags a line with err. A nil error yields an empty attribute, which
// slog drops.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// Timer returns a func that logs the elapsed time of op to l at debug level.
//
//	defer logging.Timer(log, "generate")()
func Timer(l *slog.Logger, op string) func() {
	if l == nil {
		l = Default()
	}
	start := time.Now()
	return func() {
		l.Debug("operation finished", Operation(op), slog.Duration(KeyDuration, time.Since(start)))
	}
}
