package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// callerSkip is the number of stack frames above runtime.Callers in
// [Logger.logContext] that belong to this package. Every exported logging
// function calls logContext directly.
const callerSkip = 3

// Logger writes leveled messages through a [slog.Handler] built from its
// configuration. A Logger is an immutable value and safe for concurrent use.
type Logger struct {
	*slog.Logger
	config
}

// Make creates a [Logger] that writes to w, configured by [WithDefaults]
// and then opts.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{config: cfg, Logger: slog.New(cfg.handler())}
}

// Wrap returns a new [Logger] whose configuration is l's with opts applied.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.Logger == nil {
		return Make(nil, opts...)
	}

	cfg := apply(l.config, opts...)

	return Logger{config: cfg, Logger: slog.New(cfg.handler())}
}

// Level returns the minimum level of messages l writes.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Log writes msg at level with attrs. The zero Logger discards everything.
func (l Logger) Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, level, msg, attrs...)
}

func (l Logger) logContext(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.Logger == nil || !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr

	runtime.Callers(callerSkip, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
