package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// plain returns options for deterministic, unstyled output.
func plain(format Format, opts ...Option) []Option {
	return append([]Option{
		WithFormat(format),
		WithTimeLayout("none"),
		WithPretty(false),
	}, opts...)
}

func TestMake_Defaults(t *testing.T) {
	logger := Make(nil)

	if got := logger.Level(); got != LevelInfo {
		t.Errorf("Level() = %v, want %v", got, LevelInfo)
	}

	if logger.format != FormatText || logger.caller || !logger.pretty {
		t.Errorf("format = %v, caller = %v, pretty = %v; want text, false, true",
			logger.format, logger.caller, logger.pretty)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		min    Level
		logged bool
	}{
		{"trace at trace", LevelTrace, LevelTrace, true},
		{"trace at debug", LevelTrace, LevelDebug, false},
		{"debug at info", LevelDebug, LevelInfo, false},
		{"info at info", LevelInfo, LevelInfo, true},
		{"warn at error", LevelWarn, LevelError, false},
		{"error at warn", LevelError, LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, plain(FormatText, WithLevel(tt.min))...).
				Log(context.Background(), tt.level, "message")

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer

	ctx := context.Background()

	logger := Make(&buf, plain(FormatText, WithLevel(LevelTrace))...)
	logger.Log(ctx, LevelTrace, "reading file", slog.String("file", "pins.nix"))
	logger.Log(ctx, LevelWarn, "section not found", slog.String("section", "envVars"))

	want := "level=TRACE msg=\"reading file\" file=pins.nix\n" +
		"level=WARN msg=\"section not found\" section=envVars\n"

	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, plain(FormatJSON)...).Log(context.Background(), LevelInfo,
		"package added",
		slog.String("profile", "dev"),
		slog.String("package", "ripgrep"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}

	for key, want := range map[string]string{
		"level":   "INFO",
		"msg":     "package added",
		"profile": "dev",
		"package": "ripgrep",
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %q", key, entry[key], want)
		}
	}

	if _, ok := entry["time"]; ok {
		t.Errorf("unexpected time field in %q", buf.String())
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	ctx := context.Background()

	Make(&buf, plain(FormatText, WithCaller(true))...).Log(ctx, LevelInfo, "with caller")

	if out := buf.String(); !strings.Contains(out, "source=") ||
		!strings.Contains(out, "log_test.go:") {
		t.Errorf("output %q does not name the calling file", out)
	}

	buf.Reset()
	Make(&buf, plain(FormatText)...).Log(ctx, LevelInfo, "without caller")

	if strings.Contains(buf.String(), "source=") {
		t.Errorf("unexpected source in %q", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	ctx := context.Background()

	base := Make(&first, plain(FormatText, WithLevel(LevelWarn))...)
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Log(ctx, LevelDebug, "wrapped")
	base.Log(ctx, LevelDebug, "base")

	if first.Len() != 0 {
		t.Errorf("base logger wrote %q below its level", first.String())
	}

	if got := second.String(); got != "level=DEBUG msg=wrapped\n" {
		t.Errorf("wrapped output = %q", got)
	}

	if base.Level() != LevelWarn || wrapped.Level() != LevelDebug {
		t.Errorf("levels = %v, %v; want warn, debug", base.Level(), wrapped.Level())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Log(DefaultContextProvider(), LevelError, "ignored")

	if l.Level() != DefaultLevel {
		t.Errorf("zero Logger level = %v", l.Level())
	}

	var buf bytes.Buffer

	l.Wrap(plain(FormatText, WithOutput(&buf))...).Log(context.Background(), LevelInfo, "wrapped")

	if got := buf.String(); got != "level=INFO msg=wrapped\n" {
		t.Errorf("Wrap of zero Logger output = %q", got)
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, plain(FormatJSON)...)

	var wg sync.WaitGroup

	for i := range 64 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Log(context.Background(), LevelInfo, "concurrent", slog.Int("id", i))
		}()
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 64 {
		t.Fatalf("got %d lines, want 64", len(lines))
	}

	for _, line := range lines {
		if !json.Valid([]byte(line)) {
			t.Errorf("interleaved output line %q", line)
		}
	}
}

func BenchmarkLogger_Log(b *testing.B) {
	var buf bytes.Buffer

	ctx := context.Background()
	logger := Make(&buf, WithPretty(false))

	for i := 0; b.Loop(); i++ {
		logger.Log(ctx, LevelInfo, "benchmark", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_LogPretty(b *testing.B) {
	var buf bytes.Buffer

	ctx := context.Background()
	logger := Make(&buf, WithCaller(true))

	for i := 0; b.Loop(); i++ {
		logger.Log(ctx, LevelInfo, "benchmark", slog.Int("iteration", i))
	}
}
