package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a pretty handler. Styles are bound to a
// renderer for the handler's writer, so output to a non-terminal carries no
// escape sequences.
type palette struct {
	key, str, num, flag, stamp, dur lipgloss.Style
	trace, debug, info, warn, err   lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		flag:  fg("2"),
		stamp: fg("4"),
		dur:   fg("5"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2").Bold(true),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes colorized records for a terminal. In multiline mode
// each record is written as an indented block of "key: value" lines;
// otherwise records are single "key=value" lines.
type prettyHandler struct {
	opts      slog.HandlerOptions
	mu        *sync.Mutex
	w         io.Writer
	style     palette
	multiline bool
	groups    []string
	attrs     []slog.Attr
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, style: makePalette(w)}
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	h := newPrettyTextHandler(w, opts)
	h.multiline = true

	return h
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []slog.Attr

	if !r.Time.IsZero() {
		fields = h.builtin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.builtin(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			fields = h.builtin(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = h.builtin(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.flatten(fields, h.groups, a)

		return true
	})

	buf := new(bytes.Buffer)

	if h.multiline {
		buf.WriteString("{\n")
	}

	for i, a := range fields {
		h.write(buf, i, a, r.Level)
	}

	if h.multiline {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(h.attrs)

	for _, a := range attrs {
		c.attrs = h.flatten(c.attrs, h.groups, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// builtin appends a record field after applying ReplaceAttr.
func (h *prettyHandler) builtin(fields []slog.Attr, a slog.Attr) []slog.Attr {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return fields
	}

	return append(fields, a)
}

// flatten appends a with group-qualified keys, expanding group values.
func (h *prettyHandler) flatten(fields []slog.Attr, groups []string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(slices.Clip(groups), a.Key)
		}

		for _, ga := range a.Value.Group() {
			fields = h.flatten(fields, sub, ga)
		}

		return fields
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Key == "" {
		return fields
	}

	if len(groups) > 0 {
		a.Key = strings.Join(groups, ".") + "." + a.Key
	}

	return append(fields, a)
}

func (h *prettyHandler) write(buf *bytes.Buffer, i int, a slog.Attr, level slog.Level) {
	switch {
	case h.multiline && i > 0:
		buf.WriteString(",\n  ")
	case h.multiline:
		buf.WriteString("  ")
	case i > 0:
		buf.WriteByte(' ')
	}

	buf.WriteString(h.style.key.Render(a.Key))

	if h.multiline {
		buf.WriteString(": ")
	} else {
		buf.WriteByte('=')
	}

	if a.Key == slog.LevelKey {
		buf.WriteString(h.style.level(level).Render(a.Value.String()))

		return
	}

	buf.WriteString(h.value(a.Value))
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(v.String())
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())
	case slog.KindBool:
		return h.style.flag.Render(v.String())
	case slog.KindDuration:
		return h.style.dur.Render(v.Duration().String())
	case slog.KindTime:
		return h.style.stamp.Render(v.Time().Format(DefaultTimeLayout))
	default:
		if err, ok := v.Any().(error); ok {
			return h.style.err.Render(err.Error())
		}

		return h.style.str.Render(fmt.Sprint(v.Any()))
	}
}
