package lang

import (
	"errors"
	"testing"

	"github.com/ardnew/nixprof/pkg"
)

// similarOf returns the suggestions attached to a not-found error.
func similarOf(t *testing.T, err error) []string {
	t.Helper()

	var e *pkg.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *pkg.Error, got %T", err)
	}

	v, ok := e.Attr("similar")
	if !ok {
		return nil
	}

	similar, _ := v.Any().([]string)

	return similar
}

func TestPositionAt(t *testing.T) {
	text := "ab\ncd\n\nef"

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{6, 3, 1},
		{8, 4, 2},
		{-4, 1, 1},
		{99, 4, 3},
	}

	for _, tt := range tests {
		p := positionAt(text, tt.offset)
		if p.Line != tt.line || p.Column != tt.column {
			t.Errorf("positionAt(%d) = %d:%d, want %d:%d",
				tt.offset, p.Line, p.Column, tt.line, tt.column)
		}
	}
}

func TestMalformed_Attrs(t *testing.T) {
	err := malformed("x = [\n  y", 8, ";")

	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}

	for key, want := range map[string]int64{"line": 2, "column": 3, "offset": 8} {
		v, ok := err.Attr(key)
		if !ok {
			t.Errorf("missing attribute %q", key)

			continue
		}

		if got := v.Int64(); got != want {
			t.Errorf("attribute %q = %d, want %d", key, got, want)
		}
	}

	if v, ok := err.Attr("expected"); !ok || v.String() != ";" {
		t.Errorf("expected attribute = %v, want %q", v, ";")
	}
}
