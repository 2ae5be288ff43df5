package lang

import (
	"errors"
	"testing"
)

func TestMatchDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  int
		want  int
	}{
		{"braces", "{ a }", 0, 4},
		{"nested brackets", "[ [ ] ]", 0, 6},
		{"inner open", "[ [ ] ]", 2, 4},
		{"mixed nesting", "{ a = [ 1 2 ]; b = { c = 3; }; }", 0, 31},
		{"closer in string", `{ "}" }`, 0, 6},
		{"escaped quote in string", `{ "\"}" }`, 0, 8},
		{"closer in line comment", "{ # }\n}", 0, 6},
		{"closer in indented string", "{ ''}'' }", 0, 8},
		{"escaped quotes in indented string", "{ ''a'''}'' }", 0, 12},
		{"closer in block comment", "{ /* } */ }", 0, 10},
		{"parens", "(a (b) c)", 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchDelimiter(tt.input, tt.open)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMatchDelimiter_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  int
	}{
		{"unclosed", "{ {", 0},
		{"mismatched", "{ [ }", 0},
		{"not a delimiter", "x", 0},
		{"out of range", "{}", 5},
		{"unterminated string", `{ "} `, 0},
		{"unterminated comment", "{ /* }", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MatchDelimiter(tt.input, tt.open)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}
