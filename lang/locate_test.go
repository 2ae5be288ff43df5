package lang

import (
	"errors"
	"testing"
)

func TestLocate_Packages(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		with   string
		body   string
		indent string
	}{
		{
			name:   "with scope",
			input:  "  packages = with pkgs; [\n    git\n  ];\n",
			with:   "pkgs",
			body:   "\n    git\n  ",
			indent: "    ",
		},
		{
			name:   "qualified",
			input:  "packages = [\n  pkgs.git\n];",
			body:   "\n  pkgs.git\n",
			indent: "  ",
		},
		{
			name:   "no spaces",
			input:  "packages=[git];",
			body:   "git",
			indent: "  ",
		},
		{
			name:   "empty list",
			input:  "    packages = [ ];",
			body:   " ",
			indent: "      ",
		},
		{
			name:   "skips commented introducer",
			input:  "# packages = [ old ];\npackages = [\n\tnew\n];",
			body:   "\n\tnew\n",
			indent: "\t",
		},
		{
			name:   "skips introducer in string",
			input:  "description = \"packages = [\";\npackages = [ ];",
			body:   " ",
			indent: "  ",
		},
		{
			name:   "skips nested path",
			input:  "foo.packages = [ a ];\npackages = [ b ];",
			body:   " b ",
			indent: "  ",
		},
		{
			name:   "nested scope",
			input:  "packages = with pkgs.python3Packages; [ ];",
			with:   "pkgs.python3Packages",
			body:   " ",
			indent: "  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := locate(tt.input, SectionPackages, "[")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if b.With != tt.with {
				t.Errorf("expected with %q, got %q", tt.with, b.With)
			}

			if got := tt.input[b.Body.Start:b.Body.End]; got != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, got)
			}

			if b.Indent != tt.indent {
				t.Errorf("expected indent %q, got %q", tt.indent, b.Indent)
			}

			if tt.input[b.End-1] != ';' {
				t.Errorf("expected End past ';', got %q", tt.input[b.End-1])
			}
		})
	}
}

func TestLocate_ShellHook(t *testing.T) {
	input := "  shellHook = ''\n    echo \"}\"\n  '';\n"

	b, err := locate(input, SectionShellHook, "''")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := input[b.Body.Start:b.Body.End]; got != "\n    echo \"}\"\n  " {
		t.Errorf("unexpected body %q", got)
	}

	if got := input[b.Close : b.Close+2]; got != "''" {
		t.Errorf("expected Close at terminator, got %q", got)
	}
}

func TestLocate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  string
		want  error
	}{
		{"absent", "{ envVars = { }; }", "[", ErrSectionNotFound},
		{"only in comment", "# packages = [ ];", "[", ErrSectionNotFound},
		{"comparison", "x = packages == [ ];", "[", ErrSectionNotFound},
		{"wrong delimiter", "packages = { };", "[", ErrMalformed},
		{"unbalanced", "packages = [ git ", "[", ErrMalformed},
		{"missing semicolon", "packages = [ git ]\n", "[", ErrMalformed},
		{"with without semicolon", "packages = with pkgs [ ];", "[", ErrMalformed},
		{"with without scope", "packages = with ; [ ];", "[", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := locate(tt.input, SectionPackages, tt.open)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
