package lang

import (
	"errors"
	"strings"
	"testing"
)

const hookText = "{\n  shellHook = ''\n    echo ready\n  '';\n}\n"

func TestShellHook_AddRemoveRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		body  string
	}{
		{"indented hook", hookText, "echo hi\n  echo nested\n\necho end"},
		{"empty hook", "shellHook = ''\n'';", "echo hi"},
		{"inline hook", "shellHook = '''';", "echo hi"},
		{"quotes", hookText, "echo ''quoted'' \"double\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseShellHook(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			added, err := h.Add("hello", tt.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			h, err = ParseShellHook(added)
			if err != nil {
				t.Fatalf("reparse: %v", err)
			}

			c, ok := h.Lookup("hello")
			if !ok {
				t.Fatalf("command not found after add:\n%s", added)
			}

			if c.Body != tt.body {
				t.Errorf("body = %q, want %q", c.Body, tt.body)
			}

			removed, err := h.Remove("hello")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if removed != tt.input {
				t.Errorf("round trip changed text:\n%q\nwant\n%q", removed, tt.input)
			}
		})
	}
}

func TestShellHook_AddLayout(t *testing.T) {
	h, err := ParseShellHook(hookText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := h.Add("greet", "\n\necho hi\n\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "{\n  shellHook = ''\n    echo ready\n\n" +
		"    # nixprof-command: greet\n" +
		"    greet () {\n" +
		"      echo hi\n" +
		"    }\n" +
		"  '';\n}\n"

	if got != want {
		t.Errorf("Add =\n%q\nwant\n%q", got, want)
	}
}

func TestShellHook_Commands(t *testing.T) {
	input := `shellHook = ''
  export FOO=1

  # nixprof-command: build
  build () {
    make "$@"
  }

  # nixprof-command: build-all
  build-all () {
    if true; then
      build all
    fi
  }
  echo done
'';`

	h, err := ParseShellHook(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmds := h.Commands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}

	if cmds[0].Name != "build" || cmds[0].Body != `make "$@"` {
		t.Errorf("unexpected first command %+v", cmds[0])
	}

	if want := "if true; then\n  build all\nfi"; cmds[1].Body != want {
		t.Errorf("second body = %q, want %q", cmds[1].Body, want)
	}

	got, err := h.Remove("build")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(got, "make") || !strings.Contains(got, "build-all () {") {
		t.Errorf("Remove(build) removed the wrong block:\n%s", got)
	}

	if !strings.Contains(got, "export FOO=1\n\n  # nixprof-command: build-all") {
		t.Errorf("unexpected layout after remove:\n%s", got)
	}
}

func TestShellHook_AddErrors(t *testing.T) {
	h, err := ParseShellHook("shellHook = ''\n  # nixprof-command: hello\n  hello () {\n    echo\n  }\n'';")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		cmd  string
		want error
	}{
		{"duplicate", "hello", ErrDuplicate},
		{"empty", "", ErrMalformed},
		{"leading dash", "-x", ErrMalformed},
		{"space", "a b", ErrMalformed},
		{"shell metacharacter", "a;b", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.Add(tt.cmd, "true"); !errors.Is(err, tt.want) {
				t.Errorf("Add(%q): expected %v, got %v", tt.cmd, tt.want, err)
			}
		})
	}

	if _, err := h.Remove("hell"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseShellHook_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"absent", "{ packages = [ ]; }", ErrSectionNotFound},
		{"unterminated", "shellHook = ''\n  echo\n", ErrMalformed},
		{"unclosed command", "shellHook = ''\n  # nixprof-command: x\n  x () {\n    true\n'';", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseShellHook(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMarkerName(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{"# nixprof-command: hello", "hello", true},
		{"   #nixprof-command:hello  ", "hello", true},
		{"# nixprof-command:", "", false},
		{"# nixprof-commands: hello", "", false},
		{"echo nixprof-command: hello", "", false},
	}

	for _, tt := range tests {
		name, ok := markerName(tt.line)
		if name != tt.name || ok != tt.ok {
			t.Errorf("markerName(%q) = %q, %v; want %q, %v", tt.line, name, ok, tt.name, tt.ok)
		}
	}
}
