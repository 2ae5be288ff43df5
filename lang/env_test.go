package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseEnvVars(t *testing.T) {
	input := `{
  envVars = {
    EDITOR = "vim"; # preferred
    GREETING = "say \"hi\"\n";
    JOBS = toString 4;
    "MY-VAR" = ''multi'';
  };
}`

	m, err := ParseEnvVars(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []EnvVar{
		{Name: "EDITOR", Value: "vim", Raw: `"vim"`, Quoted: true, Comment: "preferred"},
		{Name: "GREETING", Value: "say \"hi\"\n", Raw: `"say \"hi\"\n"`, Quoted: true},
		{Name: "JOBS", Value: "toString 4", Raw: "toString 4"},
		{Name: "MY-VAR", Value: "multi", Raw: "''multi''", Quoted: true},
	}

	if diff := cmp.Diff(want, m.Vars(),
		cmpopts.IgnoreFields(EnvVar{}, "Span", "ValueSpan")); diff != "" {
		t.Errorf("vars mismatch (-want +got):\n%s", diff)
	}

	for _, v := range m.Vars() {
		if got := input[v.ValueSpan.Start:v.ValueSpan.End]; got != v.Raw {
			t.Errorf("%s: ValueSpan covers %q, want %q", v.Name, got, v.Raw)
		}
	}
}

func TestParseEnvVars_Malformed(t *testing.T) {
	for _, input := range []string{
		"envVars = { A = \"unterminated; };",
		"envVars = { A = \"x\" };",
		"envVars = { A = ; };",
	} {
		if _, err := ParseEnvVars(input); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseEnvVars(%q): expected ErrMalformed, got %v", input, err)
		}
	}
}

func TestEnvVarMap_Remove(t *testing.T) {
	input := "envVars = {\n    VAR1 = \"value1\";\n  };"

	m, err := ParseEnvVars(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Remove("VAR1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "envVars = {\n  };"; got != want {
		t.Errorf("Remove = %q, want %q", got, want)
	}

	m, err = ParseEnvVars(got)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if n := len(m.Vars()); n != 0 {
		t.Errorf("expected empty map, got %d entries", n)
	}
}

func TestEnvVarMap_ExactNames(t *testing.T) {
	input := "envVars = {\n  VAR2 = \"two\";\n  VAR = \"one\";\n};"

	m, err := ParseEnvVars(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := m.Lookup("VAR"); !ok || v.Value != "one" {
		t.Errorf("Lookup(VAR) = %+v, %v", v, ok)
	}

	if m.Exists("VA") {
		t.Error("expected prefix VA not to match")
	}

	got, err := m.Remove("VAR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "envVars = {\n  VAR2 = \"two\";\n};"; got != want {
		t.Errorf("Remove(VAR) = %q, want %q", got, want)
	}
}

func TestEnvVarMap_Add(t *testing.T) {
	input := "  envVars = {\n    EDITOR = \"vim\";\n  };\n"

	m, err := ParseEnvVars(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value := "a \"quoted\" ${HOME}\\path\n"

	got, err := m.Add("NOTE", value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := `    NOTE = "a \"quoted\" \${HOME}\\path\n";` + "\n"
	if want := strings.Replace(input, "  };", line+"  };", 1); got != want {
		t.Errorf("Add =\n%q\nwant\n%q", got, want)
	}

	m, err = ParseEnvVars(got)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if v, ok := m.Lookup("NOTE"); !ok || v.Value != value {
		t.Errorf("round trip value = %q, want %q", v.Value, value)
	}

	if _, err := m.Add("EDITOR", "nano"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	if _, err := m.Add(" ", "x"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestEnvVarMap_AddQuotedName(t *testing.T) {
	m, err := ParseEnvVars("envVars = { };")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Add("MY.VAR", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "envVars = {\n  \"MY.VAR\" = \"1\";\n};"; got != want {
		t.Errorf("Add = %q, want %q", got, want)
	}
}

func TestEnvVarMap_Set(t *testing.T) {
	input := "envVars = {\n  EDITOR = \"vim\"; # keep\n};"

	m, err := ParseEnvVars(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Set("EDITOR", "hx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "envVars = {\n  EDITOR = \"hx\"; # keep\n};"; got != want {
		t.Errorf("Set = %q, want %q", got, want)
	}

	got, err = m.Set("PAGER", "less")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "  PAGER = \"less\";\n};") {
		t.Errorf("expected PAGER appended, got %q", got)
	}
}

func TestEnvVarMap_Prepend(t *testing.T) {
	input := "envVars = {\n  PATH = \"/usr/bin:/bin\";\n  JOBS = toString 4;\n};"

	m, err := ParseEnvVars(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Prepend("PATH", "/opt/bin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, err := ParseEnvVars(got)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	v, _ := after.Lookup("PATH")
	if !strings.HasPrefix(v.Value, "/opt/bin:") || !strings.Contains(v.Value, "/usr/bin") {
		t.Errorf("Prepend value = %q", v.Value)
	}

	got, err = m.Prepend("MANPATH", "/opt/man", "/usr/man")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "  MANPATH = \"/opt/man:/usr/man\";\n") {
		t.Errorf("expected MANPATH added, got %q", got)
	}

	if _, err := m.Prepend("JOBS", "1"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for unquoted value, got %v", err)
	}
}

func TestEnvVarMap_RemoveNotFound(t *testing.T) {
	m, err := ParseEnvVars("envVars = { EDITOR = \"vim\"; };")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Remove("EDITR"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
