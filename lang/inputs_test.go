package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const flakeText = `{
  description = "dev";
  inputs = {
    nixpkgs.url = "github:NixOS/nixpkgs/nixos-unstable";
    flake-utils.url = "github:numtide/flake-utils";
    flake-utils.inputs.nixpkgs.follows = "nixpkgs";
    home = {
      url = "github:nix-community/home-manager";
      flake = false;
    };
  };
  outputs = { self, ... }: { };
}
`

func TestParseInputs(t *testing.T) {
	set, err := ParseInputs(flakeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Input{
		{Name: "nixpkgs", URL: "github:NixOS/nixpkgs/nixos-unstable"},
		{Name: "flake-utils", URL: "github:numtide/flake-utils"},
		{Name: "home", URL: "github:nix-community/home-manager"},
	}

	if diff := cmp.Diff(want, set.Inputs(),
		cmpopts.IgnoreFields(Input{}, "Span", "URLSpan")); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestInputSet_Add(t *testing.T) {
	set, err := ParseInputs(flakeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := set.Add("devshell", "github:numtide/devshell")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Replace(flakeText,
		"    };\n  };\n",
		"    };\n    devshell.url = \"github:numtide/devshell\";\n  };\n", 1)
	if got != want {
		t.Errorf("Add =\n%s\nwant\n%s", got, want)
	}

	if _, err := set.Add("flake-utils", "github:x/y"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	if _, err := set.Add("x", ""); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestInputSet_Update(t *testing.T) {
	set, err := ParseInputs(flakeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name, url, old string
	}{
		{"nixpkgs", "github:NixOS/nixpkgs/nixos-24.05", "github:NixOS/nixpkgs/nixos-unstable"},
		{"home", "github:nix-community/home-manager/release-24.05", "github:nix-community/home-manager"},
	}

	for _, tt := range tests {
		got, err := set.Update(tt.name, tt.url)
		if err != nil {
			t.Fatalf("Update(%q): unexpected error: %v", tt.name, err)
		}

		if want := strings.Replace(flakeText, `"`+tt.old+`"`, `"`+tt.url+`"`, 1); got != want {
			t.Errorf("Update(%q) =\n%s\nwant\n%s", tt.name, got, want)
		}
	}

	if _, err := set.Update("nixpkg", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInputSet_Remove(t *testing.T) {
	set, err := ParseInputs(flakeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := set.Remove("flake-utils")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Replace(flakeText,
		"    flake-utils.url = \"github:numtide/flake-utils\";\n"+
			"    flake-utils.inputs.nixpkgs.follows = \"nixpkgs\";\n", "", 1)
	if got != want {
		t.Errorf("Remove =\n%s\nwant\n%s", got, want)
	}

	got, err = set.Remove("home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(got, "home-manager") || strings.Contains(got, "flake = false") {
		t.Errorf("expected nested input removed:\n%s", got)
	}

	if _, err := set.Remove("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
