package workspace

import "github.com/ardnew/nixprof/lang"

// ProfileTemplate is the content of a new profile.
const ProfileTemplate = `{ pkgs, ... }:
{
  packages = with pkgs; [
  ];

  envVars = {
  };

  shellHook = ''
  '';
}
`

// PinsTemplate is the content of a new pin table.
const PinsTemplate = `{
  sources = {
  };

  pinnedPackages = {
  };
}
`

// FlakeTemplate is the content of a new flake. Only its inputs are edited
// by this module; the outputs are left to the user.
const FlakeTemplate = `{
  description = "Development environment";

  inputs = {
    nixpkgs.url = "github:NixOS/nixpkgs/nixos-unstable";
  };

  outputs = { self, nixpkgs, ... }: { };
}
`

// DefaultTemplate returns the content of a new default.nix selecting
// profile.
func DefaultTemplate(profile string) string {
	return "{\n  " + DefaultShellAttr + " = " + lang.QuoteString(profile) + ";\n}\n"
}
