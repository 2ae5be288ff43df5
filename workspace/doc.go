// Package workspace reads and writes the files of a nixprof project.
//
// A project is a directory holding:
//
//	flake.nix                    # flake inputs
//	.nixprof/default.nix         # defaultShell = "<profile>";
//	.nixprof/pins.nix            # sources and pinnedPackages
//	.nixprof/profiles/<name>.nix # packages, envVars and shellHook
//
// All text transformations are delegated to package lang. A [Workspace]
// reads the current text of the files involved in an edit, applies the
// transformation, and replaces each changed file atomically. Nothing is
// written unless the transformation of every file succeeded.
package workspace
