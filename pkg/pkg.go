// Package pkg holds the identity of the nixprof module and the error type
// shared by its packages.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version embedded from the VERSION file.
var Version = strings.TrimSpace(version) //nolint:gochecknoglobals

const (
	// Name is the command name. It also names the per-user configuration
	// and cache directories.
	Name = "nixprof"
	// Description is the one-line summary shown in help output.
	Description = "Edit the packages, environment and shell commands of Nix development profiles"
)
