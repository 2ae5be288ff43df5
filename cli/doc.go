// Package cli contains the command line interface of nixprof.
//
// [Run] parses the arguments with kong and dispatches to the commands of
// package [github.com/ardnew/nixprof/cli/cmd]. Every command operates on
// one project, selected with --root (default: the working directory), and
// most operate on one profile of it, selected with --profile or
// NIXPROF_PROFILE (default: the project's default profile).
//
//	nixprof add ripgrep fd
//	nixprof -P ci env add GOFLAGS -mod=mod
//	nixprof add --pin github:NixOS/nixpkgs/abc1234 --version 2.40 git
//	nixprof show -o yaml
//
// # Configuration
//
// Flag values are read from two YAML files when they exist: the user's
// configuration file, written by the config command, and
// .nixprof/config.yaml in the project. Keys name flags, and nested
// mappings are joined with '-':
//
//	log:
//	  level: debug
//	  format: json
//
// Command-line flags override both files.
//
// # Logging
//
// The --log-* flags configure the package [github.com/ardnew/nixprof/log]
// default logger, which writes to standard error. They are applied before
// the remaining arguments are parsed.
//
// # Profiling
//
// With the pprof build tag, --pprof-mode and --pprof-dir enable runtime
// profiling of a single invocation.
package cli
