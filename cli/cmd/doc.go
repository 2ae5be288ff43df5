// Package cmd implements the nixprof subcommands.
//
// Each command is a struct whose fields are its flags and arguments and
// whose Run method performs it. Commands find the project and profile to
// operate on, and the streams to read and write, in the context passed to
// Run (see [WithProject], [WithStdio] and [WithContext]).
//
// Every edit is a read-modify-write cycle over whole files: the files are
// parsed, changed in memory, and written back only if every step
// succeeded.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// DefaultProfileIdentifier is the kong variable identifier containing the
	// name of the profile created by [Init].
	DefaultProfileIdentifier = "defaultProfile"
)
