// Package profile provides optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof -o nixprof .
//	nixprof --pprof-mode cpu show
//
// Without the tag, [Modes] is empty and [Settings.Start] is a no-op.
// Profiles are written to the directory given by [WithPath] and can be
// analyzed with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
