package cmd

import "github.com/ardnew/nixprof/pkg"

// Predefined errors (sentinel values).
var (
	ErrYAMLMarshal     = pkg.NewError("marshal YAML")
	ErrWriteConfig     = pkg.NewError("write configuration file")
	ErrFileExists      = pkg.NewError("file exists (use --force to overwrite)")
	ErrReadInput       = pkg.NewError("read input")
	ErrVersionRequired = pkg.NewError("pinned package requires a version")
)
