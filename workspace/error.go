package workspace

import "github.com/ardnew/nixprof/pkg"

// Predefined errors (sentinel values).
var (
	ErrNoProject       = pkg.NewError("not a nixprof project")
	ErrNoProfile       = pkg.NewError("no profile defined")
	ErrProfileNotFound = pkg.NewError("profile not found")
	ErrProfileExists   = pkg.NewError("profile already exists")
	ErrInvalidProfile  = pkg.NewError("invalid profile name")
	ErrRemoveDefault   = pkg.NewError("cannot remove the default profile")
	ErrReadFile        = pkg.NewError("read file")
	ErrWriteFile       = pkg.NewError("write file")
)
