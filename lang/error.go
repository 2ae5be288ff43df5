package lang

import (
	"log/slog"
	"strings"

	"github.com/ardnew/nixprof/pkg"
)

// Predefined errors (sentinel values).
//
// Every error returned by this package is derived from one of these and can
// be tested with errors.Is.
var (
	// ErrSectionNotFound reports that the text does not contain the
	// introducer of the requested section.
	ErrSectionNotFound = pkg.NewError("section not found")
	// ErrMalformed reports unbalanced delimiters or a value that does not
	// match the grammar of its section.
	ErrMalformed = pkg.NewError("malformed section")
	// ErrDuplicate reports an add whose target already exists.
	ErrDuplicate = pkg.NewError("entry already exists")
	// ErrNotFound reports a remove or lookup whose target does not exist.
	ErrNotFound = pkg.NewError("entry not found")
	// ErrConflict reports an add that contradicts an existing entry.
	ErrConflict = pkg.NewError("conflicting entry")
	// ErrFilter reports an invalid filter expression.
	ErrFilter = pkg.NewError("invalid filter expression")
)

// Position identifies a location in source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// positionAt returns the line and column of offset within text.
// Lines and columns are 1-based; columns count bytes.
func positionAt(text string, offset int) Position {
	offset = min(max(offset, 0), len(text))
	head := text[:offset]
	line := strings.Count(head, "\n") + 1

	return Position{
		Offset: offset,
		Line:   line,
		Column: offset - (strings.LastIndexByte(head, '\n') + 1) + 1,
	}
}

// attrs returns the structured logging attributes describing p.
func (p Position) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("offset", p.Offset),
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	}
}

// malformed returns an ErrMalformed describing what was expected at offset.
func malformed(text string, offset int, expected string) *pkg.Error {
	return ErrMalformed.
		With(positionAt(text, offset).attrs()...).
		With(slog.String("expected", expected))
}

// notFound returns an ErrNotFound for name in section, with similar
// candidate names attached when there are any.
func notFound(section, name string, candidates []string) *pkg.Error {
	err := ErrNotFound.With(
		slog.String("section", section),
		slog.String("name", name),
	)

	if similar := Similar(name, candidates); len(similar) > 0 {
		err = err.With(slog.Any("similar", similar))
	}

	return err
}

// duplicate returns an ErrDuplicate for name in section.
func duplicate(section, name string) *pkg.Error {
	return ErrDuplicate.With(
		slog.String("section", section),
		slog.String("name", name),
	)
}
