package lang

import (
	"log/slog"
)

// StringAttr returns the value of the first attribute named name that is
// bound to a string literal, such as the defaultShell of a project.
func StringAttr(text, name string) (string, error) {
	a, err := stringAttr(text, name)
	if err != nil {
		return "", err
	}

	return a.value, nil
}

// SetStringAttr returns text with the string bound to name replaced by
// value. The attribute must already exist.
func SetStringAttr(text, name, value string) (string, error) {
	a, err := stringAttr(text, name)
	if err != nil {
		return "", err
	}

	return splice(text, a.valSpan, QuoteString(value)), nil
}

func stringAttr(text, name string) (assignment, error) {
	start, eq, err := findAttr(text, name)
	if err != nil {
		return assignment{}, err
	}

	s := newScanner(text, eq)
	if err := s.skipSpaceAndComments(); err != nil {
		return assignment{}, err
	}

	a := assignment{path: []string{name}}

	if !s.atString() {
		return assignment{}, malformed(text, s.pos, "string").
			With(slog.String("attribute", name))
	}

	if err := a.parseValue(s, len(text)); err != nil {
		return assignment{}, err
	}

	s.skipBlank()

	if !s.expect(';') {
		return assignment{}, malformed(text, s.pos, ";").
			With(slog.String("attribute", name))
	}

	a.span = Span{Start: start, End: s.pos}

	return a, nil
}
