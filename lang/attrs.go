package lang

import (
	"strings"
)

// assignment is one "path = value;" binding in an attribute set body.
type assignment struct {
	path    []string
	value   string // value with escapes resolved, or the raw expression
	raw     string // value as written
	quoted  bool   // value is a string literal
	comment string
	span    Span // whole binding including its line terminator
	valSpan Span // the value as written
}

// name returns the dotted form of the assignment path.
func (a assignment) name() string { return strings.Join(a.path, ".") }

// parseAssignments parses the bindings of an attribute set body in
// [body.Start, body.End).
//
// Blank lines, comment lines, and lines that do not start with an attribute
// path followed by '=' are skipped. A binding whose value or terminating ';'
// cannot be parsed is [ErrMalformed].
func parseAssignments(text string, body Span) ([]assignment, error) {
	var out []assignment

	s := newScanner(text, body.Start)

	for s.pos < body.End {
		start := s.pos
		s.skipBlank()

		switch {
		case s.pos >= body.End:
			return out, nil

		case s.lineEnd():
			continue

		case s.peek() == '#':
			s.skipLineComment()
			s.lineEnd()

			continue

		case s.peekN(2) == "/*":
			if err := s.skipBlockComment(); err != nil {
				return nil, err
			}

			continue
		}

		path, err := s.attrPath()
		if err != nil {
			s.skipLine(body.End)

			continue
		}

		s.skipBlank()

		if s.peek() != '=' || s.peekN(2) == "==" {
			s.skipLine(body.End)

			continue
		}

		s.advance()

		if err := s.skipSpaceAndComments(); err != nil {
			return nil, err
		}

		a := assignment{path: path}
		if err := a.parseValue(s, body.End); err != nil {
			return nil, err
		}

		s.skipBlank()

		if !s.expect(';') {
			return nil, malformed(text, s.pos, ";")
		}

		s.skipBlank()
		a.comment = s.comment()

		if !s.lineEnd() {
			s.skipBlank()
		}

		a.span = Span{Start: start, End: min(s.pos, body.End)}
		out = append(out, a)
	}

	return out, nil
}

// parseValue parses the value of a binding: a string literal, or any other
// expression up to the ';' that ends it.
func (a *assignment) parseValue(s *scanner, limit int) error {
	start := s.pos

	switch {
	case s.peek() == '"':
		v, err := s.stringLiteral()
		if err != nil {
			return err
		}

		a.value, a.quoted = v, true

	case s.peekN(2) == "''":
		v, err := s.indentedString()
		if err != nil {
			return err
		}

		a.value, a.quoted = v, true

	default:
		end, err := expressionEnd(s.input, s.pos, limit)
		if err != nil {
			return err
		}

		s.pos = end
		a.value = strings.TrimRight(s.input[start:end], " \t\r\n")

		if a.value == "" {
			return malformed(s.input, start, "value")
		}
	}

	a.raw = strings.TrimRight(s.input[start:s.pos], " \t\r\n")
	a.valSpan = Span{Start: start, End: start + len(a.raw)}

	return nil
}

// expressionEnd returns the offset of the ';' ending the expression that
// starts at pos, skipping nested delimiters, strings and comments.
func expressionEnd(text string, pos, limit int) (int, error) {
	s := newScanner(text, pos)

	for s.pos < limit {
		ch := s.peek()

		switch {
		case ch == ';':
			return s.pos, nil

		case s.atString():
			if err := s.skipString(); err != nil {
				return -1, err
			}

		case ch == '#':
			s.skipLineComment()

		case closerOf[ch] != 0:
			end, err := MatchDelimiter(text, s.pos)
			if err != nil {
				return -1, err
			}

			s.pos = end + 1

		default:
			s.advance()
		}
	}

	return -1, malformed(text, pos, ";")
}
