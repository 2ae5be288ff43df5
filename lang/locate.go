package lang

import (
	"log/slog"
	"strings"
)

// Span is a half-open byte range [Start, End) in source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

// Block is the frame of a located section: the attribute introducing it, its
// delimiters, and the body between them.
type Block struct {
	// Name is the attribute that introduces the section.
	Name string
	// Start is the offset of the attribute name.
	Start int
	// Open and Close are the offsets of the opening and closing delimiters.
	// For ''-strings they point at the first quote of each delimiter.
	Open  int
	Close int
	// End is the offset just past the ';' that terminates the attribute.
	End int
	// Body is the content between the delimiters.
	Body Span
	// Indent is the indentation used by entries of the section, or a
	// default derived from Outer when the body has no entries.
	Indent string
	// Outer is the indentation of the line holding the attribute name.
	Outer string
	// With is the scope introduced by a "with <scope>;" prefix, if any.
	With string
}

// Qualified reports whether entries of the section need an explicit scope
// qualifier, that is, whether it lacks a "with <scope>;" prefix.
func (b Block) Qualified() bool { return b.With == "" }

// indentStep is the additional indentation of nested content.
const indentStep = "  "

// findAttr returns the offset of the first attribute named name that is
// bound with '=', and the offset just past the '='.
//
// Occurrences inside strings or comments, and occurrences that are part of a
// longer attribute path (such as "foo.name =" or "name.foo ="), are ignored.
func findAttr(text, name string) (int, int, error) {
	s := newScanner(text, 0)

	for !s.eof() {
		ch := s.peek()

		switch {
		case s.atString():
			if err := s.skipString(); err != nil {
				return -1, -1, err
			}

		case ch == '#':
			s.skipLineComment()

		case s.peekN(2) == "/*":
			if err := s.skipBlockComment(); err != nil {
				return -1, -1, err
			}

		case isIdentifierStart(ch):
			start := s.pos
			id, _ := s.identifier()

			if id != name || (start > 0 && text[start-1] == '.') {
				continue
			}

			if err := s.skipSpaceAndComments(); err != nil {
				return -1, -1, err
			}

			if s.peek() == '=' && s.peekN(2) != "==" {
				return start, s.pos + 1, nil
			}

		default:
			s.advance()
		}
	}

	return -1, -1, ErrSectionNotFound.With(slog.String("section", name))
}

// locate finds the section bound to name whose value is delimited by open,
// one of '{', '[' or the ''-string introducer "''".
//
// For '[' sections, an optional "with <scope>;" prefix is accepted and
// recorded in [Block.With].
func locate(text, name, open string) (Block, error) {
	start, eq, err := findAttr(text, name)
	if err != nil {
		return Block{}, err
	}

	b := Block{
		Name:  name,
		Start: start,
		Outer: lineIndent(text, start),
	}

	s := newScanner(text, eq)
	if err := s.skipSpaceAndComments(); err != nil {
		return Block{}, err
	}

	if open == "[" && hasKeyword(text[s.pos:], "with") {
		s.pos += len("with")

		if err := s.skipSpaceAndComments(); err != nil {
			return Block{}, err
		}

		from := s.pos

		for {
			if _, ok := s.identifier(); !ok {
				return Block{}, malformed(text, s.pos, "scope identifier").
					With(slog.String("section", name))
			}

			if s.peek() != '.' {
				break
			}

			s.advance()
		}

		scope := text[from:s.pos]

		if err := s.skipSpaceAndComments(); err != nil {
			return Block{}, err
		}

		if !s.expect(';') {
			return Block{}, malformed(text, s.pos, ";").
				With(slog.String("section", name))
		}

		if err := s.skipSpaceAndComments(); err != nil {
			return Block{}, err
		}

		b.With = scope
	}

	b.Open = s.pos

	if !strings.HasPrefix(text[s.pos:], open) {
		return Block{}, malformed(text, s.pos, open).
			With(slog.String("section", name))
	}

	if open == "''" {
		if err := s.skipString(); err != nil {
			return Block{}, err
		}

		b.Close = s.pos - len(open)
		b.Body = Span{Start: b.Open + len(open), End: b.Close}
	} else {
		b.Close, err = MatchDelimiter(text, b.Open)
		if err != nil {
			return Block{}, ErrMalformed.
				With(slog.String("section", name)).
				Wrap(err)
		}

		b.Body = Span{Start: b.Open + 1, End: b.Close}
		s.pos = b.Close + 1
	}

	if err := s.skipSpaceAndComments(); err != nil {
		return Block{}, err
	}

	if !s.expect(';') {
		return Block{}, malformed(text, s.pos, ";").
			With(slog.String("section", name))
	}

	b.End = s.pos
	b.Indent = detectIndent(text, b)

	return b, nil
}

// hasKeyword reports whether s begins with the keyword kw as a whole word.
func hasKeyword(s, kw string) bool {
	return strings.HasPrefix(s, kw) &&
		(len(s) == len(kw) || !isIdentifierContinue(s[len(kw)]))
}

// detectIndent returns the indentation of the first non-blank body line that
// begins on its own line, or Outer plus one step if there is none.
func detectIndent(text string, b Block) string {
	body := text[b.Body.Start:b.Body.End]

	for i := strings.IndexByte(body, '\n'); i >= 0; {
		line := body[i+1:]
		if j := strings.IndexByte(line, '\n'); j >= 0 {
			line = line[:j]
		}

		content := strings.TrimLeft(line, " \t")
		if strings.TrimSpace(content) != "" {
			return line[:len(line)-len(content)]
		}

		next := strings.IndexByte(body[i+1:], '\n')
		if next < 0 {
			break
		}

		i += next + 1
	}

	return b.Outer + indentStep
}
