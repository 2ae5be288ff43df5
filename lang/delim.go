package lang

import (
	"log/slog"
)

var closerOf = map[byte]byte{
	'{': '}',
	'[': ']',
	'(': ')',
}

// MatchDelimiter returns the offset of the delimiter closing the one at
// text[open], which must be one of '{', '[' or '('.
//
// Nesting of all three delimiter kinds is tracked. Delimiters inside string
// literals ("..." and ''...'') and comments (# and /* */) are ignored.
// Unbalanced or mismatched delimiters yield [ErrMalformed].
func MatchDelimiter(text string, open int) (int, error) {
	if open < 0 || open >= len(text) {
		return -1, malformed(text, open, "opening delimiter")
	}

	closer, ok := closerOf[text[open]]
	if !ok {
		return -1, malformed(text, open, "opening delimiter").
			With(slog.String("found", string(text[open])))
	}

	s := newScanner(text, open+1)
	stack := []byte{closer}

	for !s.eof() {
		ch := s.peek()

		switch {
		case s.atString():
			if err := s.skipString(); err != nil {
				return -1, err
			}

			continue

		case ch == '#':
			s.skipLineComment()

			continue

		case s.peekN(2) == "/*":
			if err := s.skipBlockComment(); err != nil {
				return -1, err
			}

			continue

		case closerOf[ch] != 0:
			stack = append(stack, closerOf[ch])

		case ch == '}' || ch == ']' || ch == ')':
			want := stack[len(stack)-1]
			if ch != want {
				return -1, malformed(text, s.pos, string(want)).
					With(slog.String("found", string(ch)))
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s.pos, nil
			}
		}

		s.advance()
	}

	return -1, malformed(text, open, string(closer))
}
