package lang

import (
	"strings"
)

// scanner is a byte cursor over source text.
//
// All offsets are absolute offsets into input, so a scanner can start in the
// middle of a file and the spans it records remain valid for the whole text.
type scanner struct {
	input string
	pos   int
}

func newScanner(input string, pos int) *scanner {
	return &scanner{input: input, pos: pos}
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}

	return s.input[s.pos]
}

func (s *scanner) peekN(n int) string {
	if s.pos+n > len(s.input) {
		return s.input[s.pos:]
	}

	return s.input[s.pos : s.pos+n]
}

func (s *scanner) advance() {
	if !s.eof() {
		s.pos++
	}
}

func (s *scanner) expect(ch byte) bool {
	if !s.eof() && s.peek() == ch {
		s.advance()

		return true
	}

	return false
}

func (s *scanner) expectString(lit string) bool {
	if strings.HasPrefix(s.input[s.pos:], lit) {
		s.pos += len(lit)

		return true
	}

	return false
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) position() Position {
	return positionAt(s.input, s.pos)
}

// skipBlank skips spaces and tabs, never crossing a line terminator.
func (s *scanner) skipBlank() {
	for !s.eof() && isBlank(s.peek()) {
		s.advance()
	}
}

// skipSpace skips all whitespace including line terminators.
func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.peek()) {
		s.advance()
	}
}

func (s *scanner) skipSpaceAndComments() error {
	for {
		s.skipSpace()

		switch {
		case s.peek() == '#':
			s.skipLineComment()

		case s.peekN(2) == "/*":
			if err := s.skipBlockComment(); err != nil {
				return err
			}

		default:
			return nil
		}
	}
}

// skipLineComment skips to the end of the current line, leaving the line
// terminator unconsumed.
func (s *scanner) skipLineComment() {
	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}

	if s.pos > 0 && s.input[s.pos-1] == '\r' {
		s.pos--
	}
}

func (s *scanner) skipBlockComment() error {
	start := s.pos
	s.pos += 2

	end := strings.Index(s.input[s.pos:], "*/")
	if end < 0 {
		return malformed(s.input, start, "*/")
	}

	s.pos += end + 2

	return nil
}

// skipLine advances past the next line terminator, or to limit if the line
// ends there first.
func (s *scanner) skipLine(limit int) {
	for s.pos < limit && s.peek() != '\n' {
		s.advance()
	}

	if s.pos < limit {
		s.advance()
	}
}

// lineEnd consumes a line terminator ("\n" or "\r\n") and reports whether
// one was present.
func (s *scanner) lineEnd() bool {
	switch {
	case s.peek() == '\n':
		s.advance()

		return true

	case s.peekN(2) == "\r\n":
		s.pos += 2

		return true
	}

	return false
}

// comment consumes an inline "# ..." comment and returns its trimmed text.
// It returns the empty string and consumes nothing if no comment starts at the
// cursor.
func (s *scanner) comment() string {
	if s.peek() != '#' {
		return ""
	}

	start := s.pos
	s.skipLineComment()

	return strings.TrimSpace(s.input[start+1 : s.pos])
}

// identifier consumes a Nix identifier.
func (s *scanner) identifier() (string, bool) {
	start := s.pos

	if !isIdentifierStart(s.peek()) {
		return "", false
	}

	for !s.eof() && isIdentifierContinue(s.peek()) {
		s.advance()
	}

	return s.input[start:s.pos], true
}

// attrPath consumes a dotted attribute path whose segments are identifiers
// or double-quoted strings, returning the unquoted segments.
func (s *scanner) attrPath() ([]string, error) {
	var path []string

	for {
		switch {
		case s.peek() == '"':
			seg, err := s.stringLiteral()
			if err != nil {
				return nil, err
			}

			path = append(path, seg)

		case isIdentifierStart(s.peek()):
			seg, _ := s.identifier()
			path = append(path, seg)

		default:
			return nil, malformed(s.input, s.pos, "attribute name")
		}

		if s.peek() != '.' {
			return path, nil
		}

		s.advance()
	}
}

// stringLiteral consumes a double-quoted string and returns its value with
// escape sequences resolved.
func (s *scanner) stringLiteral() (string, error) {
	start := s.pos

	if !s.expect('"') {
		return "", malformed(s.input, s.pos, `"`)
	}

	var sb strings.Builder

	for !s.eof() {
		ch := s.peek()
		s.advance()

		switch ch {
		case '"':
			return sb.String(), nil

		case '\\':
			if s.eof() {
				return "", malformed(s.input, start, "closing quote")
			}

			sb.WriteByte(unescapeByte(s.peek()))
			s.advance()

		default:
			sb.WriteByte(ch)
		}
	}

	return "", malformed(s.input, start, "closing quote")
}

// indentedString consumes a ''-delimited string and returns its content with
// the escapes ''' and ''$ and ''\x resolved. Indentation is not stripped.
func (s *scanner) indentedString() (string, error) {
	start := s.pos

	if !s.expectString("''") {
		return "", malformed(s.input, s.pos, "''")
	}

	var sb strings.Builder

	for !s.eof() {
		if s.peekN(2) != "''" {
			sb.WriteByte(s.peek())
			s.advance()

			continue
		}

		switch esc := s.peekN(3); esc {
		case "'''":
			sb.WriteString("''")
			s.pos += 3

		case "''$":
			sb.WriteByte('$')
			s.pos += 3

		case "''\\":
			s.pos += 3
			if s.eof() {
				return "", malformed(s.input, start, "closing ''")
			}

			sb.WriteByte(unescapeByte(s.peek()))
			s.advance()

		default:
			s.pos += 2

			return sb.String(), nil
		}
	}

	return "", malformed(s.input, start, "closing ''")
}

// skipString skips a double-quoted or ''-delimited string at the cursor.
func (s *scanner) skipString() error {
	var err error
	if s.peek() == '"' {
		_, err = s.stringLiteral()
	} else {
		_, err = s.indentedString()
	}

	return err
}

// atString reports whether a string literal starts at the cursor.
func (s *scanner) atString() bool {
	return s.peek() == '"' || s.peekN(2) == "''"
}

func unescapeByte(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return ch
	}
}

// Character classification

func isBlank(ch byte) bool { return ch == ' ' || ch == '\t' }

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentifierStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentifierContinue(ch byte) bool {
	return isIdentifierStart(ch) || (ch >= '0' && ch <= '9') ||
		ch == '\'' || ch == '-'
}

// isIdentifier reports whether s is a plain Nix identifier.
func isIdentifier(s string) bool {
	if s == "" || !isIdentifierStart(s[0]) {
		return false
	}

	for i := 1; i < len(s); i++ {
		if !isIdentifierContinue(s[i]) {
			return false
		}
	}

	return true
}

// lineStart returns the offset of the first byte of the line holding offset.
func lineStart(text string, offset int) int {
	return strings.LastIndexByte(text[:offset], '\n') + 1
}

// lineIndent returns the leading blanks of the line holding offset.
func lineIndent(text string, offset int) string {
	start := lineStart(text, offset)
	end := start

	for end < len(text) && isBlank(text[end]) {
		end++
	}

	return text[start:end]
}

// onlyBlank reports whether s holds nothing but spaces and tabs.
func onlyBlank(s string) bool {
	return strings.TrimLeft(s, " \t") == ""
}
