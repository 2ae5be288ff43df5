package lang

import (
	"log/slog"
	"slices"
	"strings"
)

// SectionPackages is the attribute holding a profile's package list.
const SectionPackages = "packages"

// DefaultScope is the attribute set packages are qualified with when a list
// has no "with <scope>;" prefix.
const DefaultScope = "pkgs"

// Package is an entry of a package list.
type Package struct {
	// Name is the attribute path as written, including any scope qualifier,
	// with quoted segments unquoted (e.g. "pkgs.git").
	Name string
	// Version is the optional "@<version>" suffix.
	Version string
	// Comment is the optional trailing inline comment.
	Comment string
	Span
}

// Alias returns the entry name without scope and with its version suffix,
// as used for pinned packages (e.g. "git@2.40").
func (p Package) Alias(scope string) string {
	name := strings.TrimPrefix(p.Name, scope+".")
	if p.Version == "" {
		return name
	}

	return name + "@" + p.Version
}

// PackageList is a parsed package list section.
type PackageList struct {
	Block

	text    string
	entries []Package
}

// ParsePackages locates and parses the package list of text.
func ParsePackages(text string) (*PackageList, error) {
	b, err := locate(text, SectionPackages, "[")
	if err != nil {
		return nil, err
	}

	l := &PackageList{Block: b, text: text}
	s := newScanner(text, b.Body.Start)

	// first is set while no entry precedes s.pos on the current line.
	first := true

	for s.pos < b.Body.End {
		start := s.pos
		s.skipBlank()

		switch {
		case s.pos >= b.Body.End:
			return l, nil

		case s.lineEnd():
			first = true

			continue

		case s.peek() == '#':
			s.skipLineComment()
			s.lineEnd()

			first = true

			continue
		}

		tok := s.pos

		p, ok := parsePackage(s, b.Body.End)
		if ok {
			s.skipBlank()
			ok = lineDone(s, b.Body.End) || startsEntry(s.peek())
		}

		if !ok {
			s.skipLine(b.Body.End)

			first = true

			continue
		}

		switch {
		case !lineDone(s, b.Body.End):
			// Another entry follows on the same line: the entry owns its
			// token and the blanks after it.
			p.Span = Span{Start: tok, End: s.pos}
			first = false

		case first:
			p.Comment = s.comment()
			s.lineEnd()
			p.Span = Span{Start: start, End: s.pos}

		default:
			// Last of several entries on a line. The comment and line
			// terminator stay with the line.
			p.Span = Span{Start: tok, End: s.pos}
		}

		l.entries = append(l.entries, p)
	}

	return l, nil
}

// parsePackage parses the attribute path and version of one package entry.
func parsePackage(s *scanner, limit int) (Package, bool) {
	path, err := s.attrPath()
	if err != nil {
		return Package{}, false
	}

	var p Package

	last := path[len(path)-1]
	if at := strings.LastIndexByte(last, '@'); at > 0 {
		path[len(path)-1], p.Version = last[:at], last[at+1:]
	}

	if s.peek() == '@' && p.Version == "" {
		s.advance()

		start := s.pos
		for s.pos < limit && isVersionByte(s.peek()) {
			s.advance()
		}

		if s.pos == start {
			return Package{}, false
		}

		p.Version = s.input[start:s.pos]
	}

	p.Name = strings.Join(path, ".")

	return p, true
}

// lineDone reports whether nothing but a comment or line terminator is left
// on the current line before limit.
func lineDone(s *scanner, limit int) bool {
	return s.pos >= limit || s.peek() == '#' || s.peek() == '\n' || s.peekN(2) == "\r\n"
}

func startsEntry(ch byte) bool { return ch == '"' || isIdentifierStart(ch) }

func isVersionByte(ch byte) bool {
	return isIdentifierContinue(ch) || ch == '.' || ch == '+'
}

// Packages returns the entries of the list in source order.
func (l *PackageList) Packages() []Package { return slices.Clone(l.entries) }

// Scope returns the attribute set entries are resolved against.
func (l *PackageList) Scope() string {
	if l.With != "" {
		return l.With
	}

	return DefaultScope
}

// Exists reports whether the list holds name, written either bare or
// qualified with the list's scope. A name with a version suffix only matches
// an entry with the same version; a name without one matches any version.
func (l *PackageList) Exists(name string) bool {
	_, ok := l.find(name)

	return ok
}

// Lookup returns the entry matching name as [PackageList.Exists] does.
func (l *PackageList) Lookup(name string) (Package, bool) {
	i, ok := l.find(name)
	if !ok {
		return Package{}, false
	}

	return l.entries[i], true
}

func (l *PackageList) find(name string) (int, bool) {
	want, version := l.split(name)

	i := slices.IndexFunc(l.entries, func(p Package) bool {
		got, _ := l.split(p.Name)

		return got == want && (version == "" || version == p.Version)
	})

	return i, i >= 0
}

// split removes the scope qualifier and version suffix from name.
func (l *PackageList) split(name string) (string, string) {
	name = strings.TrimPrefix(strings.TrimSpace(name), l.Scope()+".")

	var version string
	if at := strings.LastIndexByte(name, '@'); at > 0 {
		name, version = name[:at], name[at+1:]
	}

	return name, version
}

// Add returns text with name appended to the list, followed by an inline
// comment if comment is not empty.
//
// The entry is qualified with the list's scope when the list has no
// "with <scope>;" prefix. Versioned names ("git@2.40") are always written
// as a qualified, quoted attribute (pkgs."git@2.40").
func (l *PackageList) Add(name, comment string) (string, error) {
	bare, version := l.split(name)
	if !validAttrPath(bare) || strings.ContainsAny(version, " \t\n\"") {
		return "", ErrMalformed.With(
			slog.String("section", SectionPackages),
			slog.String("name", name),
		)
	}

	if l.Exists(name) {
		return "", duplicate(SectionPackages, name)
	}

	var entry string

	switch {
	case version != "":
		segs := strings.Split(bare, ".")
		last := len(segs) - 1
		segs[last] = QuoteString(segs[last] + "@" + version)
		entry = l.Scope() + "." + strings.Join(segs, ".")

	case l.Qualified():
		entry = l.Scope() + "." + bare

	default:
		entry = bare
	}

	line := l.Indent + entry
	if comment = strings.TrimSpace(comment); comment != "" {
		line += " # " + comment
	}

	return insertLine(l.text, l.Block, line), nil
}

// Remove returns text with name deleted: its whole line if the entry has a
// line of its own, otherwise just its token.
func (l *PackageList) Remove(name string) (string, error) {
	i, ok := l.find(name)
	if !ok {
		return "", notFound(SectionPackages, name, l.names())
	}

	return splice(l.text, l.entries[i].Span, ""), nil
}

func (l *PackageList) names() []string {
	names := make([]string, len(l.entries))
	for i, p := range l.entries {
		names[i], _ = l.split(p.Name)
	}

	return names
}

// validAttrPath reports whether name is a dotted path of plain identifiers.
func validAttrPath(name string) bool {
	if name == "" {
		return false
	}

	for _, seg := range strings.Split(name, ".") {
		if !isIdentifier(seg) {
			return false
		}
	}

	return true
}
