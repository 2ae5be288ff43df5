package lang

import (
	"strings"
)

// nixKeywords cannot be used as bare attribute names.
var nixKeywords = map[string]bool{
	"assert":  true,
	"else":    true,
	"if":      true,
	"in":      true,
	"inherit": true,
	"let":     true,
	"or":      true,
	"rec":     true,
	"then":    true,
	"with":    true,
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"${", `\${`,
)

// QuoteString returns s as a double-quoted Nix string literal.
// Backslashes, quotes, newlines, carriage returns and tabs are escaped, as is
// "${" so the value is never interpolated.
func QuoteString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// AttrKey returns name as an attribute name: unchanged if it is a plain
// identifier, otherwise quoted.
func AttrKey(name string) string {
	if isIdentifier(name) && !nixKeywords[name] {
		return name
	}

	return QuoteString(name)
}

// AttrPath returns the dotted attribute path of the given segments, quoting
// each segment as needed.
func AttrPath(segments ...string) string {
	keys := make([]string, len(segments))
	for i, seg := range segments {
		keys[i] = AttrKey(seg)
	}

	return strings.Join(keys, ".")
}

// indentedEscaper escapes text placed inside a ''-string.
var (
	indentedEscaper   = strings.NewReplacer("''", "'''")
	indentedUnescaper = strings.NewReplacer("'''", "''")
)

// renderAssignment renders a single-line "key = value;" entry.
func renderAssignment(indent, key, value, comment string) string {
	line := indent + key + " = " + value + ";"
	if comment != "" {
		line += " # " + comment
	}

	return line
}

// renderBody joins lines into a section body whose closing delimiter is
// indented with outer. An empty set of lines yields a body holding only the
// closer's line break.
func renderBody(lines []string, outer string) string {
	var sb strings.Builder

	sb.WriteByte('\n')

	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(outer)

	return sb.String()
}
