package lang

import "strings"

// splice replaces the bytes of text covered by span with repl.
func splice(text string, span Span, repl string) string {
	var sb strings.Builder

	sb.Grow(len(text) - span.Len() + len(repl))
	sb.WriteString(text[:span.Start])
	sb.WriteString(repl)
	sb.WriteString(text[span.End:])

	return sb.String()
}

// insertLine inserts line as the last line of b's body.
//
// If the closing delimiter sits alone on its line, line is inserted in front
// of that line. Otherwise the closer shares a line with the opener or with
// content; the body is then broken so that line and the closer each get a
// line of their own, the closer indented with [Block.Outer].
func insertLine(text string, b Block, line string) string {
	if at := lineStart(text, b.Close); at > b.Open && onlyBlank(text[at:b.Close]) {
		return splice(text, Span{at, at}, line+"\n")
	}

	at := b.Close
	for at > b.Body.Start && isBlank(text[at-1]) {
		at--
	}

	return splice(text, Span{at, b.Close}, "\n"+line+"\n"+b.Outer)
}

// replaceBody replaces the whole body of b with body.
func replaceBody(text string, b Block, body string) string {
	return splice(text, b.Body, body)
}
