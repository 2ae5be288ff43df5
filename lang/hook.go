package lang

import (
	"log/slog"
	"slices"
	"strings"
)

// SectionShellHook is the attribute holding a profile's shell hook script.
const SectionShellHook = "shellHook"

// CommandMarker tags the comment line that opens a command block.
const CommandMarker = "nixprof-command"

// Command is a named shell function defined in the shell hook.
type Command struct {
	Name string
	// Body is the function body, dedented and with ''-string escapes resolved.
	Body string
	// Span covers the block from the line break preceding its marker line
	// through the line terminator of its closing brace.
	Span
}

// ShellHook is a parsed shell hook section.
type ShellHook struct {
	Block

	text     string
	commands []Command
}

// ParseShellHook locates the shell hook of text and parses the command
// blocks it contains.
func ParseShellHook(text string) (*ShellHook, error) {
	b, err := locate(text, SectionShellHook, "''")
	if err != nil {
		return nil, err
	}

	h := &ShellHook{Block: b, text: text}

	for pos := b.Body.Start; pos < b.Body.End; {
		end := strings.IndexByte(text[pos:b.Body.End], '\n')
		if end < 0 {
			end = b.Body.End
		} else {
			end += pos
		}

		if name, ok := markerName(text[pos:end]); ok {
			c, err := h.parseCommand(name, pos)
			if err != nil {
				return nil, err
			}

			h.commands = append(h.commands, c)
			pos = c.End

			continue
		}

		pos = end + 1
	}

	return h, nil
}

// markerName returns the command named by a marker comment line.
func markerName(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "#")
	if !ok {
		return "", false
	}

	rest, ok = strings.CutPrefix(strings.TrimSpace(rest), CommandMarker+":")
	if !ok {
		return "", false
	}

	name := strings.TrimSpace(rest)

	return name, name != ""
}

// parseCommand parses the block whose marker line starts at offset at.
func (h *ShellHook) parseCommand(name string, at int) (Command, error) {
	indent := lineIndent(h.text, at)
	closing := "\n" + indent + "}"

	// The block ends at the first closing brace at the marker's indentation.
	end := -1

	for from := at; from < h.Body.End; {
		i := strings.Index(h.text[from:h.Body.End], closing)
		if i < 0 {
			break
		}

		i += from + len(closing)
		if rest := h.text[i:h.Body.End]; rest == "" || rest[0] == '\n' ||
			strings.HasPrefix(rest, "\r\n") {
			end = i

			break
		}

		from = i
	}

	if end < 0 {
		return Command{}, malformed(h.text, at, indent+"}").
			With(slog.String("section", SectionShellHook), slog.String("command", name))
	}

	headerEnd := strings.IndexByte(h.text[at:], '\n') + at + 1
	if next := strings.IndexByte(h.text[headerEnd:end], '\n'); next >= 0 &&
		strings.HasSuffix(strings.TrimSpace(h.text[headerEnd:headerEnd+next]), "{") {
		headerEnd += next + 1
	}

	bodyEnd := end - len(closing)
	if bodyEnd < headerEnd {
		bodyEnd = headerEnd
	}

	c := Command{
		Name: name,
		Body: dedent(h.text[headerEnd:bodyEnd], indent+indentStep),
	}

	c.Start = at
	if at > h.Body.Start && h.text[at-1] == '\n' {
		c.Start = at - 1
	}

	c.End = end
	if rest := h.text[end:h.Body.End]; strings.HasPrefix(rest, "\n") {
		c.End++
	} else if strings.HasPrefix(rest, "\r\n") {
		c.End += 2
	}

	return c, nil
}

// dedent removes prefix from every line of body that has it and resolves
// ''-string escapes.
func dedent(body, prefix string) string {
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	for i, line := range lines {
		lines[i] = indentedUnescaper.Replace(strings.TrimPrefix(line, prefix))
	}

	return strings.Join(lines, "\n")
}

// Commands returns the command blocks in source order.
func (h *ShellHook) Commands() []Command { return slices.Clone(h.commands) }

// Exists reports whether a command block named name is defined.
func (h *ShellHook) Exists(name string) bool {
	_, ok := h.Lookup(name)

	return ok
}

// Lookup returns the command block named name.
func (h *ShellHook) Lookup(name string) (Command, bool) {
	i := slices.IndexFunc(h.commands, func(c Command) bool { return c.Name == name })
	if i < 0 {
		return Command{}, false
	}

	return h.commands[i], true
}

// ValidateCommandName returns [ErrMalformed] unless name consists of ASCII
// letters, digits, '-' and '_' and does not start with '-'.
func ValidateCommandName(name string) error {
	valid := name != "" && name[0] != '-'

	for i := 0; valid && i < len(name); i++ {
		ch := name[i]
		valid = ch == '-' || ch == '_' ||
			(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9')
	}

	if !valid {
		return ErrMalformed.With(
			slog.String("section", SectionShellHook),
			slog.String("command", name),
			slog.String("expected", "letters, digits, '-' or '_'"),
		)
	}

	return nil
}

// Add returns text with a command block named name appended to the shell
// hook, immediately before its closing delimiter.
//
// Leading and trailing blank lines of body are dropped; every other line is
// kept verbatim, indented one step deeper than the block.
func (h *ShellHook) Add(name, body string) (string, error) {
	if err := ValidateCommandName(name); err != nil {
		return "", err
	}

	if h.Exists(name) {
		return "", duplicate(SectionShellHook, name)
	}

	indent := h.Indent

	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(indent + "# " + CommandMarker + ": " + name + "\n")
	sb.WriteString(indent + name + " () {\n")

	for _, line := range trimBlankLines(body) {
		if strings.TrimSpace(line) != "" {
			sb.WriteString(indent + indentStep + indentedEscaper.Replace(line))
		}

		sb.WriteString("\n")
	}

	sb.WriteString(indent + "}\n")

	at := h.Close
	if ls := lineStart(h.text, h.Close); ls >= h.Body.Start && onlyBlank(h.text[ls:h.Close]) {
		at = ls
	}

	return splice(h.text, Span{at, at}, sb.String()), nil
}

// Remove returns text with the command block named name deleted, including
// the blank line that precedes it.
func (h *ShellHook) Remove(name string) (string, error) {
	c, ok := h.Lookup(name)
	if !ok {
		names := make([]string, len(h.commands))
		for i, c := range h.commands {
			names[i] = c.Name
		}

		return "", notFound(SectionShellHook, name, names)
	}

	return splice(h.text, c.Span, ""), nil
}

// trimBlankLines splits body into lines without leading or trailing blank
// lines.
func trimBlankLines(body string) []string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
