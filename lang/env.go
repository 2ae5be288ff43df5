package lang

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/mung"
)

// SectionEnvVars is the attribute holding a profile's environment variables.
const SectionEnvVars = "envVars"

// PathListSeparator delimits items of PATH-like values.
const PathListSeparator = ":"

// EnvVar is an entry of an environment-variable map.
type EnvVar struct {
	Name string
	// Value is the value with string escapes resolved. For unquoted values it
	// is the expression as written.
	Value string
	// Raw is the value as written in the source.
	Raw string
	// Quoted reports whether the value is a string literal.
	Quoted  bool
	Comment string
	Span
	// ValueSpan locates Raw in the source.
	ValueSpan Span
}

// EnvVarMap is a parsed environment-variable section.
type EnvVarMap struct {
	Block

	text string
	vars []EnvVar
}

// ParseEnvVars locates and parses the environment-variable map of text.
func ParseEnvVars(text string) (*EnvVarMap, error) {
	b, err := locate(text, SectionEnvVars, "{")
	if err != nil {
		return nil, err
	}

	list, err := parseAssignments(text, b.Body)
	if err != nil {
		return nil, ErrMalformed.With(slog.String("section", SectionEnvVars)).Wrap(err)
	}

	m := &EnvVarMap{Block: b, text: text}

	for _, a := range list {
		m.vars = append(m.vars, EnvVar{
			Name:      a.name(),
			Value:     a.value,
			Raw:       a.raw,
			Quoted:    a.quoted,
			Comment:   a.comment,
			Span:      a.span,
			ValueSpan: a.valSpan,
		})
	}

	return m, nil
}

// Vars returns the entries of the map in source order.
func (m *EnvVarMap) Vars() []EnvVar { return slices.Clone(m.vars) }

// Exists reports whether a variable named exactly name is declared.
func (m *EnvVarMap) Exists(name string) bool {
	_, ok := m.Lookup(name)

	return ok
}

// Lookup returns the declaration of the variable named exactly name.
func (m *EnvVarMap) Lookup(name string) (EnvVar, bool) {
	i := slices.IndexFunc(m.vars, func(v EnvVar) bool { return v.Name == name })
	if i < 0 {
		return EnvVar{}, false
	}

	return m.vars[i], true
}

// Add returns text with a declaration of name bound to the escaped value.
func (m *EnvVarMap) Add(name, value string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrMalformed.With(
			slog.String("section", SectionEnvVars),
			slog.String("name", name),
		)
	}

	if m.Exists(name) {
		return "", duplicate(SectionEnvVars, name)
	}

	line := renderAssignment(m.Indent, AttrKey(name), QuoteString(value), "")

	return insertLine(m.text, m.Block, line), nil
}

// Set returns text with name bound to value, replacing the value of an
// existing declaration in place or adding a new one.
func (m *EnvVarMap) Set(name, value string) (string, error) {
	v, ok := m.Lookup(name)
	if !ok {
		return m.Add(name, value)
	}

	return splice(m.text, v.ValueSpan, QuoteString(value)), nil
}

// Prepend returns text with items prepended to the PATH-like value of name.
// Items already present in the value are moved to the front rather than
// repeated. If name is not declared, it is added with the items as value.
func (m *EnvVarMap) Prepend(name string, items ...string) (string, error) {
	v, ok := m.Lookup(name)
	if !ok {
		return m.Add(name, strings.Join(items, PathListSeparator))
	}

	if !v.Quoted {
		return "", ErrMalformed.With(
			slog.String("section", SectionEnvVars),
			slog.String("name", name),
			slog.String("expected", "string value"),
		)
	}

	value := mung.Make(
		mung.WithSubjectItems(v.Value),
		mung.WithDelim(PathListSeparator),
		mung.WithPrefixItems(items...),
	).String()

	return m.Set(name, value)
}

// Remove returns text with the declaration of name deleted.
func (m *EnvVarMap) Remove(name string) (string, error) {
	v, ok := m.Lookup(name)
	if !ok {
		names := make([]string, len(m.vars))
		for i, v := range m.vars {
			names[i] = v.Name
		}

		return "", notFound(SectionEnvVars, name, names)
	}

	return splice(m.text, v.Span, ""), nil
}
