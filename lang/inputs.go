package lang

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
)

// SectionInputs is the attribute holding a flake's inputs.
const SectionInputs = "inputs"

// Input is a flake input with a URL.
type Input struct {
	Name string
	URL  string
	// Span covers the binding that declares the URL.
	Span
	// URLSpan locates the URL literal in the source.
	URLSpan Span
}

// InputSet is a parsed flake inputs section.
//
// Both "name.url = ...;" and "name = { url = ...; };" forms are recognized.
// Other bindings of an input (such as "name.inputs.x.follows") are kept in
// the text and removed along with it.
type InputSet struct {
	Block

	text     string
	inputs   []Input
	bindings map[string][]Span
}

// ParseInputs locates and parses the inputs section of text.
func ParseInputs(text string) (*InputSet, error) {
	b, err := locate(text, SectionInputs, "{")
	if err != nil {
		return nil, err
	}

	list, err := parseAssignments(text, b.Body)
	if err != nil {
		return nil, ErrMalformed.With(slog.String("section", SectionInputs)).Wrap(err)
	}

	set := &InputSet{Block: b, text: text, bindings: map[string][]Span{}}

	for _, a := range list {
		name := a.path[0]
		set.bindings[name] = append(set.bindings[name], a.span)

		in, ok, err := inputOf(text, a)
		if err != nil {
			return nil, err
		}

		if ok {
			set.inputs = append(set.inputs, in)
		}
	}

	return set, nil
}

// inputOf returns the input declared by a, if a declares a URL.
func inputOf(text string, a assignment) (Input, bool, error) {
	in := Input{Name: a.path[0], Span: a.span}

	switch {
	case len(a.path) == 2 && a.path[1] == "url" && a.quoted:
		in.URL, in.URLSpan = a.value, a.valSpan

		return in, true, nil

	case len(a.path) == 1 && strings.HasPrefix(a.raw, "{"):
		fields, err := parseAssignments(text, Span{Start: a.valSpan.Start + 1, End: a.valSpan.End - 1})
		if err != nil {
			return Input{}, false, err
		}

		for _, f := range fields {
			if f.name() == "url" && f.quoted {
				in.URL, in.URLSpan = f.value, f.valSpan

				return in, true, nil
			}
		}
	}

	return Input{}, false, nil
}

// Inputs returns the inputs in source order.
func (s *InputSet) Inputs() []Input { return slices.Clone(s.inputs) }

// Exists reports whether an input named name is declared.
func (s *InputSet) Exists(name string) bool {
	_, ok := s.Lookup(name)

	return ok
}

// Lookup returns the input named name.
func (s *InputSet) Lookup(name string) (Input, bool) {
	i := slices.IndexFunc(s.inputs, func(in Input) bool { return in.Name == name })
	if i < 0 {
		return Input{}, false
	}

	return s.inputs[i], true
}

// Add returns text with an input named name pointing at url.
func (s *InputSet) Add(name, url string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
		return "", ErrMalformed.With(
			slog.String("section", SectionInputs),
			slog.String("name", name),
			slog.String("url", url),
		)
	}

	if _, ok := s.bindings[name]; ok {
		return "", duplicate(SectionInputs, name)
	}

	line := renderAssignment(s.Indent, AttrPath(name, "url"), QuoteString(url), "")

	return insertLine(s.text, s.Block, line), nil
}

// Update returns text with the URL of input name replaced by url.
func (s *InputSet) Update(name, url string) (string, error) {
	in, ok := s.Lookup(name)
	if !ok {
		return "", s.notFound(name)
	}

	return splice(s.text, in.URLSpan, QuoteString(url)), nil
}

// Remove returns text with every binding of input name deleted.
func (s *InputSet) Remove(name string) (string, error) {
	spans, ok := s.bindings[name]
	if !ok {
		return "", s.notFound(name)
	}

	spans = slices.Clone(spans)
	slices.SortFunc(spans, func(a, b Span) int { return cmp.Compare(b.Start, a.Start) })

	text := s.text
	for _, span := range spans {
		text = splice(text, span, "")
	}

	return text, nil
}

func (s *InputSet) notFound(name string) error {
	names := make([]string, len(s.inputs))
	for i, in := range s.inputs {
		names[i] = in.Name
	}

	return notFound(SectionInputs, name, names)
}
