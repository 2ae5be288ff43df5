package lang

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
)

const (
	// SectionSources is the attribute mapping pin identifiers to source
	// references.
	SectionSources = "sources"
	// SectionPinnedPackages is the attribute mapping pin identifiers to the
	// packages taken from that source.
	SectionPinnedPackages = "pinnedPackages"
)

// PinPrefix starts every pin identifier derived by [PinID].
const PinPrefix = "pkgs-"

// pinRevisionLen is the number of revision characters kept by [PinID].
const pinRevisionLen = 7

// Source binds a pin identifier to a resolvable source reference.
type Source struct {
	Name string
	Ref  string
	Span
}

// PinnedPackage is a package record of a pin.
type PinnedPackage struct {
	// Pkg is the package attribute in the pinned source.
	Pkg string
	// Alias is the name the package is exposed as, typically
	// "<package>@<version>".
	Alias string
}

// Pin is a named list of package records taken from one source.
type Pin struct {
	Name     string
	Packages []PinnedPackage
	Span
}

// PinTable holds the sources and pinnedPackages sections of a pins file.
// Mutations always update both sections together so that every pin has a
// source and every source has a pin.
type PinTable struct {
	text     string
	srcBlock Block
	pinBlock Block
	sources  []Source
	pins     []Pin
}

// PinID returns the pin identifier for a source reference: [PinPrefix]
// followed by the first characters of the reference's final path segment,
// which is the revision for references such as
// "github:NixOS/nixpkgs/<rev>".
func PinID(ref string) string {
	rev := ref
	if i := strings.IndexAny(rev, "?#"); i >= 0 {
		rev = rev[:i]
	}

	rev = strings.TrimRight(rev, "/")
	rev = rev[strings.LastIndexAny(rev, "/:")+1:]

	if len(rev) > pinRevisionLen {
		rev = rev[:pinRevisionLen]
	}

	return PinPrefix + rev
}

// PinAlias returns the alias of a package pinned at version.
func PinAlias(pkg, version string) string { return pkg + "@" + version }

// ParsePinTable locates and parses both sections of a pins file.
// Tables whose pins and sources do not correspond one-to-one are
// [ErrMalformed].
func ParsePinTable(text string) (*PinTable, error) {
	src, err := locate(text, SectionSources, "{")
	if err != nil {
		return nil, err
	}

	pin, err := locate(text, SectionPinnedPackages, "{")
	if err != nil {
		return nil, err
	}

	t := &PinTable{text: text, srcBlock: src, pinBlock: pin}

	srcList, err := parseAssignments(text, src.Body)
	if err != nil {
		return nil, ErrMalformed.With(slog.String("section", SectionSources)).Wrap(err)
	}

	for _, a := range srcList {
		if !a.quoted {
			return nil, malformed(text, a.valSpan.Start, "string").
				With(slog.String("section", SectionSources))
		}

		t.sources = append(t.sources, Source{Name: a.name(), Ref: a.value, Span: a.span})
	}

	pinList, err := parseAssignments(text, pin.Body)
	if err != nil {
		return nil, ErrMalformed.With(slog.String("section", SectionPinnedPackages)).Wrap(err)
	}

	for _, a := range pinList {
		p, err := parsePin(text, a)
		if err != nil {
			return nil, err
		}

		t.pins = append(t.pins, p)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// parsePin parses the list of package records bound by a.
func parsePin(text string, a assignment) (Pin, error) {
	p := Pin{Name: a.name(), Span: a.span}

	if !strings.HasPrefix(a.raw, "[") {
		return Pin{}, malformed(text, a.valSpan.Start, "[").
			With(slog.String("section", SectionPinnedPackages))
	}

	s := newScanner(text, a.valSpan.Start+1)
	end := a.valSpan.End - 1

	for {
		if err := s.skipSpaceAndComments(); err != nil {
			return Pin{}, err
		}

		if s.pos >= end {
			return p, nil
		}

		if s.peek() != '{' {
			return Pin{}, malformed(text, s.pos, "{").
				With(slog.String("section", SectionPinnedPackages))
		}

		closer, err := MatchDelimiter(text, s.pos)
		if err != nil {
			return Pin{}, err
		}

		fields, err := parseAssignments(text, Span{Start: s.pos + 1, End: closer})
		if err != nil {
			return Pin{}, err
		}

		var rec PinnedPackage

		for _, f := range fields {
			switch f.name() {
			case "pkg":
				rec.Pkg = f.value
			case "name":
				rec.Alias = f.value
			}
		}

		if rec.Pkg == "" || rec.Alias == "" {
			return Pin{}, malformed(text, s.pos, "pkg and name").
				With(slog.String("section", SectionPinnedPackages))
		}

		p.Packages = append(p.Packages, rec)
		s.pos = closer + 1
	}
}

// validate reports pins without a source and sources without a pin.
func (t *PinTable) validate() error {
	for _, p := range t.pins {
		if _, ok := t.Source(p.Name); !ok {
			return ErrMalformed.With(
				slog.String("section", SectionSources),
				slog.String("name", p.Name),
				slog.String("expected", "source for pin"),
			)
		}
	}

	for _, s := range t.sources {
		if _, ok := t.Pin(s.Name); !ok {
			return ErrMalformed.With(
				slog.String("section", SectionPinnedPackages),
				slog.String("name", s.Name),
				slog.String("expected", "pin for source"),
			)
		}
	}

	return nil
}

// Sources returns the source entries in source order.
func (t *PinTable) Sources() []Source { return slices.Clone(t.sources) }

// Pins returns the pin entries in source order.
func (t *PinTable) Pins() []Pin {
	pins := slices.Clone(t.pins)
	for i := range pins {
		pins[i].Packages = slices.Clone(pins[i].Packages)
	}

	return pins
}

// Source returns the source entry named name.
func (t *PinTable) Source(name string) (Source, bool) {
	i := slices.IndexFunc(t.sources, func(s Source) bool { return s.Name == name })
	if i < 0 {
		return Source{}, false
	}

	return t.sources[i], true
}

// Pin returns the pin entry named name.
func (t *PinTable) Pin(name string) (Pin, bool) {
	i := slices.IndexFunc(t.pins, func(p Pin) bool { return p.Name == name })
	if i < 0 {
		return Pin{}, false
	}

	return t.pins[i], true
}

// Lookup returns the pin holding alias and the matching record.
func (t *PinTable) Lookup(alias string) (Pin, PinnedPackage, bool) {
	for _, p := range t.pins {
		for _, rec := range p.Packages {
			if rec.Alias == alias {
				return p, rec, true
			}
		}
	}

	return Pin{}, PinnedPackage{}, false
}

// AddPinnedPackage returns text with pkg pinned at version from sourceRef
// under pinID. The source and pin entries are created if pinID is new.
//
// An existing source for pinID with a different reference is
// [ErrConflict]; an alias already present in the pin is [ErrDuplicate].
func (t *PinTable) AddPinnedPackage(pinID, sourceRef, pkg, version string) (string, error) {
	for _, arg := range [][2]string{
		{"pin", pinID}, {"source", sourceRef}, {"package", pkg}, {"version", version},
	} {
		if strings.TrimSpace(arg[1]) == "" {
			return "", ErrMalformed.With(
				slog.String("section", SectionPinnedPackages),
				slog.String("expected", arg[0]),
			)
		}
	}

	alias := PinAlias(pkg, version)
	sources, pins := t.Sources(), t.Pins()

	if src, ok := t.Source(pinID); !ok {
		sources = append(sources, Source{Name: pinID, Ref: sourceRef})
	} else if src.Ref != sourceRef {
		return "", ErrConflict.With(
			slog.String("section", SectionSources),
			slog.String("name", pinID),
			slog.String("ref", src.Ref),
			slog.String("requested", sourceRef),
		)
	}

	i := slices.IndexFunc(pins, func(p Pin) bool { return p.Name == pinID })
	if i < 0 {
		pins = append(pins, Pin{Name: pinID})
		i = len(pins) - 1
	}

	if slices.ContainsFunc(pins[i].Packages, func(r PinnedPackage) bool {
		return r.Alias == alias
	}) {
		return "", duplicate(SectionPinnedPackages, alias)
	}

	pins[i].Packages = append(pins[i].Packages, PinnedPackage{Pkg: pkg, Alias: alias})

	return t.render(sources, pins), nil
}

// RemovePinnedPackage returns text with the record aliased alias removed.
// A pin left without records is removed together with its source.
func (t *PinTable) RemovePinnedPackage(alias string) (string, error) {
	pin, _, ok := t.Lookup(alias)
	if !ok {
		var aliases []string
		for _, p := range t.pins {
			for _, rec := range p.Packages {
				aliases = append(aliases, rec.Alias)
			}
		}

		return "", notFound(SectionPinnedPackages, alias, aliases)
	}

	sources, pins := t.Sources(), t.Pins()
	i := slices.IndexFunc(pins, func(p Pin) bool { return p.Name == pin.Name })

	pins[i].Packages = slices.DeleteFunc(pins[i].Packages, func(r PinnedPackage) bool {
		return r.Alias == alias
	})

	if len(pins[i].Packages) == 0 {
		pins = slices.Delete(pins, i, i+1)
		sources = slices.DeleteFunc(sources, func(s Source) bool {
			return s.Name == pin.Name
		})
	}

	return t.render(sources, pins), nil
}

// Render returns the text with both sections re-rendered in canonical form
// from the current entries.
func (t *PinTable) Render() string { return t.render(t.sources, t.pins) }

// render re-renders both section bodies from sources and pins and splices
// them into the text. Everything outside the two bodies is preserved.
func (t *PinTable) render(sources []Source, pins []Pin) string {
	type edit struct {
		block Block
		body  string
	}

	edits := []edit{
		{t.srcBlock, renderSources(sources, t.srcBlock)},
		{t.pinBlock, renderPins(pins, t.pinBlock)},
	}

	// Splice back to front so earlier offsets stay valid.
	slices.SortFunc(edits, func(a, b edit) int {
		return cmp.Compare(b.block.Body.Start, a.block.Body.Start)
	})

	text := t.text
	for _, e := range edits {
		text = replaceBody(text, e.block, e.body)
	}

	return text
}

func renderSources(sources []Source, b Block) string {
	lines := make([]string, len(sources))
	for i, s := range sources {
		lines[i] = renderAssignment(b.Indent, AttrKey(s.Name), QuoteString(s.Ref), "")
	}

	return renderBody(lines, b.Outer)
}

func renderPins(pins []Pin, b Block) string {
	var lines []string

	for _, p := range pins {
		lines = append(lines, b.Indent+AttrKey(p.Name)+" = [")

		for _, rec := range p.Packages {
			lines = append(lines, b.Indent+indentStep+"{ "+
				renderAssignment("", "pkg", QuoteString(rec.Pkg), "")+" "+
				renderAssignment("", "name", QuoteString(rec.Alias), "")+" }")
		}

		lines = append(lines, b.Indent+"];")
	}

	return renderBody(lines, b.Outer)
}
