package lang

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Record is the view of a section entry that filter expressions are
// evaluated against.
type Record struct {
	Kind    string `expr:"kind"    yaml:"kind"`
	Name    string `expr:"name"    yaml:"name"`
	Value   string `expr:"value"   yaml:"value,omitempty"`
	Version string `expr:"version" yaml:"version,omitempty"`
	Comment string `expr:"comment" yaml:"comment,omitempty"`
}

// Record kinds.
const (
	KindPackage = "package"
	KindEnvVar  = "env"
	KindCommand = "command"
	KindPin     = "pin"
	KindInput   = "input"
)

// Record returns the filter view of p.
func (p Package) Record() Record {
	return Record{Kind: KindPackage, Name: p.Name, Version: p.Version, Comment: p.Comment}
}

// Record returns the filter view of v.
func (v EnvVar) Record() Record {
	return Record{Kind: KindEnvVar, Name: v.Name, Value: v.Value, Comment: v.Comment}
}

// Record returns the filter view of c.
func (c Command) Record() Record {
	return Record{Kind: KindCommand, Name: c.Name, Value: c.Body}
}

// Record returns the filter view of rec, pinned from src.
func (rec PinnedPackage) Record(src Source) Record {
	version := ""
	if at := strings.LastIndexByte(rec.Alias, '@'); at > 0 {
		version = rec.Alias[at+1:]
	}

	return Record{Kind: KindPin, Name: rec.Pkg, Value: src.Ref, Version: version}
}

// Record returns the filter view of in.
func (in Input) Record() Record {
	return Record{Kind: KindInput, Name: in.Name, Value: in.URL}
}

// Filter is a compiled boolean expression over a [Record], for example
//
//	name startsWith "python" && version != ""
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles source into a Filter. An empty source yields a
// Filter matching every record.
func CompileFilter(source string) (*Filter, error) {
	if source == "" {
		return &Filter{}, nil
	}

	program, err := expr.Compile(source, expr.Env(Record{}), expr.AsBool())
	if err != nil {
		return nil, ErrFilter.Wrap(err).With(slog.String("filter", source))
	}

	return &Filter{source: source, program: program}, nil
}

// Match reports whether r satisfies the filter.
func (f *Filter) Match(r Record) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, r)
	if err != nil {
		return false, ErrFilter.Wrap(err).With(slog.String("filter", f.source))
	}

	ok, _ := out.(bool)

	return ok, nil
}
