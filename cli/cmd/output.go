package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/nixprof/lang"
)

// styles renders listed entries. Styles are bound to the output writer, so
// nothing but plain text is written when it is not a terminal.
type styles struct {
	name, detail, comment, header lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		name:    r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color("3")),
		comment: r.NewStyle().Foreground(lipgloss.Color("8")),
		header:  r.NewStyle().Foreground(lipgloss.Color("5")).Underline(true),
	}
}

// record formats r as a single line.
func (s styles) record(r lang.Record) string {
	var sb strings.Builder

	sb.WriteString(s.name.Render(r.Name))

	if r.Version != "" {
		sb.WriteString("@" + s.detail.Render(r.Version))
	}

	switch r.Kind {
	case lang.KindEnvVar:
		sb.WriteString("=" + s.detail.Render(r.Value))
	case lang.KindInput, lang.KindPin:
		sb.WriteString("  " + s.detail.Render(r.Value))
	}

	if r.Comment != "" {
		sb.WriteString("  " + s.comment.Render("# "+r.Comment))
	}

	return sb.String()
}

// filterRecords returns the records matching the filter expression source.
func filterRecords(records []lang.Record, source string) ([]lang.Record, error) {
	f, err := lang.CompileFilter(source)
	if err != nil {
		return nil, err
	}

	var out []lang.Record

	for _, r := range records {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, r)
		}
	}

	return out, nil
}

// printRecords writes the records matching filter to w, one per line.
func printRecords(w io.Writer, records []lang.Record, filter string) error {
	records, err := filterRecords(records, filter)
	if err != nil {
		return err
	}

	s := newStyles(w)

	for _, r := range records {
		if _, err := fmt.Fprintln(w, s.record(r)); err != nil {
			return err
		}
	}

	return nil
}

// writeYAML writes v to w as a YAML document.
func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = w.Write(data)

	return err
}
