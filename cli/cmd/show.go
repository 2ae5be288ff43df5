package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/ardnew/nixprof/lang"
)

// Show prints everything a profile declares together with the project's
// pins and flake inputs.
type Show struct {
	Format string `default:"text" enum:"text,yaml" help:"Output format (${enum})." short:"o"`
}

// profileView is the content printed by [Show].
type profileView struct {
	Profile  string        `yaml:"profile"`
	Packages []lang.Record `yaml:"packages,omitempty"`
	Env      []lang.Record `yaml:"env,omitempty"`
	Commands []lang.Record `yaml:"commands,omitempty"`
	Pins     []lang.Record `yaml:"pins,omitempty"`
	Inputs   []lang.Record `yaml:"inputs,omitempty"`
}

// Run executes the show command.
func (s *Show) Run(ctx context.Context) error {
	view, err := s.view(ctx)
	if err != nil {
		return err
	}

	out := outputFrom(ctx)

	if s.Format == "yaml" {
		return writeYAML(out, view)
	}

	return view.write(out)
}

func (s *Show) view(ctx context.Context) (profileView, error) {
	w, err := openWorkspace(ctx)
	if err != nil {
		return profileView{}, err
	}

	name, err := w.Resolve(projectFrom(ctx).profile)
	if err != nil {
		return profileView{}, err
	}

	text, err := w.Read(w.ProfilePath(name))
	if err != nil {
		return profileView{}, err
	}

	view := profileView{Profile: name}

	if list, err := lang.ParsePackages(text); err == nil {
		view.Packages = packageRecords(list)
	} else if !errors.Is(err, lang.ErrSectionNotFound) {
		return profileView{}, err
	}

	if m, err := lang.ParseEnvVars(text); err == nil {
		view.Env = envRecords(m)
	} else if !errors.Is(err, lang.ErrSectionNotFound) {
		return profileView{}, err
	}

	if h, err := lang.ParseShellHook(text); err == nil {
		for _, c := range h.Commands() {
			view.Commands = append(view.Commands, c.Record())
		}
	} else if !errors.Is(err, lang.ErrSectionNotFound) {
		return profileView{}, err
	}

	if text, err := readOptional(w.Read, w.PinsPath()); err != nil {
		return profileView{}, err
	} else if text != "" {
		table, err := lang.ParsePinTable(text)
		if err != nil {
			return profileView{}, err
		}

		view.Pins = pinRecords(table)
	}

	if text, err := readOptional(w.Read, w.FlakePath()); err != nil {
		return profileView{}, err
	} else if text != "" {
		set, err := lang.ParseInputs(text)
		if err == nil {
			view.Inputs = inputRecords(set)
		} else if !errors.Is(err, lang.ErrSectionNotFound) {
			return profileView{}, err
		}
	}

	return view, nil
}

// readOptional reads path, returning no content if it does not exist.
func readOptional(read func(string) (string, error), path string) (string, error) {
	text, err := read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	return text, err
}

func (v profileView) write(w io.Writer) error {
	s := newStyles(w)

	if _, err := fmt.Fprintln(w, s.header.Render("profile")+" "+s.name.Render(v.Profile)); err != nil {
		return err
	}

	for _, sec := range []struct {
		title   string
		records []lang.Record
	}{
		{"packages", v.Packages},
		{"env", v.Env},
		{"commands", v.Commands},
		{"pins", v.Pins},
		{"inputs", v.Inputs},
	} {
		if len(sec.records) == 0 {
			continue
		}

		if _, err := fmt.Fprintln(w, s.header.Render(sec.title)); err != nil {
			return err
		}

		for _, r := range sec.records {
			if r.Kind == lang.KindCommand {
				r.Value = ""
			}

			if _, err := fmt.Fprintln(w, "  "+s.record(r)); err != nil {
				return err
			}
		}
	}

	return nil
}
