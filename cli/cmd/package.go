package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ardnew/nixprof/lang"
	"github.com/ardnew/nixprof/log"
	"github.com/ardnew/nixprof/workspace"
)

// Add adds packages to the profile's package list.
type Add struct {
	Packages []string `arg:"" help:"Packages to add, as name or name@version." name:"package"`
	Comment  string   `help:"Inline comment written after each package."                                short:"m"`
	Pin      string   `help:"Pin the packages to a source reference (e.g. github:NixOS/nixpkgs/<rev>)." placeholder:"REF"`
	Version  string   `help:"Version of packages given without one."                                    placeholder:"VERSION"`
}

// Run executes the add command.
func (a *Add) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	if a.Pin == "" {
		var added []string

		err := w.Edit(ctx, profile, func(text string) (string, error) {
			var err error

			for _, name := range a.Packages {
				pkg, version := splitVersion(name)
				if version == "" && a.Version != "" {
					name = lang.PinAlias(pkg, a.Version)
				}

				if text, err = addPackage(text, name, a.Comment); err != nil {
					return "", err
				}

				added = append(added, name)
			}

			return text, nil
		})
		if err != nil {
			return err
		}

		for _, name := range added {
			log.InfoContext(ctx, "added package", slog.String("package", name))
		}

		return nil
	}

	pinID := lang.PinID(a.Pin)

	var added []string

	err = w.EditAll(ctx, []string{profile, w.PinsPath()},
		func(texts []string) ([]string, error) {
			prof, pins := texts[0], texts[1]

			for _, name := range a.Packages {
				pkg, version := splitVersion(name)
				if version == "" {
					version = a.Version
				}

				if version == "" {
					return nil, ErrVersionRequired.With(slog.String("package", name))
				}

				pkg = strings.TrimPrefix(pkg, lang.DefaultScope+".")

				table, err := lang.ParsePinTable(pins)
				if err != nil {
					return nil, err
				}

				if pins, err = table.AddPinnedPackage(pinID, a.Pin, pkg, version); err != nil {
					return nil, err
				}

				if prof, err = addPackage(prof, lang.PinAlias(pkg, version), a.Comment); err != nil {
					return nil, err
				}

				added = append(added, lang.PinAlias(pkg, version))
			}

			return []string{prof, pins}, nil
		})
	if err != nil {
		return err
	}

	for _, alias := range added {
		log.InfoContext(ctx, "added pinned package",
			slog.String("package", alias),
			slog.String("pin", pinID),
		)
	}

	return nil
}

func addPackage(text, name, comment string) (string, error) {
	list, err := lang.ParsePackages(text)
	if err != nil {
		return "", err
	}

	return list.Add(name, comment)
}

// splitVersion splits "name@version" at its last '@'.
func splitVersion(name string) (string, string) {
	if at := strings.LastIndexByte(name, '@'); at > 0 {
		return name[:at], name[at+1:]
	}

	return name, ""
}

// Remove removes packages from the profile's package list. Removing a
// versioned package also removes it from the pin table, along with its
// pin if no other package uses it.
type Remove struct {
	Packages []string `arg:"" help:"Packages to remove." name:"package"`
}

// Run executes the remove command.
func (r *Remove) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	// The pin table is only read when a versioned entry goes away.
	paths := []string{profile}
	if r.versioned(w, profile) {
		if _, err := os.Stat(w.PinsPath()); err == nil {
			paths = append(paths, w.PinsPath())
		}
	}

	err = w.EditAll(ctx, paths, func(texts []string) ([]string, error) {
		for _, name := range r.Packages {
			list, err := lang.ParsePackages(texts[0])
			if err != nil {
				return nil, err
			}

			p, _ := list.Lookup(name)

			if texts[0], err = list.Remove(name); err != nil {
				return nil, err
			}

			if p.Version == "" || len(texts) < 2 {
				continue
			}

			if texts[1], err = unpin(texts[1], p.Alias(list.Scope())); err != nil {
				return nil, err
			}
		}

		return texts, nil
	})
	if err != nil {
		return err
	}

	for _, name := range r.Packages {
		log.InfoContext(ctx, "removed package", slog.String("package", name))
	}

	return nil
}

// versioned reports whether any package to remove is a versioned entry of
// the profile at path.
func (r *Remove) versioned(w *workspace.Workspace, path string) bool {
	text, err := w.Read(path)
	if err != nil {
		return false
	}

	list, err := lang.ParsePackages(text)
	if err != nil {
		return false
	}

	return slices.ContainsFunc(r.Packages, func(name string) bool {
		p, ok := list.Lookup(name)

		return ok && p.Version != ""
	})
}

// unpin removes alias from the pin table text if it is pinned there.
func unpin(pins, alias string) (string, error) {
	table, err := lang.ParsePinTable(pins)
	if err != nil {
		return "", err
	}

	if _, _, ok := table.Lookup(alias); !ok {
		return pins, nil
	}

	return table.RemovePinnedPackage(alias)
}

// unlist removes the entry matching alias from the profile text if it is
// listed there.
func unlist(prof, alias string) (string, error) {
	list, err := lang.ParsePackages(prof)
	if errors.Is(err, lang.ErrSectionNotFound) {
		return prof, nil
	}

	if err != nil {
		return "", err
	}

	if !list.Exists(alias) {
		return prof, nil
	}

	return list.Remove(alias)
}

// List prints the profile's packages.
type List struct {
	Filter string `help:"Only list packages matching an expression over name, version and comment." placeholder:"EXPR" short:"f"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	text, err := w.Read(profile)
	if err != nil {
		return err
	}

	list, err := lang.ParsePackages(text)
	if err != nil {
		return err
	}

	return printRecords(outputFrom(ctx), packageRecords(list), l.Filter)
}

// packageRecords returns the records of list with scope qualifiers
// removed from their names.
func packageRecords(list *lang.PackageList) []lang.Record {
	pkgs := list.Packages()
	records := make([]lang.Record, len(pkgs))

	for i, p := range pkgs {
		p.Name = strings.TrimPrefix(p.Name, list.Scope()+".")
		records[i] = p.Record()
	}

	return records
}
