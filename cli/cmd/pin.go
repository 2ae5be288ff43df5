package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/nixprof/lang"
	"github.com/ardnew/nixprof/log"
)

// Pin groups the commands inspecting and editing the pin table.
type Pin struct {
	List   PinList   `cmd:"" default:"1" help:"List pinned packages."`
	Remove PinRemove `cmd:"" help:"Remove a pinned package."`
}

// PinList prints every pinned package with its source reference.
type PinList struct {
	Filter string `help:"Only list pins matching an expression over name, version and value." placeholder:"EXPR" short:"f"`
}

// Run executes the pin list command.
func (p *PinList) Run(ctx context.Context) error {
	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	text, err := w.Read(w.PinsPath())
	if err != nil {
		return err
	}

	table, err := lang.ParsePinTable(text)
	if err != nil {
		return err
	}

	return printRecords(outputFrom(ctx), pinRecords(table), p.Filter)
}

func pinRecords(table *lang.PinTable) []lang.Record {
	var records []lang.Record

	for _, pin := range table.Pins() {
		src, _ := table.Source(pin.Name)

		for _, rec := range pin.Packages {
			records = append(records, rec.Record(src))
		}
	}

	return records
}

// PinRemove deletes a pinned package, and its pin and source once no
// package uses them. The matching entry of the selected profile is removed
// with it.
type PinRemove struct {
	Alias string `arg:"" help:"Pinned package as name@version."`
}

// Run executes the pin remove command.
func (p *PinRemove) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	err = w.EditAll(ctx, []string{w.PinsPath(), profile},
		func(texts []string) ([]string, error) {
			table, err := lang.ParsePinTable(texts[0])
			if err != nil {
				return nil, err
			}

			if texts[0], err = table.RemovePinnedPackage(p.Alias); err != nil {
				return nil, err
			}

			if texts[1], err = unlist(texts[1], p.Alias); err != nil {
				return nil, err
			}

			return texts, nil
		})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "removed pinned package", slog.String("package", p.Alias))

	return nil
}
