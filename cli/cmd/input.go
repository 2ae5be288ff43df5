package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/nixprof/lang"
	"github.com/ardnew/nixprof/log"
)

// Input groups the commands editing the inputs of the project's flake.
type Input struct {
	Add    InputAdd    `cmd:"" help:"Add a flake input."`
	Remove InputRemove `cmd:"" help:"Remove a flake input."`
	Update InputUpdate `cmd:"" help:"Change the URL of a flake input."`
	List   InputList   `cmd:"" default:"1" help:"List flake inputs."`
}

// InputAdd declares a flake input.
type InputAdd struct {
	Name string `arg:"" help:"Input name."`
	URL  string `arg:"" help:"Flake reference (e.g. github:owner/repo)." name:"url"`
}

// Run executes the input add command.
func (i *InputAdd) Run(ctx context.Context) error {
	err := editInputs(ctx, func(set *lang.InputSet) (string, error) {
		return set.Add(i.Name, i.URL)
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "added input", slog.String("input", i.Name))

	return nil
}

// InputRemove deletes every binding of a flake input.
type InputRemove struct {
	Name string `arg:"" help:"Input name."`
}

// Run executes the input remove command.
func (i *InputRemove) Run(ctx context.Context) error {
	return editInputs(ctx, func(set *lang.InputSet) (string, error) {
		return set.Remove(i.Name)
	})
}

// InputUpdate replaces the URL of a flake input.
type InputUpdate struct {
	Name string `arg:"" help:"Input name."`
	URL  string `arg:"" help:"New flake reference." name:"url"`
}

// Run executes the input update command.
func (i *InputUpdate) Run(ctx context.Context) error {
	return editInputs(ctx, func(set *lang.InputSet) (string, error) {
		return set.Update(i.Name, i.URL)
	})
}

func editInputs(ctx context.Context, fn func(*lang.InputSet) (string, error)) error {
	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	return w.Edit(ctx, w.FlakePath(), func(text string) (string, error) {
		set, err := lang.ParseInputs(text)
		if err != nil {
			return "", err
		}

		return fn(set)
	})
}

// InputList prints the flake inputs and their URLs.
type InputList struct {
	Filter string `help:"Only list inputs matching an expression over name and value." placeholder:"EXPR" short:"f"`
}

// Run executes the input list command.
func (i *InputList) Run(ctx context.Context) error {
	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	text, err := w.Read(w.FlakePath())
	if err != nil {
		return err
	}

	set, err := lang.ParseInputs(text)
	if err != nil {
		return err
	}

	return printRecords(outputFrom(ctx), inputRecords(set), i.Filter)
}

func inputRecords(set *lang.InputSet) []lang.Record {
	inputs := set.Inputs()
	records := make([]lang.Record, len(inputs))

	for i, in := range inputs {
		records[i] = in.Record()
	}

	return records
}
