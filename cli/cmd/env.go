package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/nixprof/lang"
	"github.com/ardnew/nixprof/log"
)

// Env groups the commands editing the profile's environment variables.
type Env struct {
	Add    EnvAdd    `cmd:"" help:"Add an environment variable."`
	Remove EnvRemove `cmd:"" help:"Remove an environment variable."`
	List   EnvList   `cmd:"" default:"1" help:"List environment variables."`
}

// EnvAdd declares an environment variable.
type EnvAdd struct {
	Name    string `arg:"" help:"Variable name."`
	Value   string `arg:"" help:"Variable value."`
	Prepend bool   `help:"Prepend the colon-separated items of the value to the existing value."`
	Force   bool   `help:"Replace the value of an existing variable."                               short:"f"`
}

// Run executes the env add command.
func (e *EnvAdd) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	err = w.Edit(ctx, profile, func(text string) (string, error) {
		m, err := lang.ParseEnvVars(text)
		if err != nil {
			return "", err
		}

		switch {
		case e.Prepend:
			return m.Prepend(e.Name, strings.Split(e.Value, lang.PathListSeparator)...)
		case e.Force:
			return m.Set(e.Name, e.Value)
		default:
			return m.Add(e.Name, e.Value)
		}
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "set environment variable",
		slog.String("name", e.Name),
		slog.Bool("prepend", e.Prepend),
	)

	return nil
}

// EnvRemove deletes an environment variable.
type EnvRemove struct {
	Name string `arg:"" help:"Variable name."`
}

// Run executes the env remove command.
func (e *EnvRemove) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	return w.Edit(ctx, profile, func(text string) (string, error) {
		m, err := lang.ParseEnvVars(text)
		if err != nil {
			return "", err
		}

		return m.Remove(e.Name)
	})
}

// EnvList prints the profile's environment variables.
type EnvList struct {
	Filter string `help:"Only list variables matching an expression over name, value and comment." placeholder:"EXPR" short:"f"`
}

// Run executes the env list command.
func (e *EnvList) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	text, err := w.Read(profile)
	if err != nil {
		return err
	}

	m, err := lang.ParseEnvVars(text)
	if err != nil {
		return err
	}

	return printRecords(outputFrom(ctx), envRecords(m), e.Filter)
}

func envRecords(m *lang.EnvVarMap) []lang.Record {
	vars := m.Vars()
	records := make([]lang.Record, len(vars))

	for i, v := range vars {
		records[i] = v.Record()
	}

	return records
}
