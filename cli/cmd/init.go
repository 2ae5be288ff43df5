package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/nixprof/log"
	"github.com/ardnew/nixprof/workspace"
)

// DefaultProfileName is the name of the profile created by [Init] when none
// is given.
const DefaultProfileName = "dev"

// Init creates the project layout in the project directory.
type Init struct {
	Profile string `arg:"" default:"${defaultProfile}" help:"Name of the first profile." optional:""`
	Force   bool   `help:"Overwrite existing project files."                             short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	w, err := workspace.Init(ctx, projectFrom(ctx).root, i.Profile, i.Force)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "initialized project",
		slog.String("root", w.Root()),
		slog.String("profile", i.Profile),
	)

	return nil
}
