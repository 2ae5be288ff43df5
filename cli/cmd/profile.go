package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/nixprof/log"
)

// Profile groups the commands managing the project's profiles.
type Profile struct {
	List    ProfileList    `cmd:"" default:"1" help:"List profiles."`
	Default ProfileDefault `cmd:"" help:"Print or change the default profile."`
	New     ProfileNew     `cmd:"" help:"Create an empty profile."`
	Remove  ProfileRemove  `cmd:"" help:"Remove a profile other than the default."`
}

// ProfileList prints the profile names, marking the default profile.
type ProfileList struct{}

// Run executes the profile list command.
func (ProfileList) Run(ctx context.Context) error {
	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	names, err := w.Profiles()
	if err != nil {
		return err
	}

	def, _ := w.DefaultProfile()

	out := outputFrom(ctx)
	s := newStyles(out)

	for _, name := range names {
		line := "  " + name
		if name == def {
			line = "* " + s.name.Render(name)
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}

	return nil
}

// ProfileDefault prints the default profile, or makes Name the default.
type ProfileDefault struct {
	Name string `arg:"" help:"Profile to make the default." optional:""`
}

// Run executes the profile default command.
func (p *ProfileDefault) Run(ctx context.Context) error {
	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	if p.Name == "" {
		name, err := w.DefaultProfile()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(outputFrom(ctx), name)

		return err
	}

	if err := w.SetDefaultProfile(ctx, p.Name); err != nil {
		return err
	}

	log.InfoContext(ctx, "changed default profile", slog.String("profile", p.Name))

	return nil
}

// ProfileNew creates an empty profile.
type ProfileNew struct {
	Name    string `arg:"" help:"Profile name."`
	Default bool   `help:"Make the new profile the default."`
}

// Run executes the profile new command.
func (p *ProfileNew) Run(ctx context.Context) error {
	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	if err := w.CreateProfile(ctx, p.Name); err != nil {
		return err
	}

	log.InfoContext(ctx, "created profile", slog.String("profile", p.Name))

	if !p.Default {
		return nil
	}

	return w.SetDefaultProfile(ctx, p.Name)
}

// ProfileRemove deletes a profile.
type ProfileRemove struct {
	Name string `arg:"" help:"Profile name."`
}

// Run executes the profile remove command.
func (p *ProfileRemove) Run(ctx context.Context) error {
	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	if err := w.RemoveProfile(ctx, p.Name); err != nil {
		return err
	}

	log.InfoContext(ctx, "removed profile", slog.String("profile", p.Name))

	return nil
}
