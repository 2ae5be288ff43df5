package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/nixprof/lang"
	"github.com/ardnew/nixprof/log"
)

// Command groups the commands editing shell functions defined in the
// profile's shell hook.
type Command struct {
	Add    CommandAdd    `cmd:"" help:"Add a shell function."`
	Remove CommandRemove `cmd:"" help:"Remove a shell function."`
	List   CommandList   `cmd:"" default:"1" help:"List shell functions."`
}

// CommandAdd appends a named shell function to the shell hook. The body is
// taken from --body, from --file, or from standard input, in that order.
type CommandAdd struct {
	Name string `arg:"" help:"Function name."`
	Body string `help:"Function body."                               short:"b"`
	File string `help:"Read the function body from a file."         type:"existingfile"`
}

// Run executes the command add command.
func (c *CommandAdd) Run(ctx context.Context) error {
	if err := lang.ValidateCommandName(c.Name); err != nil {
		return err
	}

	body, err := c.body(ctx)
	if err != nil {
		return err
	}

	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	err = w.Edit(ctx, profile, func(text string) (string, error) {
		h, err := lang.ParseShellHook(text)
		if err != nil {
			return "", err
		}

		return h.Add(c.Name, body)
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "added command", slog.String("command", c.Name))

	return nil
}

func (c *CommandAdd) body(ctx context.Context) (string, error) {
	if c.Body != "" {
		return c.Body, nil
	}

	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", ErrReadInput.With(slog.String("file", c.File)).Wrap(err)
		}

		return string(data), nil
	}

	data, err := io.ReadAll(inputFrom(ctx))
	if err != nil {
		return "", ErrReadInput.With(slog.String("file", "-")).Wrap(err)
	}

	return string(data), nil
}

// CommandRemove deletes a shell function from the shell hook.
type CommandRemove struct {
	Name string `arg:"" help:"Function name."`
}

// Run executes the command remove command.
func (c *CommandRemove) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	return w.Edit(ctx, profile, func(text string) (string, error) {
		h, err := lang.ParseShellHook(text)
		if err != nil {
			return "", err
		}

		return h.Remove(c.Name)
	})
}

// CommandList prints the names of the shell functions.
type CommandList struct {
	Body bool `help:"Print each function's body."`
}

// Run executes the command list command.
func (c *CommandList) Run(ctx context.Context) error {
	w, profile, err := openProfile(ctx)
	if err != nil {
		return err
	}

	text, err := w.Read(profile)
	if err != nil {
		return err
	}

	h, err := lang.ParseShellHook(text)
	if err != nil {
		return err
	}

	out := outputFrom(ctx)
	s := newStyles(out)

	for _, cmd := range h.Commands() {
		if _, err := fmt.Fprintln(out, s.name.Render(cmd.Name)); err != nil {
			return err
		}

		if !c.Body || cmd.Body == "" {
			continue
		}

		for line := range strings.Lines(cmd.Body + "\n") {
			if _, err := fmt.Fprint(out, "  "+line); err != nil {
				return err
			}
		}
	}

	return nil
}
