package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nixprof/log"
	"github.com/ardnew/nixprof/workspace"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	projectKey struct{}
	stdioKey   struct{}

	// project identifies the project directory and the profile selected on
	// the command line.
	project struct {
		root, profile string
	}

	stdio struct {
		in  io.Reader
		out io.Writer
	}
)

// WithProject returns a new context.Context selecting the project rooted at
// root. An empty profile selects the project's default profile.
func WithProject(ctx context.Context, root, profile string) context.Context {
	return context.WithValue(ctx, projectKey{}, project{root: root, profile: profile})
}

// WithStdio returns a new context.Context whose commands read input from in
// and write results to out. Nil values keep the standard streams.
func WithStdio(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, stdioKey{}, stdio{in: in, out: out})
}

func projectFrom(ctx context.Context) project {
	p, _ := ctx.Value(projectKey{}).(project)
	if p.root == "" {
		p.root = "."
	}

	return p
}

func outputFrom(ctx context.Context) io.Writer {
	if s, ok := ctx.Value(stdioKey{}).(stdio); ok && s.out != nil {
		return s.out
	}

	return os.Stdout
}

func inputFrom(ctx context.Context) io.Reader {
	if s, ok := ctx.Value(stdioKey{}).(stdio); ok && s.in != nil {
		return s.in
	}

	return os.Stdin
}

// openWorkspace opens the project selected in ctx.
func openWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	return workspace.Open(projectFrom(ctx).root)
}

// openProfile opens the project selected in ctx and resolves the profile to
// operate on. It returns the workspace and the path of the profile.
func openProfile(ctx context.Context) (*workspace.Workspace, string, error) {
	w, err := openWorkspace(ctx)
	if err != nil {
		return nil, "", err
	}

	name, err := w.Resolve(projectFrom(ctx).profile)
	if err != nil {
		return nil, "", err
	}

	log.DebugContext(ctx, "resolved profile", slog.String("profile", name))

	return w, w.ProfilePath(name), nil
}
