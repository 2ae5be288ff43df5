package cli

import (
	"context"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nixprof/cli/cmd"
	"github.com/ardnew/nixprof/pkg"
	"github.com/ardnew/nixprof/workspace"
)

// CLI is the top-level command-line interface for nixprof.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Root   string `default:"."           help:"Project directory."                              short:"C" type:"path"`
	Select string `env:"NIXPROF_PROFILE" help:"Profile to edit instead of the default profile." name:"profile" short:"P"`

	Add     cmd.Add     `cmd:"" help:"Add packages to the profile."`
	Remove  cmd.Remove  `cmd:"" help:"Remove packages from the profile." aliases:"rm"`
	List    cmd.List    `cmd:"" help:"List the profile's packages."     aliases:"ls"`
	Env     cmd.Env     `cmd:"" help:"Edit environment variables."`
	Command cmd.Command `cmd:"" help:"Edit shell functions of the shell hook."`
	Pin     cmd.Pin     `cmd:"" help:"Inspect and edit pinned packages."`
	Input   cmd.Input   `cmd:"" help:"Edit the flake's inputs."`
	Profile cmd.Profile `cmd:"" help:"Manage profiles."`
	Show    cmd.Show    `cmd:"" help:"Show everything the profile declares."`
	Init    cmd.Init    `cmd:"" help:"Create a project in the project directory."`
	Config  cmd.Config  `cmd:"" help:"Write the current flag values to the configuration file."`
	Version cmd.Version `cmd:"" help:"Print the version."`
}

// Run executes the nixprof CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + configExt)

	vars := kong.Vars{
		cmd.ConfigIdentifier:         configFilePath,
		cmd.CacheIdentifier:          cacheDir(),
		cmd.DefaultProfileIdentifier: cmd.DefaultProfileName,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong parses, so that they take effect for
	// errors reported during parsing regardless of their position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath, projectConfigPath(args)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithProject(ctx, cli.Root, cli.Select)

	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}

// projectConfigPath returns the path of the configuration file kept in the
// project directory named by a --root or -C argument, or in the working
// directory.
func projectConfigPath(args []string) string {
	root := "."

	for i, arg := range args {
		switch {
		case (arg == "--root" || arg == "-C") && i+1 < len(args):
			root = args[i+1]
		case len(arg) > len("--root=") && arg[:len("--root=")] == "--root=":
			root = arg[len("--root="):]
		}
	}

	return filepath.Join(root, workspace.Dir, baseConfig+configExt)
}
