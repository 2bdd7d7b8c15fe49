package cli

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/phrasegen/cli/cmd"
	"github.com/ardnew/phrasegen/pkg"
)

// CLI is the top-level command-line interface for phrasegen.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Path    []string         `help:"Directories searched for input files, before those in ${searchPathEnv}." placeholder:"DIR" sep:":" short:"P" type:"path"`
	Version kong.VersionFlag `help:"Print version and exit."`

	Build     cmd.Build     `cmd:"" default:"withargs" help:"Expand phrase templates"`
	Modifiers cmd.Modifiers `cmd:""                   help:"List modifiers"`
	Variants  cmd.Variants  `cmd:""                   help:"Print the variant dictionary"`
	Repl      cmd.Repl      `cmd:""                   help:"Preview templates interactively"`
}

// Run executes the phrasegen CLI with the given context and arguments.
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

	vars := cmd.Vars(pkg.CacheDir()).
		CloneWith(kong.Vars{
			"version":       pkg.Version,
			"searchPathEnv": searchPathEnv,
		}).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure the logger before parsing, wherever its flags appear.
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
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolveYAML, configPath(baseConfig+".yaml")),
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
	ctx = cmd.WithSearchPath(ctx, searchPath(os.Getenv(searchPathEnv), cli.Path...))

	// Apply every parsed logger option, including those without a
	// TextUnmarshaler.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	ktx.BindTo(ctx, (*context.Context)(nil))

	return ktx.Run()
}
