package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/rdmx/cli/cmd"
	"github.com/ardnew/rdmx/pkg"
	"github.com/ardnew/rdmx/vars"
)

// CLI is the top-level command-line interface for rdmx.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Init    cmd.Init    `cmd:"" help:"Write a configuration file with the current flag values."`
	Tree    cmd.Tree    `cmd:"" help:"Print the directive tree of a document."`
	Actions cmd.Actions `cmd:"" help:"List the directive actions and their parameters."`

	Update cmd.Update `cmd:"" default:"withargs" help:"Render directives and rewrite documents in place."`
}

// Run executes the rdmx CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early, for example after printing help.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, exit, args)
}

// run is Run with additional kong options.
func run(
	ctx context.Context,
	exit func(code int),
	args []string,
	opts ...kong.Option,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	kvars := kong.Vars{
		"version":               pkg.Name + " " + strings.TrimSpace(pkg.Version),
		cmd.ConfigIdentifier:    configFilePath + ".yaml",
		cmd.CacheIdentifier:     cacheDir(),
		cmd.BackupIdentifier:    backupDir(),
		cmd.EnvPrefixIdentifier: vars.DefaultEnvPrefix,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure the logger before kong reports anything.
	cli.Log.scan(args)

	options := append([]kong.Option{
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
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath+".yaml"),
		kvars,
	}, opts...)

	parser, err := kong.New(&cli, options...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
