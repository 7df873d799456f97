package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/tzlab/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	globals  *commands.Globals
	reporter *Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output    io.Writer
	ErrOutput io.Writer
	// Args replaces os.Args[1:] when not nil.
	Args []string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cli := &CLI{
		globals:  &commands.Globals{},
		reporter: NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.ErrOutput)
	if opts.Args != nil {
		cli.rootCmd.SetArgs(opts.Args)
	}
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	run := commands.NewRunCmd(cli.globals)
	cmd := &cobra.Command{
		Use:   "tzlab [task] [zone]",
		Short: "Time zone conversion and reporting harness",
		Long: `Runs one of the time zone tasks, or all of them when no task is given:
  EnumTimeZones, AnyTimeZoneToAnyOtherTimeZone, AnyTimeZoneToUTC,
  AnyTimeZoneToLocalTime, EnumerateTimeZoneAdjustments <zone>`,
		Args:          cobra.MaximumNArgs(2),
		RunE:          run.Run,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.globals.Format, "output", "o", "verbose", "Output format: verbose, terse or quiet")
	flags.StringVarP(&cli.globals.ConfigPath, "config", "c", "", "Path to the settings file")
	flags.StringVar(&cli.globals.LogLevel, "log-level", "", "Log level (overrides log.level)")

	cmd.AddCommand(commands.NewShowCmd(cli.globals, cli.reporter))

	return cmd
}
