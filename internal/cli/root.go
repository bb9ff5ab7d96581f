package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/opener"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Opener opens links for the open command. Nil uses the system browser.
	Opener opener.Opener
	// EnvFile is loaded before configuration is read. Empty skips it.
	EnvFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the dxlink CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{EnvFile: ".env"})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dxlink",
		Short: "dxlink - data explorer deep links",
		Long: `Build deep links into a MOLGENIS data explorer from field=value filters.

Filters become RSQL clauses: flat fields match exactly (gender==female) or by
membership (country=in=(Australia,New Zealand)); dotted reference fields are
queried (sample.origin=q=blood). Null and empty values are dropped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, CodeUsage,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return NewExitError(ExitCommandError, CodeUsage, err.Error())
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default $DXLINK_CONFIG or ./dxlink.yaml)")

	// Add subcommands
	cmd.AddCommand(NewURLCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewOpenCommand(opts))
	cmd.AddCommand(NewRowsCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewPresetsCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// Run executes the CLI with args and returns the process exit code.
// Failures are reported through the OutputFormatter in the selected format.
func Run(args []string, stdout, stderr io.Writer) int {
	return run(&RootOptions{EnvFile: ".env"}, args, stdout, stderr)
}

func run(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	format := opts.Format
	if !slices.Contains(ValidFormats, format) {
		format = "text"
	}
	out := &OutputFormatter{Format: format, Writer: stdout, ErrWriter: stderr, Verbose: opts.Verbose}
	_ = out.Fail(err)

	return GetExitCode(err)
}

// usageArgs marks positional argument errors as command errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return NewExitError(ExitCommandError, CodeUsage, err.Error())
		}
		return nil
	}
}
