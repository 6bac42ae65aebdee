// Package cli implements the bcre command line.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coregx/bcre"
	"github.com/coregx/bcre/internal/logging"
	"github.com/coregx/bcre/vm"
)

// RootOptions holds the flags of the bcre command.
type RootOptions struct {
	Quiet       bool
	Verbose     bool
	Verbosity   logging.Verbosity
	ConfigFile  string
	Disasm      bool
	NoPrefilter bool
	MaxSteps    int
}

// NewRootCommand creates the bcre command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Verbosity: logging.Print}

	cmd := &cobra.Command{
		Use:   "bcre [flags] PATTERN STRING",
		Short: "bcre - byte code regular expressions",
		Long: "Compile PATTERN to byte code and report whether it matches STRING.\n\n" +
			"Exit status is 0 on match, 1 on no match, 2 on usage or pattern\n" +
			"errors and 3 when the search fails.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, opts, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "no output, exit status only")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "trace every executed instruction")
	flags.Var(&opts.Verbosity, "verbosity", "log level (quiet|error|alert|print|debug|trace)")
	flags.StringVar(&opts.ConfigFile, "config", "", "TOML configuration file")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print the compiled program")
	flags.BoolVar(&opts.NoPrefilter, "no-prefilter", false, "run the interpreter at every offset")
	flags.IntVar(&opts.MaxSteps, "max-steps", 0, "abort after N executed instructions (0 = unlimited)")
	cmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	return cmd
}

// Execute runs the bcre command with args and returns the exit code.
// Errors other than "no match" are written to stderr.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	code := GetExitCode(err)
	if err != nil && code != ExitNoMatch {
		fmt.Fprintln(stderr, "bcre:", err)
	}
	return code
}

func runMatch(cmd *cobra.Command, opts *RootOptions, pattern, subject string) error {
	config := bcre.DefaultConfig()
	verbosity := opts.Verbosity

	if opts.ConfigFile != "" {
		file, err := LoadConfig(opts.ConfigFile)
		if err != nil {
			return WrapExitError(ExitUsage, "invalid config", err)
		}
		if file.Verbosity != nil && !cmd.Flags().Changed("verbosity") {
			verbosity = *file.Verbosity
		}
		if file.Prefilter != nil {
			config.EnablePrefilter = *file.Prefilter
		}
		if file.MaxSteps != nil {
			config.MaxSteps = *file.MaxSteps
		}
	}

	switch {
	case opts.Quiet:
		verbosity = logging.Quiet
	case opts.Verbose:
		verbosity = logging.Trace
	}
	if cmd.Flags().Changed("no-prefilter") {
		config.EnablePrefilter = !opts.NoPrefilter
	}
	if cmd.Flags().Changed("max-steps") {
		config.MaxSteps = opts.MaxSteps
	}
	config.Logger = logging.New(cmd.ErrOrStderr(), verbosity)

	re, err := bcre.CompileWithConfig(pattern, config)
	if err != nil {
		return WrapExitError(ExitUsage, "compile", err)
	}

	out := cmd.OutOrStdout()
	if opts.Disasm && !opts.Quiet {
		fmt.Fprint(out, re.Disassemble())
	}

	matched, err := re.MatchStringErr(subject)
	switch {
	case errors.Is(err, vm.ErrStepLimit):
		return WrapExitError(ExitExecution, "search aborted", err)
	case err != nil:
		return WrapExitError(ExitExecution, "malformed program", err)
	case !matched:
		if !opts.Quiet {
			fmt.Fprintln(out, "no match")
		}
		return NewExitError(ExitNoMatch, "no match")
	}

	if !opts.Quiet {
		fmt.Fprintln(out, "match")
	}
	return nil
}
