// Package cli provides the treecmp command-line interface.
package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/treecmp/internal/config"
	"github.com/AndreyAkinshin/treecmp/internal/errors"
	"github.com/AndreyAkinshin/treecmp/internal/output"
	"github.com/AndreyAkinshin/treecmp/internal/version"
)

const flagQuiet = "quiet"

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return execute(args, output.New())
}

// execute runs the command tree against w and maps the outcome to an exit
// code. Mismatches are reported by the command itself.
func execute(args []string, w *output.Writer) int {
	cmd := newRootCommand(w)
	cmd.SetArgs(args)
	cmd.SetOut(w.Out())
	cmd.SetErr(w.ErrOut())

	err := cmd.Execute()
	if err == nil {
		return errors.ExitSuccess
	}

	var te *errors.TreecmpError
	if !stderrors.As(err, &te) || te.Kind != errors.KindMismatch {
		w.ErrorPrefix("%v", err)
	}
	return errors.GetExitCode(err)
}

func newRootCommand(w *output.Writer) *cobra.Command {
	md, _ := version.Current()
	var configFile string

	cmd := &cobra.Command{
		Use:   "treecmp [flags] <expected> <under-test>",
		Short: "Compare two nested data files with numeric tolerance",
		Long: `treecmp compares two JSON, YAML or TOML documents leaf by leaf.

Numbers are compared with a relative and an absolute tolerance; every other
leaf must be equal. Every mismatch is reported, followed by a summary with
the pass rate and the largest relative errors.

Settings are read from .treecmp.{yaml,json,toml} in the working directory
(or --config), TREECMP_* environment variables and flags, in increasing
order of precedence.`,
		Example: `  treecmp expected.json actual.json
  treecmp --rel-tol 1e-6 --abs-tol 1e-12 golden.yaml.gz run.yaml.gz
  treecmp --format json --top 5 expected.toml actual.toml`,
		Version:       md.Version,
		Args:          exactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, w, configFile, args[0], args[1])
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Usagef("%v", err)
	})

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default .treecmp.{yaml,json,toml})")
	flags.Float64(config.FlagName(config.KeyRelTol), config.DefaultRelTol, "relative tolerance for numbers")
	flags.Float64(config.FlagName(config.KeyAbsTol), config.DefaultAbsTol, "absolute tolerance for numbers")
	flags.Bool(config.FlagName(config.KeyOrderedKeys), false, "require mapping keys in the same order")
	flags.Bool(config.FlagName(config.KeyFailFast), config.DefaultFailFast, "stop at the first mismatch")
	flags.Bool(config.FlagName(config.KeyNaNEqual), false, "treat NaN as equal to NaN")
	flags.String(config.FlagName(config.KeyDescription), "", "root path label used in mismatch messages")
	flags.String(config.FlagName(config.KeyFormat), config.DefaultFormat, "report format: text or json")
	flags.String(config.FlagName(config.KeyInputFormat), config.DefaultInputFormat, "input format: auto, json, yaml or toml")
	flags.Int(config.FlagName(config.KeyTop), config.DefaultTop, "miscompare groups to list (0 lists all)")
	flags.String(config.FlagName(config.KeyLogLevel), config.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.String(config.FlagName(config.KeyLogFormat), config.DefaultLogFormat, "log format: text or json")
	flags.BoolP(flagQuiet, "q", false, "only print the verdict")

	cmd.AddCommand(newVersionCommand(w))
	cmd.AddCommand(newConfigCommand(w))
	return cmd
}

// exactArgs is cobra.ExactArgs with a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.Usagef("expected %d arguments (<expected> <under-test>), got %d", n, len(args))
		}
		return nil
	}
}

