package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/treecmp/internal/errors"
	"github.com/AndreyAkinshin/treecmp/internal/output"
	"github.com/AndreyAkinshin/treecmp/internal/version"
)

func newVersionCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			name, author, ver := version.Info()
			w.Println("%s %s", name, ver)
			if author != "" {
				w.Println("by %s", author)
			}
			return nil
		},
	}
}

func newConfigCommand(w *output.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return errors.Usagef("config: subcommand required (validate)")
		},
	}

	var configFile string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and print the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd, w, configFile)
			if err != nil {
				return err
			}

			w.Success("Configuration is valid.")
			source := cfg.File
			if source == "" {
				source = "(defaults)"
			}
			w.SummaryItem("File", source)
			w.SummaryItem("Relative tolerance", fmt.Sprint(cfg.RelTol))
			w.SummaryItem("Absolute tolerance", fmt.Sprint(cfg.AbsTol))
			w.SummaryItem("Ordered keys", fmt.Sprint(cfg.OrderedKeys))
			w.SummaryItem("Fail fast", fmt.Sprint(cfg.FailFast))
			w.SummaryItem("NaN equal", fmt.Sprint(cfg.NaNEqual))
			w.SummaryItem("Report format", cfg.Format)
			w.SummaryItem("Input format", cfg.InputFormat)
			return nil
		},
	}
	validate.Flags().StringVarP(&configFile, "config", "c", "", "config file (default .treecmp.{yaml,json,toml})")

	cmd.AddCommand(validate)
	return cmd
}
