package cli

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/treecmp/internal/config"
	"github.com/AndreyAkinshin/treecmp/internal/decode"
	"github.com/AndreyAkinshin/treecmp/internal/errors"
	"github.com/AndreyAkinshin/treecmp/internal/logging"
	"github.com/AndreyAkinshin/treecmp/internal/output"
	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// runCompare loads the settings and both inputs, compares them and writes
// the report. A mismatch is returned as a KindMismatch error.
func runCompare(cmd *cobra.Command, w *output.Writer, configFile, expectedPath, underTestPath string) error {
	cfg, err := loadSettings(cmd, w, configFile)
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger, err := logging.Configure(logging.Options{Format: cfg.LogFormat, Level: level, Output: w.ErrOut()})
	if err != nil {
		return errors.Config(err)
	}
	if cfg.File != "" {
		logger.Debug("config file loaded", slog.String("file", cfg.File))
	}

	format, _ := decode.ParseFormat(cfg.InputFormat)
	expected, err := loadInput(logger, expectedPath, format)
	if err != nil {
		return err
	}
	underTest, err := loadInput(logger, underTestPath, format)
	if err != nil {
		return err
	}

	var mismatches []string
	textReport := cfg.Format == config.DefaultFormat
	sink := func(msg string) {
		mismatches = append(mismatches, msg)
		if textReport {
			w.Mismatch(msg)
		}
	}

	res, cmpErr := treecmp.Compare(expected, underTest, cfg.Options(sink))
	if stderrors.Is(cmpErr, treecmp.ErrInvalidOptions) {
		return errors.Config(cmpErr)
	}
	if cmpErr != nil {
		logger.Info("comparison stopped at first mismatch", slog.Any("error", cmpErr))
	}

	report := output.NewReport(res, output.ReportOptions{
		Expected:    expectedPath,
		UnderTest:   underTestPath,
		Description: cfg.Description,
		Top:         cfg.Top,
		Mismatches:  mismatches,
		Aborted:     cmpErr,
	})
	logger.Info("comparison finished",
		slog.String("run_id", report.RunID),
		slog.Bool("match", report.Match),
		slog.Int("total", report.Total),
		slog.Int("failed", report.Failed),
	)

	if textReport {
		w.WriteSummary(report)
	} else if err := w.WriteJSON(report); err != nil {
		return errors.Wrap(err, "cannot write report")
	}

	if !report.Match {
		return errors.Mismatch(fmt.Sprintf("%s and %s differ", expectedPath, underTestPath))
	}
	return nil
}

// loadSettings resolves the configuration and applies the quiet flag.
func loadSettings(cmd *cobra.Command, w *output.Writer, configFile string) (*config.Config, error) {
	cfg, warnings, err := config.Load(config.LoadOptions{ConfigFile: configFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, errors.Config(err)
	}
	if quiet, err := cmd.Flags().GetBool(flagQuiet); err == nil {
		w.SetQuiet(quiet)
	}
	for _, warning := range warnings {
		w.Warning("%s", warning)
	}
	return cfg, nil
}

func loadInput(logger *slog.Logger, path string, format decode.Format) (treecmp.Value, error) {
	v, err := decode.File(path, format)
	if err != nil {
		return treecmp.Value{}, errors.Input(path, err)
	}
	logger.Debug("input loaded", slog.String("file", path), slog.String("kind", v.Kind().String()))
	return v, nil
}
