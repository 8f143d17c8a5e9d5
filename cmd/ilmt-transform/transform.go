package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nao1215/ilmt-transform/internal/config"
	"github.com/nao1215/ilmt-transform/internal/loader"
	"github.com/nao1215/ilmt-transform/internal/log"
	"github.com/nao1215/ilmt-transform/internal/pipeline"
	"github.com/nao1215/ilmt-transform/internal/report"
	"github.com/spf13/cobra"
)

// runTransformCmd executes the transformation.
func runTransformCmd(cmd *cobra.Command, args []string) error {
	// Build config from the defaults file and flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	if cfg.ConfigFilePath != "" {
		logger.Debug("using config file", "path", cfg.ConfigFilePath)
	}

	return runTransform(cmd.OutOrStdout(), cfg, logger, time.Now)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the defaults file and cobra command flags.
// Only flags given on the command line override values from the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error

	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not found.
	// If no path was specified, run without a defaults file.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
		cfg.ConfigFilePath = configPath
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("output-dir") {
		cfg.OutputDir, err = flags.GetString("output-dir")
		if err != nil {
			return nil, err
		}
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = config.DefaultOutputDir
	}

	if flags.Changed("format") {
		format, err := flags.GetString("format")
		if err != nil {
			return nil, err
		}
		cfg.Format = config.Format(format)
	}

	cfg.ReportDate, err = flags.GetString("date")
	if err != nil {
		return nil, err
	}

	if flags.Changed("summary") {
		cfg.Summary, err = flags.GetBool("summary")
		if err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.InputFile = args[0]
	}

	return cfg, nil
}

// runTransform loads the export and writes the selected files.
// Progress lines are printed to out. Files written before a failure are kept.
func runTransform(out io.Writer, cfg *config.Config, logger *slog.Logger, now func() time.Time) error {
	fmt.Fprintf(out, "Loading license data from: %s\n", cfg.InputFile)

	export, err := loader.Load(cfg.InputFile)
	if err != nil {
		return err
	}

	logger.Debug("license data loaded",
		"products", len(export.Products()),
		"containers", export.ContainerCount(),
	)

	if err := report.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}

	// The report date is fixed once so every file of a run carries the same date.
	reportDate := config.ResolveReportDate(cfg.ReportDate, now())
	files := config.NewOutputFiles(cfg.OutputDir, cfg.InputFile, reportDate)
	opts := []report.Option{report.WithReportDate(reportDate), report.WithClock(now)}

	logger.Debug("resolved output files",
		"csv", files.CSV,
		"json", files.JSON,
		"summary", files.Summary,
		"reportDate", reportDate,
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	if cfg.Format.WantsCSV() {
		p.AddStep(pipeline.NewCSVStep(out, files.CSV, opts...))
	}
	if cfg.Format.WantsJSON() {
		p.AddStep(pipeline.NewJSONStep(out, files.JSON, opts...))
	}
	if cfg.Summary {
		p.AddStep(pipeline.NewSummaryStep(out, files.Summary, opts...))
	}

	logger.Debug("running output steps", "count", p.StepCount(), "steps", p.StepNames())

	if err := p.Execute(export); err != nil {
		logger.Debug("transformation stopped", "completed", p.Completed())
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Transformation complete!")

	return nil
}
