package main

import (
	"fmt"
	"os"

	"github.com/nao1215/ilmt-transform/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ilmt-transform.
// The root command itself runs the transformation.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ilmt-transform [flags] <input_file>",
		Short: "Transform IBM License Service exports for ILMT",
		Long: `ilmt-transform converts an IBM License Service usage export (JSON) into
files that the IBM License Metric Tool (ILMT) can import.

It generates:
- ilmt-<name>-<date>.csv: one row per container deployment
- ilmt-<name>-<date>.json: products with their deployments
- ilmt-summary-<date>.txt: a plain-text report (with --summary)

Examples:
  # Generate CSV and JSON in the current directory
  ilmt-transform license-export.json

  # Only CSV, into a reports directory, for a given date
  ilmt-transform -o reports -f csv -d 2024-01-15 license-export.json

  # Also write the summary report
  ilmt-transform --summary license-export.json

Defaults for --output-dir, --format and --summary can be kept in a
.ilmt-transform.yaml file (see "ilmt-transform init").`,
		Version:       getVersion(),
		Args:          cobra.ExactArgs(1),
		RunE:          runTransformCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Transformation flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory for generated files (created if needed)")
	cmd.Flags().StringP("format", "f", string(config.DefaultFormat),
		"Output format: csv, json or both")
	cmd.Flags().StringP("date", "d", "",
		"Report date in YYYY-MM-DD format (default: today)")
	cmd.Flags().BoolP("summary", "s", false,
		"Also generate the plain-text summary report")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .ilmt-transform.yaml in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
