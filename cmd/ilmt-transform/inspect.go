package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/ilmt-transform/internal/loader"
	"github.com/nao1215/ilmt-transform/internal/log"
	"github.com/nao1215/ilmt-transform/internal/report"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <input_file>",
		Short: "Summarize a License Service export as Markdown",
		Long: `Inspect reads an IBM License Service export and prints a Markdown overview
without generating any ILMT files.

The overview includes:
- A table of products with their summed container CPU and memory limits
- Quantity totals per metric type
- A chart of containers per namespace
- Alerts for mixed metric types and values that cannot be summed

Examples:
  # Print the overview
  ilmt-transform inspect license-export.json

  # Save the overview to a file
  ilmt-transform inspect -o review/export.md license-export.json`,
		Args: cobra.ExactArgs(1),
		RunE: runInspectCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write the overview to the specified file path (creates directories if needed)")

	return cmd
}

// runInspectCmd executes the inspect command.
func runInspectCmd(cmd *cobra.Command, args []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)

	export, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	logger.Debug("license data loaded",
		"products", len(export.Products()),
		"containers", export.ContainerCount(),
	)

	newWriter := func(w io.Writer) report.Writer {
		return report.NewMarkdownWriter(w)
	}

	if outputPath == "" {
		_, err := newWriter(cmd.OutOrStdout()).Write(export)
		return err
	}

	if err := report.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return err
	}

	n, err := report.WriteFile(outputPath, export, newWriter)
	if err != nil {
		return err
	}
	logger.Debug("file written", "path", outputPath, "bytes", n)

	fmt.Fprintf(cmd.OutOrStdout(), "Inspection report written to: %s\n", outputPath)
	return nil
}
