package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/ilmt-transform/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed templates/ilmt-transform.yaml
var configTemplate embed.FS

// templatePath is the location of the defaults template in configTemplate.
const templatePath = "templates/ilmt-transform.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an ilmt-transform defaults file",
		Long: `Initialize creates a .ilmt-transform.yaml defaults file in the current directory.

The file sets defaults for the output directory, the output format and the
summary report. Command-line flags always take precedence over the file.

ilmt-transform looks for the file in this order:
  1. The path given with --config
  2. .ilmt-transform.yaml in the current directory
  3. config.yaml in the XDG config directory (e.g. ~/.config/ilmt-transform)
  4. .ilmt-transform.yaml in the home directory

Examples:
  # Create .ilmt-transform.yaml in current directory
  ilmt-transform init

  # Create a user-wide defaults file
  ilmt-transform init -o ~/.config/ilmt-transform/config.yaml

  # Force overwrite existing file
  ilmt-transform init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the defaults file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing defaults file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// The template must stay loadable as a defaults file.
	var defaults config.File
	if err := yaml.Unmarshal(content, &defaults); err != nil {
		return fmt.Errorf("invalid config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to change the defaults for:")
	fmt.Fprintf(out, "  - outputDir (currently %q)\n", defaults.OutputDir)
	fmt.Fprintf(out, "  - format (currently %q)\n", defaults.Format)
	fmt.Fprintf(out, "  - summary (currently %t)\n", defaults.Summary)

	return nil
}
