package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultOutputDir writes generated files next to where the tool is run.
	DefaultOutputDir = "."

	// DefaultFormat generates both the CSV and the JSON file, which is what
	// most ILMT import workflows expect to have at hand.
	DefaultFormat = FormatBoth

	// AppName is the application name used for XDG directory paths.
	AppName = "ilmt-transform"

	// ReportDateLayout is the layout of report dates (YYYY-MM-DD).
	ReportDateLayout = "2006-01-02"
)

// Format selects which ILMT files are generated.
type Format string

// Supported output formats.
const (
	// FormatCSV generates only the tabular CSV file.
	FormatCSV Format = "csv"

	// FormatJSON generates only the nested JSON file.
	FormatJSON Format = "json"

	// FormatBoth generates the CSV and the JSON file.
	FormatBoth Format = "both"
)

// Formats lists the accepted values of the --format flag.
var Formats = []Format{FormatCSV, FormatJSON, FormatBoth}

// Valid reports whether f is one of Formats.
func (f Format) Valid() bool {
	for _, v := range Formats {
		if f == v {
			return true
		}
	}
	return false
}

// WantsCSV reports whether the CSV file is generated.
func (f Format) WantsCSV() bool {
	return f == FormatCSV || f == FormatBoth
}

// WantsJSON reports whether the JSON file is generated.
func (f Format) WantsJSON() bool {
	return f == FormatJSON || f == FormatBoth
}

// Config holds all options for one transformation run.
// It is populated from the defaults file and CLI flags, then passed to the
// driver. Flags given on the command line take precedence over the file.
type Config struct {
	// InputFile is the License Service export to transform.
	InputFile string

	// OutputDir is where generated files are written.
	// It is created, including parents, if it does not exist.
	OutputDir string

	// Format selects the CSV file, the JSON file, or both.
	Format Format

	// ReportDate is the explicit report date in YYYY-MM-DD format.
	// When empty, the current local date is used.
	ReportDate string

	// Summary enables the plain-text summary report.
	Summary bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the defaults file given with --config.
	// When empty, the usual locations are searched (see FindConfigFile).
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Format:    DefaultFormat,
	}
}

// ApplyFile copies the values set in a defaults file into c.
// Zero values in the file leave c unchanged.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.Summary {
		c.Summary = true
	}
}

// XDGConfigDir returns the XDG config directory for ilmt-transform.
// On Linux: ~/.config/ilmt-transform
// On macOS: ~/Library/Application Support/ilmt-transform
// On Windows: %APPDATA%\ilmt-transform
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return ErrNoInputFile
	}

	if !c.Format.Valid() {
		return ErrInvalidFormat
	}

	if c.ReportDate != "" {
		if _, err := time.Parse(ReportDateLayout, c.ReportDate); err != nil {
			return ErrInvalidReportDate
		}
	}

	return nil
}
