package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is the defaults file name looked up in the current
	// and home directories.
	DefaultConfigFile = ".ilmt-transform.yaml"

	// XDGConfigFile is the defaults file name inside XDGConfigDir.
	XDGConfigFile = "config.yaml"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the defaults file.
// Every field is optional; a command-line flag always wins over the file.
type File struct {
	// OutputDir is the default output directory.
	OutputDir string `yaml:"outputDir,omitempty"`

	// Format is the default output format (csv, json or both).
	Format Format `yaml:"format,omitempty"`

	// Summary enables the text summary by default.
	Summary bool `yaml:"summary,omitempty"`
}

// LoadConfigFile loads defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the defaults file in the following order:
// 1. If configPath is specified, use it directly
// 2. .ilmt-transform.yaml in the current directory
// 3. config.yaml in the XDG config directory
// 4. .ilmt-transform.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
