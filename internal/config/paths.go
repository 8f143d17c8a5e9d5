package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// OutputFiles holds the paths of the files generated by one run.
type OutputFiles struct {
	// CSV is the tabular ILMT file: ilmt-<stem>-<date>.csv
	CSV string

	// JSON is the nested ILMT file: ilmt-<stem>-<date>.json
	JSON string

	// Summary is the text report: ilmt-summary-<date>.txt
	Summary string
}

// NewOutputFiles derives output paths from the input file name and report date.
func NewOutputFiles(outputDir, inputFile, reportDate string) OutputFiles {
	stem := Stem(inputFile)
	return OutputFiles{
		CSV:     filepath.Join(outputDir, fmt.Sprintf("ilmt-%s-%s.csv", stem, reportDate)),
		JSON:    filepath.Join(outputDir, fmt.Sprintf("ilmt-%s-%s.json", stem, reportDate)),
		Summary: filepath.Join(outputDir, fmt.Sprintf("ilmt-summary-%s.txt", reportDate)),
	}
}

// Stem returns the base name of path without its final extension.
// "export.json" becomes "export" and "usage.2024.json" becomes "usage.2024".
// A leading dot does not start an extension and neither does a trailing one,
// so ".export" and "export." are returned unchanged.
func Stem(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndex(name, ".")
	if i > 0 && i < len(name)-1 {
		return name[:i]
	}
	return name
}

// ResolveReportDate returns date, or the date of now when date is empty.
func ResolveReportDate(date string, now time.Time) string {
	if date != "" {
		return date
	}
	return now.Format(ReportDateLayout)
}
