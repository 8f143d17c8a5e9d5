package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/ilmt-transform/internal/model"
	"github.com/nao1215/ilmt-transform/internal/report"
)

// Step names, in the order a transformation runs them.
const (
	StepCSV     = "csv"
	StepJSON    = "json"
	StepSummary = "summary"
)

// WriteStep writes one output file and prints a progress message for it.
// The message is printed only after the file has been written.
type WriteStep struct {
	name      string
	path      string
	newWriter func(io.Writer) report.Writer
	announce  func(out io.Writer, path string, export *model.LicenseExport)
	wrapErr   string
	out       io.Writer
}

// NewCSVStep creates a step that writes the ILMT CSV file to path.
func NewCSVStep(out io.Writer, path string, opts ...report.Option) *WriteStep {
	return &WriteStep{
		name: StepCSV,
		path: path,
		newWriter: func(w io.Writer) report.Writer {
			return report.NewTabularWriter(w, opts...)
		},
		announce: func(out io.Writer, path string, export *model.LicenseExport) {
			fmt.Fprintf(out, "ILMT CSV exported to: %s\n", path)
			fmt.Fprintf(out, "Total products: %d\n", len(export.Products()))
		},
		out: out,
	}
}

// NewJSONStep creates a step that writes the ILMT JSON file to path.
func NewJSONStep(out io.Writer, path string, opts ...report.Option) *WriteStep {
	return &WriteStep{
		name: StepJSON,
		path: path,
		newWriter: func(w io.Writer) report.Writer {
			return report.NewNestedWriter(w, opts...)
		},
		announce: func(out io.Writer, path string, _ *model.LicenseExport) {
			fmt.Fprintf(out, "ILMT JSON exported to: %s\n", path)
		},
		out: out,
	}
}

// NewSummaryStep creates a step that writes the text summary report to path.
func NewSummaryStep(out io.Writer, path string, opts ...report.Option) *WriteStep {
	return &WriteStep{
		name: StepSummary,
		path: path,
		newWriter: func(w io.Writer) report.Writer {
			return report.NewSummaryWriter(w, opts...)
		},
		announce: func(out io.Writer, path string, _ *model.LicenseExport) {
			fmt.Fprintf(out, "Summary report generated: %s\n", path)
		},
		wrapErr: "failed to generate summary report",
		out:     out,
	}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return s.name
}

// Do writes the file and prints the progress message.
func (s *WriteStep) Do(export *model.LicenseExport) error {
	n, err := report.WriteFile(s.path, export, s.newWriter)
	if err != nil {
		if s.wrapErr != "" {
			return fmt.Errorf("%s: %w", s.wrapErr, err)
		}
		return err
	}

	slog.Debug("file written", "path", s.path, "bytes", n)
	s.announce(s.out, s.path, export)
	return nil
}
