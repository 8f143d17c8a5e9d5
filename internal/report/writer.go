package report

import (
	"io"
	"time"

	"github.com/nao1215/ilmt-transform/internal/config"
	"github.com/nao1215/ilmt-transform/internal/model"
)

// Writer defines the interface for report output.
// Implementations render a license export in one output format.
//
// Design decision: We use an interface so the driver can treat the CSV,
// JSON, summary and Markdown outputs the same way when writing files.
type Writer interface {
	// Write outputs the export to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(export *model.LicenseExport) (int, error)
}

// Option configures a Writer.
// Writers ignore options that do not apply to their format.
type Option func(*options)

// options holds the settings shared by all writers.
type options struct {
	// reportDate is the YYYY-MM-DD date stamped on rows and reports.
	// When empty, the current date is used.
	reportDate string

	// now returns the current time. Tests replace it for stable output.
	now func() time.Time
}

// WithReportDate sets the report date written to CSV rows and the JSON report.
// An empty date means the current local date.
func WithReportDate(date string) Option {
	return func(o *options) {
		o.reportDate = date
	}
}

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// newOptions applies opts over the defaults.
func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// date returns the report date, falling back to today.
func (o options) date() string {
	return config.ResolveReportDate(o.reportDate, o.now())
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
	options
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer, opts []Option) baseWriter {
	return baseWriter{output: output, options: newOptions(opts)}
}
