package report

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/nao1215/ilmt-transform/internal/model"
)

// TabularHeader is the fixed header row of the ILMT CSV file.
// ILMT maps columns by position, so the order must not change.
var TabularHeader = []string{
	"Product Name",
	"Product ID",
	"Metric Type",
	"Metric Quantity",
	"Cluster Name",
	"Namespace",
	"Report Date",
	"Container Name",
	"CPU Limit",
	"Memory Limit",
}

// TabularWriter outputs one CSV row per container.
// Product-level columns are repeated on every row of the product. A product
// without containers still gets one row, with the container columns empty.
//
// Design decision: We use encoding/csv for quoting. Records end with CRLF,
// the line ending ILMT's CSV import and spreadsheet tools expect.
type TabularWriter struct {
	baseWriter
}

// NewTabularWriter creates a TabularWriter that outputs to the given writer.
// Use WithReportDate to set the "Report Date" column.
func NewTabularWriter(output io.Writer, opts ...Option) *TabularWriter {
	return &TabularWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write outputs the header and all rows.
func (w *TabularWriter) Write(export *model.LicenseExport) (int, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.UseCRLF = true

	if err := cw.WriteAll(TabularRows(export, w.date())); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}

// TabularRows flattens export into CSV records, header first.
func TabularRows(export *model.LicenseExport, reportDate string) [][]string {
	rows := [][]string{TabularHeader}

	for _, p := range export.Products() {
		name := cell(p.Get(model.KeyProductName, ""))
		id := cell(p.Get(model.KeyProductID, ""))
		metric := cell(p.Get(model.KeyProductMetric, model.DefaultMetric))
		qty := cell(p.Get(model.KeyMetricQuantity, 0))
		cluster := cell(p.Get(model.KeyClusterName, ""))

		if !p.HasContainers() {
			rows = append(rows, []string{name, id, metric, qty, cluster, "", reportDate, "", "", ""})
			continue
		}

		for _, c := range p.Containers() {
			rows = append(rows, []string{
				name,
				id,
				metric,
				qty,
				cluster,
				cell(c.Get(model.KeyNamespace, "")),
				reportDate,
				cell(c.Get(model.KeyContainerName, "")),
				cell(c.Get(model.KeyCPULimit, "")),
				cell(c.Get(model.KeyMemoryLimit, "")),
			})
		}
	}

	return rows
}

// cell renders a value for a CSV cell; null becomes an empty cell.
func cell(v any) string {
	return model.FormatValue(v, "")
}
