package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/nao1215/ilmt-transform/internal/model"
)

// NestedReport is the ILMT JSON document.
// Field order is the output order.
type NestedReport struct {
	// ReportDate is the YYYY-MM-DD date of the report.
	ReportDate string `json:"reportDate"`

	// Source names the producer of the input export.
	Source string `json:"source"`

	// GeneratedAt is the local ISO-8601 generation timestamp.
	GeneratedAt string `json:"generatedAt"`

	// Products is never null; an export without products gives [].
	Products []NestedProduct `json:"products"`
}

// NestedProduct is one product of a NestedReport.
// Values are copied from the export as-is, so they are typed any.
type NestedProduct struct {
	ProductName    any `json:"productName"`
	ProductID      any `json:"productId"`
	MetricType     any `json:"metricType"`
	MetricQuantity any `json:"metricQuantity"`

	// Deployments is never null. Unlike the CSV file, a product without
	// containers gets an empty list and no placeholder entry.
	Deployments []Deployment `json:"deployments"`
}

// Deployment is one container record of a NestedProduct.
type Deployment struct {
	Namespace     any `json:"namespace"`
	ContainerName any `json:"containerName"`
	CPULimit      any `json:"cpuLimit"`
	MemoryLimit   any `json:"memoryLimit"`
}

// NewNestedReport builds the nested form of export.
func NewNestedReport(export *model.LicenseExport, reportDate string, generatedAt time.Time) *NestedReport {
	products := make([]NestedProduct, 0, len(export.Products()))

	for _, p := range export.Products() {
		deployments := make([]Deployment, 0, len(p.Containers()))
		for _, c := range p.Containers() {
			deployments = append(deployments, Deployment{
				Namespace:     model.Canonical(c.Get(model.KeyNamespace, "")),
				ContainerName: model.Canonical(c.Get(model.KeyContainerName, "")),
				CPULimit:      model.Canonical(c.Get(model.KeyCPULimit, "")),
				MemoryLimit:   model.Canonical(c.Get(model.KeyMemoryLimit, "")),
			})
		}

		products = append(products, NestedProduct{
			ProductName:    model.Canonical(p.Get(model.KeyProductName, "")),
			ProductID:      model.Canonical(p.Get(model.KeyProductID, "")),
			MetricType:     model.Canonical(p.Get(model.KeyProductMetric, model.DefaultMetric)),
			MetricQuantity: model.Canonical(p.Get(model.KeyMetricQuantity, json.Number("0"))),
			Deployments:    deployments,
		})
	}

	return &NestedReport{
		ReportDate:  reportDate,
		Source:      model.Source,
		GeneratedAt: ISOTimestamp(generatedAt),
		Products:    products,
	}
}

// NestedWriter outputs the ILMT JSON document.
//
// Output is indented with two spaces and has no trailing newline. Non-ASCII
// characters are written as \uXXXX escapes so the file is plain ASCII,
// while HTML characters (<, >, &) are left as-is.
type NestedWriter struct {
	baseWriter
}

// NewNestedWriter creates a NestedWriter that outputs to the given writer.
func NewNestedWriter(output io.Writer, opts ...Option) *NestedWriter {
	return &NestedWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write outputs the nested report in JSON format.
func (w *NestedWriter) Write(export *model.LicenseExport) (int, error) {
	report := NewNestedReport(export, w.date(), w.now())

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return 0, err
	}

	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return w.output.Write(escapeNonASCII(data))
}

// ISOTimestamp formats t as a local ISO-8601 timestamp without zone.
// Microseconds are included only when non-zero:
// 2024-01-15T10:30:00.123456 or 2024-01-15T10:30:00.
func ISOTimestamp(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

// escapeNonASCII replaces DEL and every non-ASCII character with a JSON \u escape.
// Characters outside the Basic Multilingual Plane become surrogate pairs.
// Only string contents can hold such characters in encoder output, so the
// result is still valid JSON.
func escapeNonASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]

		switch {
		case r < 0x7f:
			out = append(out, byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
		default:
			out = fmt.Appendf(out, `\u%04x`, r)
		}
	}
	return out
}
