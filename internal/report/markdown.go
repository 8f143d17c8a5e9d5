package report

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/ilmt-transform/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs an inspection report of a license export.
// It is used by the inspect command to review an export before it is
// transformed and handed to ILMT.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation so tables, alerts and the mermaid chart stay well-formed.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output, opts)}
}

// metricTotal is the quantity total of one metric type.
type metricTotal struct {
	metric   string
	products int
	total    model.QuantityTotal
	invalid  int
}

// Write outputs the inspection report in Markdown format.
func (w *MarkdownWriter) Write(export *model.LicenseExport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	totals := metricTotals(export)

	w.writeHeader(md, export, totals)
	w.writeProducts(md, export)
	w.writeMetrics(md, totals)
	w.writeNamespaces(md, export)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title, the overview table and export-wide alerts.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, export *model.LicenseExport, totals []*metricTotal) {
	md.H1("License Export Inspection")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", model.Source},
			{"Products", strconv.Itoa(len(export.Products()))},
			{"Containers", strconv.Itoa(export.ContainerCount())},
			{"Metric Types", strconv.Itoa(len(totals))},
			{"Report Date", w.date()},
			{"Inspected", w.now().Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	switch {
	case len(export.Products()) == 0:
		md.Note("The export contains no products. The generated files will only hold headers.")
		md.PlainText("")
	case len(totals) > 1:
		md.Warningf(
			"The export mixes %d metric types. The summary's TOTAL VPCs line adds all of them together.",
			len(totals),
		)
		md.PlainText("")
	}
}

// writeProducts writes one table row per product with its resource limits.
func (w *MarkdownWriter) writeProducts(md *markdown.Markdown, export *model.LicenseExport) {
	md.H2("Products")
	md.PlainText("")

	if len(export.Products()) == 0 {
		md.PlainText("No products found.")
		md.PlainText("")
		return
	}

	invalid := 0
	rows := make([][]string, 0, len(export.Products()))
	for _, p := range export.Products() {
		var cpu, memory model.ResourceTotal
		for _, c := range p.Containers() {
			cpu.Add(cell(c.Get(model.KeyCPULimit, "")))
			memory.Add(cell(c.Get(model.KeyMemoryLimit, "")))
		}
		invalid += cpu.Invalid + memory.Invalid

		rows = append(rows, []string{
			orDash(cell(p.Get(model.KeyProductName, ""))),
			orDash(cell(p.Get(model.KeyProductID, ""))),
			MetricLabel(p.Get(model.KeyProductMetric, model.DefaultMetric)),
			cell(p.Get(model.KeyMetricQuantity, 0)),
			orDash(cell(p.Get(model.KeyClusterName, ""))),
			strconv.Itoa(len(p.Containers())),
			cpu.String(),
			memory.String(),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Product", "ID", "Metric", "Quantity", "Cluster", "Containers", "CPU Limit", "Memory Limit"},
		Rows:   rows,
	})
	md.PlainText("")

	if invalid > 0 {
		md.Cautionf("%d container limit(s) are not valid Kubernetes quantities and were left out of the totals.", invalid)
		md.PlainText("")
	}
}

// writeMetrics writes the quantity totals per metric type.
func (w *MarkdownWriter) writeMetrics(md *markdown.Markdown, totals []*metricTotal) {
	if len(totals) == 0 {
		return
	}

	md.H2("Totals by Metric")
	md.PlainText("")

	rows := make([][]string, 0, len(totals))
	invalid := 0
	for _, t := range totals {
		rows = append(rows, []string{t.metric, strconv.Itoa(t.products), t.total.String()})
		invalid += t.invalid
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Products", "Quantity"},
		Rows:   rows,
	})
	md.PlainText("")

	if invalid > 0 {
		md.Cautionf("%d product(s) have a non-numeric metric quantity. Generating the summary report will fail.", invalid)
		md.PlainText("")
	}
}

// writeNamespaces writes a pie chart of containers per namespace.
func (w *MarkdownWriter) writeNamespaces(md *markdown.Markdown, export *model.LicenseExport) {
	if export.ContainerCount() == 0 {
		return
	}

	counts := make(map[string]uint64)
	for _, p := range export.Products() {
		for _, c := range p.Containers() {
			ns := cell(c.Get(model.KeyNamespace, ""))
			if ns == "" {
				ns = "(none)"
			}
			counts[ns]++
		}
	}

	namespaces := make([]string, 0, len(counts))
	for ns := range counts {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Containers by Namespace"),
		piechart.WithShowData(true),
	)
	for _, ns := range namespaces {
		chart.LabelAndIntValue(ns, counts[ns])
	}

	md.H2("Namespaces")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Inspected by ilmt-transform*")
}

// metricTotals groups products by metric type, in order of first appearance.
func metricTotals(export *model.LicenseExport) []*metricTotal {
	var totals []*metricTotal
	byMetric := make(map[string]*metricTotal)

	for _, p := range export.Products() {
		label := MetricLabel(p.Get(model.KeyProductMetric, model.DefaultMetric))
		t, ok := byMetric[label]
		if !ok {
			t = &metricTotal{metric: label}
			byMetric[label] = t
			totals = append(totals, t)
		}

		t.products++
		if err := t.total.Add(p.Get(model.KeyMetricQuantity, 0)); err != nil {
			t.invalid++
		}
	}

	return totals
}

// MetricLabel turns a metric identifier into a readable label,
// e.g. VIRTUAL_PROCESSOR_CORE becomes "Virtual Processor Core".
// A missing or null metric is labeled "Unknown".
func MetricLabel(v any) string {
	s := cell(v)
	if s == "" {
		return "Unknown"
	}
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(strings.ToLower(s))
}

// orDash returns "-" for empty table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
