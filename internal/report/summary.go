package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/ilmt-transform/internal/model"
)

const (
	// summaryWidth is the width of the separator lines.
	summaryWidth = 60

	// summaryContainerLimit is how many containers are listed per product.
	summaryContainerLimit = 5
)

// SummaryWriter outputs the plain-text ILMT integration report.
// The layout is fixed width so the report reads well in a terminal and
// can be attached to license audit tickets as-is.
//
// The closing "TOTAL VPCs" line is the plain sum of metricQuantity over all
// products. Products measured in other metric types are added in as well;
// the inspect command breaks totals down per metric type.
type SummaryWriter struct {
	baseWriter
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
// Use WithClock to control the "Generated" timestamp.
func NewSummaryWriter(output io.Writer, opts ...Option) *SummaryWriter {
	return &SummaryWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write outputs the summary report.
// It fails with model.ErrNonNumericQuantity if a quantity cannot be summed;
// nothing is written in that case.
func (w *SummaryWriter) Write(export *model.LicenseExport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, export)

	total, err := w.writeProducts(&sb, export)
	if err != nil {
		return 0, err
	}

	w.writeFooter(&sb, total)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the banner, generation time and product count.
func (w *SummaryWriter) writeHeader(sb *strings.Builder, export *model.LicenseExport) {
	sb.WriteString(strings.Repeat("=", summaryWidth))
	sb.WriteString("\n")
	sb.WriteString("IBM License Service - ILMT Integration Report\n")
	sb.WriteString(strings.Repeat("=", summaryWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Generated: %s\n", w.now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Total Products: %d\n\n", len(export.Products())))

	sb.WriteString(strings.Repeat("-", summaryWidth))
	sb.WriteString("\n")
	sb.WriteString("PRODUCT SUMMARY\n")
	sb.WriteString(strings.Repeat("-", summaryWidth))
	sb.WriteString("\n\n")
}

// writeProducts writes one block per product and returns the quantity total.
func (w *SummaryWriter) writeProducts(sb *strings.Builder, export *model.LicenseExport) (model.QuantityTotal, error) {
	var total model.QuantityTotal

	for i, p := range export.Products() {
		name := text(p.Get(model.KeyProductName, "Unknown"))
		qty := p.Get(model.KeyMetricQuantity, 0)

		if err := total.Add(qty); err != nil {
			return total, fmt.Errorf("product %d (%s): %w", i+1, name, err)
		}

		sb.WriteString(fmt.Sprintf("Product: %s\n", name))
		sb.WriteString(fmt.Sprintf("  ID: %s\n", text(p.Get(model.KeyProductID, "Unknown"))))
		sb.WriteString(fmt.Sprintf("  Metric: %s\n", text(p.Get(model.KeyProductMetric, "Unknown"))))
		sb.WriteString(fmt.Sprintf("  Quantity: %s\n", text(qty)))

		w.writeContainers(sb, p.Containers())
		sb.WriteString("\n")
	}

	return total, nil
}

// writeContainers lists the first few containers of a product.
func (w *SummaryWriter) writeContainers(sb *strings.Builder, containers []model.Container) {
	if len(containers) == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("  Containers (%d):\n", len(containers)))
	for i, c := range containers {
		if i == summaryContainerLimit {
			sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(containers)-summaryContainerLimit))
			break
		}
		sb.WriteString(fmt.Sprintf("    - %s (%s)\n",
			text(c.Get(model.KeyContainerName, "N/A")),
			text(c.Get(model.KeyNamespace, "N/A")),
		))
	}
}

// writeFooter writes the quantity total.
func (w *SummaryWriter) writeFooter(sb *strings.Builder, total model.QuantityTotal) {
	sb.WriteString(strings.Repeat("-", summaryWidth))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("TOTAL VPCs: %s\n", total.String()))
	sb.WriteString(strings.Repeat("-", summaryWidth))
	sb.WriteString("\n")
}

// text renders a value for the summary; null prints as "None".
func text(v any) string {
	return model.FormatValue(v, "None")
}
