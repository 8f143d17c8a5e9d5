// Package main provides the entry point for the ilmt-transform CLI.
//
// ilmt-transform converts an IBM License Service usage export into the
// CSV and JSON files that the IBM License Metric Tool (ILMT) imports,
// optionally with a plain-text summary report.
//
// Usage:
//
//	ilmt-transform export.json
//	ilmt-transform -o reports -f csv --date 2024-01-15 --summary export.json
//	ilmt-transform inspect export.json
//
// See --help for all available options.
package main

// main is the entry point for ilmt-transform.
func main() {
	Execute()
}
