// Package report renders a license export into the files handed to ILMT.
//
// This package contains writers for different output formats:
//   - TabularWriter: the flat CSV file, one row per container
//   - NestedWriter: the JSON document with products and their deployments
//   - SummaryWriter: the plain-text integration report for humans
//   - MarkdownWriter: the inspection report printed by the inspect command
//
// Design decision: We separate report writing from the export data (which is
// in the model package). Writers implement the Writer interface, so the
// command can write every selected format through WriteFile the same way.
package report
