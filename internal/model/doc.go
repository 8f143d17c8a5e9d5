// Package model defines the in-memory form of an IBM License Service export.
//
// An export is decoded into a generic key/value tree (Object) and wrapped in
// read-only views:
//   - LicenseExport: the document and its products
//   - Product: one licensed product and its container records
//   - Container: one deployment of a product
//
// Every field is read through Object.Get with an explicit fallback, so a
// missing key never fails. Values are kept exactly as decoded; FormatValue
// and Canonical render them for the output writers.
//
// QuantityTotal and ResourceTotal aggregate metric quantities and container
// resource limits for the summary and inspection reports.
package model
