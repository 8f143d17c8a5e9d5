// Package loader reads IBM License Service exports from disk.
//
// The whole file is read into memory, decoded as JSON with numbers kept as
// json.Number, and wrapped in a model.LicenseExport. Failures are reported
// as *InputError and abort the run.
package loader
