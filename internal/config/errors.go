package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with errors.Is.
var (
	// ErrNoInputFile is returned when no License Service export is given.
	ErrNoInputFile = errors.New("no input file specified")

	// ErrInvalidFormat is returned when the output format is not csv, json or both.
	ErrInvalidFormat = errors.New("invalid format: must be one of csv, json, both")

	// ErrInvalidReportDate is returned when the report date is not a YYYY-MM-DD date.
	// The date ends up in file names, so it is checked before anything is written.
	ErrInvalidReportDate = errors.New("invalid report date: expected YYYY-MM-DD")
)
