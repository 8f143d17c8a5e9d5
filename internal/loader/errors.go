package loader

import (
	"errors"
	"fmt"
)

// Decoding errors.
// These are wrapped in an InputError by Load, so callers can use errors.Is
// to tell a bad encoding from bad JSON while still getting the file path.
var (
	// ErrInvalidEncoding is returned when the input is neither valid UTF-8
	// nor UTF-16 with a byte order mark.
	ErrInvalidEncoding = errors.New("input is not valid UTF-8 text")

	// ErrMalformedJSON is returned when the input cannot be parsed as JSON.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrTrailingData is returned when something other than whitespace
	// follows the JSON document.
	ErrTrailingData = errors.New("unexpected data after JSON document")

	// ErrNotObject is returned when the top-level JSON value is not an object.
	ErrNotObject = errors.New("license export must be a JSON object")
)

// InputError reports a license export that could not be loaded.
// It covers missing or unreadable files as well as content that cannot be
// decoded. The run cannot continue after an InputError.
type InputError struct {
	// Path is the input file path as given by the user.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("failed to load license data from %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Err
}
