package report

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/ilmt-transform/internal/model"
)

// File and directory permissions for generated output.
// ILMT imports are picked up by other users and tools, so the files are
// world-readable like any exported report.
const (
	fileMode os.FileMode = 0o644
	dirMode  os.FileMode = 0o755
)

// OutputError reports a generated file or directory that could not be written.
type OutputError struct {
	// Path is the file or directory being written.
	Path string

	// Op describes the failed operation, e.g. "write file".
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *OutputError) Unwrap() error {
	return e.Err
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return &OutputError{Path: dir, Op: "create directory", Err: err}
	}
	return nil
}

// WriteFile renders export with the writer returned by newWriter and stores
// the result at path, replacing any existing file.
//
// The report is rendered in memory first, so an export that cannot be
// rendered leaves no file behind. File system failures are returned as
// *OutputError; rendering failures are returned unchanged.
func WriteFile(path string, export *model.LicenseExport, newWriter func(io.Writer) Writer) (int, error) {
	var buf bytes.Buffer
	if _, err := newWriter(&buf).Write(export); err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, buf.Bytes(), fileMode); err != nil { //nolint:gosec // Generated reports are meant to be shared
		return 0, &OutputError{Path: path, Op: "write file", Err: err}
	}
	return buf.Len(), nil
}
