package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nao1215/ilmt-transform/internal/model"
)

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Load reads the license export at path.
// Any failure is returned as an *InputError.
func Load(path string) (*model.LicenseExport, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	export, err := decode(data)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return export, nil
}

// Decode reads a whole license export from r.
// Unlike Load, errors are returned unwrapped.
func Decode(r io.Reader) (*model.LicenseExport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// decode parses raw export bytes.
func decode(data []byte) (*model.LicenseExport, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, model.TypeName(root))
	}

	return model.NewLicenseExport(model.Object(obj))
}

// toUTF8 returns data as UTF-8 without a byte order mark.
//
// Exports saved by Windows tools often start with a BOM, and PowerShell
// redirection writes UTF-16. A BOM selects the decoding; without one the
// input must already be valid UTF-8.
func toUTF8(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, utf16LEBOM) && !bytes.HasPrefix(data, utf16BEBOM) && !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return out, nil
}
