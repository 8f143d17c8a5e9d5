package model

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatValue renders a tree value as plain text for CSV cells and text reports.
// null renders as the given null string; ILMT CSV files use "" while the
// text summary shows "None".
//
// Numbers are normalized with FormatNumber, booleans print as "True"/"False",
// and nested arrays or objects are rendered as compact JSON with sorted keys.
func FormatValue(v any, null string) string {
	switch val := v.(type) {
	case nil:
		return null
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case json.Number:
		return FormatNumber(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return formatFloat(val)
	default:
		data, err := json.Marshal(Canonical(val))
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// FormatNumber normalizes a JSON number literal.
//
// Integer literals keep their exact value ("-0" becomes "0"). Any literal
// with a fraction or exponent is a float and is printed in shortest
// round-trip form: whole values get a ".0" suffix ("4.0"), and values
// outside 1e-4 <= |x| < 1e16 use exponent notation ("1e+16", "1.5e-07").
// Literals that do not parse are returned unchanged.
func FormatNumber(n json.Number) string {
	s := string(n)
	if IsIntegerLiteral(n) {
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return s
		}
		return i.String()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return formatFloat(f)
}

// IsIntegerLiteral reports whether n was written without fraction or exponent.
func IsIntegerLiteral(n json.Number) bool {
	return !strings.ContainsAny(string(n), ".eE")
}

// formatFloat prints f in shortest round-trip form with the fixed/exponent
// switch points described in FormatNumber. Infinities print as "inf" and "-inf".
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f == 0 {
		if strconv.FormatFloat(f, 'f', -1, 64) == "-0" {
			return "-0.0"
		}
		return "0.0"
	}

	exp := strconv.FormatFloat(f, 'e', -1, 64)
	idx := strings.IndexByte(exp, 'e')
	e, err := strconv.Atoi(exp[idx+1:])
	if err != nil || e < -4 || e >= 16 {
		return exp
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Canonical returns a copy of v with every json.Number normalized by FormatNumber.
// Strings, booleans and nil are returned unchanged.
func Canonical(v any) any {
	switch val := v.(type) {
	case json.Number:
		return json.Number(FormatNumber(val))
	case Object:
		return Canonical(map[string]any(val))
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Canonical(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Canonical(item)
		}
		return out
	default:
		return v
	}
}

// TypeName returns the JSON type name of a tree value for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, int, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any, Object:
		return "object"
	default:
		return "unknown"
	}
}
