package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"k8s.io/apimachinery/pkg/api/resource"
)

// ErrNonNumericQuantity is returned when a metricQuantity cannot be added to a total.
var ErrNonNumericQuantity = errors.New("metric quantity is not a number")

// QuantityTotal accumulates metricQuantity values in document order.
//
// While every value is an integer the total is an exact integer of any size.
// The first fractional value converts the total to float64, and later values
// are added in float64 arithmetic, so 0.1 + 0.2 renders as
// "0.30000000000000004" and 4 + 8.0 renders as "12.0".
//
// The zero value is an empty integer total.
type QuantityTotal struct {
	sum        decimal.Decimal
	float      float64
	fractional bool
}

// Add adds one metricQuantity value. Booleans count as 1 and 0.
// Any other non-number value returns ErrNonNumericQuantity and leaves the total unchanged.
func (t *QuantityTotal) Add(v any) error {
	switch val := v.(type) {
	case json.Number:
		if IsIntegerLiteral(val) {
			d, err := decimal.NewFromString(string(val))
			if err != nil {
				return fmt.Errorf("%w: %q", ErrNonNumericQuantity, string(val))
			}
			t.addInt(d)
			return nil
		}
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%w: %q", ErrNonNumericQuantity, string(val))
		}
		t.addFloat(f)
	case int:
		t.addInt(decimal.NewFromInt(int64(val)))
	case float64:
		t.addFloat(val)
	case bool:
		if val {
			t.addInt(decimal.NewFromInt(1))
		} else {
			t.addInt(decimal.Zero)
		}
	default:
		return fmt.Errorf("%w: got %s", ErrNonNumericQuantity, TypeName(v))
	}
	return nil
}

func (t *QuantityTotal) addInt(d decimal.Decimal) {
	if t.fractional {
		t.float += d.InexactFloat64()
		return
	}
	t.sum = t.sum.Add(d)
}

func (t *QuantityTotal) addFloat(f float64) {
	if !t.fractional {
		t.float = t.sum.InexactFloat64()
		t.fractional = true
	}
	t.float += f
}

// String renders the total with the same rules as FormatNumber.
func (t QuantityTotal) String() string {
	if !t.fractional {
		return t.sum.String()
	}
	return formatFloat(t.float)
}

// ResourceTotal accumulates Kubernetes resource quantities such as container
// CPU ("500m") and memory ("2Gi") limits.
//
// Empty values are ignored. Values that do not parse as a quantity are
// counted in Invalid and otherwise ignored.
type ResourceTotal struct {
	sum     resource.Quantity
	count   int
	Invalid int
}

// Add parses s and adds it to the total.
func (t *ResourceTotal) Add(s string) {
	if s == "" {
		return
	}

	q, err := resource.ParseQuantity(s)
	if err != nil {
		t.Invalid++
		return
	}
	t.sum.Add(q)
	t.count++
}

// Count returns the number of quantities that were added.
func (t *ResourceTotal) Count() int {
	return t.count
}

// String returns the canonical form of the total, or "-" when nothing was added.
func (t *ResourceTotal) String() string {
	if t.count == 0 {
		return "-"
	}
	return t.sum.String()
}
