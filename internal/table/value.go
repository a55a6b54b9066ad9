package table

import (
	"cmp"
	"math"
	"strconv"
	"strings"

	"github.com/Iron-Ham/cairos/internal/errors"
)

// Kind is the declared type of a column. It only drives coercion of edited
// text and sort order; every cell is displayed as text.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindFloat
)

// String returns the short type name shown in the grid footer.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind parses edited text as a number.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

type valueKind uint8

const (
	valueMissing valueKind = iota
	valueText
	valueInt
	valueFloat
)

// Value is a single loosely typed cell: text, a number, or missing.
// The zero Value is missing.
type Value struct {
	kind valueKind
	s    string
	i    int64
	f    float64
}

// Missing returns the missing-cell marker.
func Missing() Value { return Value{} }

// Text returns a text value. The empty string is kept as text, not missing.
func Text(s string) Value { return Value{kind: valueText, s: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: valueInt, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: valueFloat, f: f} }

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool { return v.kind == valueMissing }

// IsNumeric reports whether the cell holds an integer or float.
func (v Value) IsNumeric() bool { return v.kind == valueInt || v.kind == valueFloat }

// Number returns the numeric value as float64 and whether the cell is numeric.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case valueInt:
		return float64(v.i), true
	case valueFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// String renders the cell the way the grid and the file writer show it.
// Missing cells render as the empty string; integral floats keep a ".0" so a
// saved float column is read back as float.
func (v Value) String() string {
	switch v.kind {
	case valueText:
		return v.s
	case valueInt:
		return strconv.FormatInt(v.i, 10)
	case valueFloat:
		return formatFloat(v.f)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Coerce converts raw edited text into a Value for a column of kind k.
// Empty raw is Missing for every kind. Numeric kinds reject text that does
// not parse; text columns keep raw unchanged.
func Coerce(k Kind, raw string) (Value, error) {
	if raw == "" {
		return Missing(), nil
	}
	switch k {
	case KindInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, errors.Wrapf(errors.ErrCoercion, "%q is not an integer", raw)
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Value{}, errors.Wrapf(errors.ErrCoercion, "%q is not a number", raw)
		}
		return Float(f), nil
	default:
		return Text(raw), nil
	}
}

// InferKind picks the narrowest kind that accepts every non-empty cell.
// A column with no non-empty cells is text.
func InferKind(cells []string) Kind {
	allInt, allFloat, seen := true, true, false
	for _, c := range cells {
		if c == "" {
			continue
		}
		seen = true
		c = strings.TrimSpace(c)
		if allInt {
			if _, err := strconv.ParseInt(c, 10, 64); err != nil {
				allInt = false
			}
		}
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			allFloat = false
			break
		}
	}
	switch {
	case !seen:
		return KindText
	case allInt:
		return KindInteger
	case allFloat:
		return KindFloat
	default:
		return KindText
	}
}

// parseLoaded converts a cell read from a file. Cells that do not parse as
// their column's kind are kept as text.
func parseLoaded(k Kind, raw string) Value {
	v, err := Coerce(k, raw)
	if err != nil {
		return Text(raw)
	}
	return v
}

// compareValues orders two non-missing values: numbers before text, numbers
// numerically, text lexicographically.
func compareValues(a, b Value) int {
	an, aNum := a.Number()
	bn, bNum := b.Number()
	switch {
	case aNum && bNum:
		if a.kind == valueInt && b.kind == valueInt {
			return cmp.Compare(a.i, b.i)
		}
		return cmp.Compare(an, bn)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return strings.Compare(a.String(), b.String())
	}
}
