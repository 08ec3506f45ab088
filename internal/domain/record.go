// Package domain defines the value types and invariants of the feature
// transformation pipeline: raw records, the column specification that maps
// columns to transform classes, the fitted transform state learned from a
// training dataset, and the feature vectors produced at inference time.
//
// Everything in this package is a plain value with no I/O. Fitting is
// deterministic, fitted state is read-only after construction, and feature
// vectors are ephemeral per-call outputs.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawRecord maps a column name to its raw value for one employee at one
// point in time. Values are strings, integers, or floating-point numbers;
// the record is supplied by the caller (web layer or batch loader) and is
// never mutated by the pipeline.
type RawRecord map[string]any

// FeatureVector is an ordered sequence of floating-point numbers, one per
// output dimension. Dimension order and length are fixed by the
// FittedState that produced it.
type FeatureVector []float64

// NumericValue interprets a raw value as a float64. Strings are parsed
// after trimming whitespace, matching how tabular sources deliver numbers
// as text. Returns false when the value cannot be interpreted as a number.
func NumericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// CategoryValue canonicalizes a raw value into a category string.
// String values are trimmed; other scalars use their default formatting,
// so the integer 3 and the string "3" land in the same category.
func CategoryValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return fmt.Sprint(x)
	}
}
