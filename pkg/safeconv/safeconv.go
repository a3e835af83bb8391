// Package safeconv provides checked conversions from loosely typed table
// cells to Go numeric types.
package safeconv

import (
	"encoding/json"
	"math"
)

// ToFloat64 converts a numeric cell value to float64.
// Supports float64, float32, int, int32, int64 and json.Number.
// NaN is rejected.
func ToFloat64(value any) (float64, bool) {
	var f float64

	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}

		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

// ToInt converts a numeric cell value to int, truncating fractions.
// Values outside the int range are rejected.
func ToInt(value any) (int, bool) {
	f, ok := ToFloat64(value)
	if !ok {
		return 0, false
	}

	if f > math.MaxInt || f < math.MinInt {
		return 0, false
	}

	return int(f), true
}
