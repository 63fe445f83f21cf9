package records

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize converts field to an int in every record and returns rs. Values
// are all parsed first; if any fails nothing is modified.
func Normalize(rs RecordSet, field string) (RecordSet, error) {
	converted := make([]int, len(rs))
	for i, rec := range rs {
		v, ok := rec[field]
		if !ok {
			return nil, &FieldError{Field: field, Index: i, Err: ErrMissingField}
		}
		n, err := toInt(v)
		if err != nil {
			return nil, &FieldError{Field: field, Index: i, Value: v, Err: err}
		}
		converted[i] = n
	}
	for i, rec := range rs {
		rec[field] = converted[i]
	}
	return rs, nil
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("%w: %v has a fractional part", ErrNotNumeric, x)
		}
		return int(x), nil
	case json.Number:
		return strconv.Atoi(x.String())
	case string:
		return strconv.Atoi(strings.TrimSpace(x))
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrNotNumeric, v)
	}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case json.Number:
		return x.Float64()
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}
