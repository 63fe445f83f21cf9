package records

// Filter returns the records whose field equals value, in input order. The
// input is not modified. Records without the field never match.
func Filter(rs RecordSet, field string, value any) RecordSet {
	out := RecordSet{}
	for _, rec := range rs {
		if v, ok := rec[field]; ok && v == value {
			out = append(out, rec)
		}
	}
	return out
}

// Mean returns the arithmetic mean of a numeric field. Text values are not
// coerced; run Normalize first.
func Mean(rs RecordSet, field string) (float64, error) {
	if len(rs) == 0 {
		return 0, ErrEmptyRecordSet
	}
	var total float64
	for i, rec := range rs {
		v, ok := rec[field]
		if !ok {
			return 0, &FieldError{Field: field, Index: i, Err: ErrMissingField}
		}
		f, err := toFloat(v)
		if err != nil {
			return 0, &FieldError{Field: field, Index: i, Value: v, Err: err}
		}
		total += f
	}
	return total / float64(len(rs)), nil
}
