package records

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCSV loads a comma-delimited file with a header row. Every value is kept
// as the raw cell text. The header shape is not validated: short rows simply
// lack the trailing keys and extra cells are dropped.
func ReadCSV(path string) (RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rs, err := decodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rs, nil
}

func decodeCSV(r io.Reader) (RecordSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return RecordSet{}, nil
	}
	if err != nil {
		return nil, err
	}

	rs := RecordSet{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		rs = append(rs, rec)
	}
	return rs, nil
}

// ReadJSON loads a JSON array of objects written by Write.
func ReadJSON(path string) (RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	rs, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rs, nil
}

// ParseJSON decodes a JSON array of objects. Numbers are kept as json.Number
// so integers survive without float rounding.
func ParseJSON(data []byte) (RecordSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	rs := make(RecordSet, 0, len(raw))
	for _, m := range raw {
		rs = append(rs, Record(m))
	}
	return rs, nil
}
