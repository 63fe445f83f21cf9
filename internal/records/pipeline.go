package records

// Default field names used by LoadAndProcess.
const (
	DefaultNumericField = "age"
	DefaultFilterField  = "country"
)

// Options configures Process.
type Options struct {
	NumericField string
	FilterField  string
	FilterValue  string
}

// LoadAndProcess reads a CSV file, normalizes the age column and keeps the
// rows whose country equals country.
func LoadAndProcess(path, country string) (RecordSet, error) {
	return Process(path, Options{
		NumericField: DefaultNumericField,
		FilterField:  DefaultFilterField,
		FilterValue:  country,
	})
}

// Process runs ReadCSV, Normalize and Filter in order and returns the first
// error unchanged.
func Process(path string, opts Options) (RecordSet, error) {
	rs, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	rs, err = Normalize(rs, opts.NumericField)
	if err != nil {
		return nil, err
	}
	return Filter(rs, opts.FilterField, opts.FilterValue), nil
}
