// Package records loads delimited tabular data into ordered field→value
// records and runs the small transformations the records command needs:
// numeric normalization, equality filtering, averaging and serialization.
//
// All operations are synchronous. Normalize mutates records in place; Filter
// and Mean never modify their input.
package records
