package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/critique/internal/records"
)

// Records flags
var (
	flagFilterField  string
	flagFilterValue  string
	flagNumericField string
	flagRecordsOut   string
	flagOutFormat    string
)

var recordsCmd = &cobra.Command{
	Use:   "records <csv>",
	Short: "Filter a CSV file and report the mean of a numeric field",
	Long: "Reads a CSV file, converts the numeric field to integers, keeps the records\n" +
		"whose filter field equals the given value and prints the match count and mean.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := records.ParseFormat(flagOutFormat)
		if err != nil {
			return err
		}

		matched, err := records.Process(args[0], records.Options{
			NumericField: flagNumericField,
			FilterField:  flagFilterField,
			FilterValue:  flagFilterValue,
		})
		if err != nil {
			fail(cmd, err)
			return nil
		}
		logger.Debug("records filtered",
			zap.String("path", args[0]),
			zap.String("field", flagFilterField),
			zap.Int("matched", len(matched)),
		)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Matched records: %d\n", len(matched))

		if flagRecordsOut != "" {
			if err := records.Write(matched, flagRecordsOut, format); err != nil {
				fail(cmd, err)
				return nil
			}
			fmt.Fprintf(out, "Wrote %s\n", flagRecordsOut)
		}

		mean, err := records.Mean(matched, flagNumericField)
		if err != nil {
			if errors.Is(err, records.ErrEmptyRecordSet) {
				err = fmt.Errorf("no records with %s = %q: %w", flagFilterField, flagFilterValue, err)
			}
			fail(cmd, err)
			return nil
		}
		fmt.Fprintf(out, "Average %s: %g\n", flagNumericField, mean)
		return nil
	},
}

func init() {
	recordsCmd.Flags().StringVar(&flagFilterField, "filter-field", records.DefaultFilterField, "Field to filter on")
	recordsCmd.Flags().StringVar(&flagFilterValue, "value", "Kenya", "Value the filter field must equal")
	recordsCmd.Flags().StringVar(&flagNumericField, "numeric-field", records.DefaultNumericField, "Field converted to integers and averaged")
	recordsCmd.Flags().StringVar(&flagRecordsOut, "out", "", "Write the matched records to this file")
	recordsCmd.Flags().StringVar(&flagOutFormat, "out-format", "json", "Format for --out (json, yaml)")
}
