package main

import (
	"fmt"

	"github.com/cyp0633/librecur/recurrence"
	"github.com/cyp0633/librecur/xcal"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <rule>",
	Short: "Convert a rule between recurrence formats",
	Example: `  recurtool convert -f vcal --start 2009-01-05T10:00:00 --to rrule "W2 MO TH #5"
  recurtool convert -f rrule --start 2009-01-05T10:00:00 --to xcal "FREQ=DAILY;INTERVAL=2"`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("start", "", "anchor instant, e.g. 2009-01-05T10:00:00 (required)")
	convertCmd.Flags().String("to", "rrule", "output format: rrule, vcal or xcal")
	_ = convertCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	rule, err := parseRule(cmd, args[0])
	if err != nil {
		return err
	}

	to, _ := cmd.Flags().GetString("to")
	switch to {
	case "rrule":
		fmt.Fprintln(cmd.OutOrStdout(), recurrence.FormatRRule(rule))
	case "vcal":
		fmt.Fprintln(cmd.OutOrStdout(), recurrence.FormatVCal(rule))
	case "xcal":
		data, err := xcal.Marshal(rule)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		return fmt.Errorf("unknown output format %q", to)
	}
	return nil
}
