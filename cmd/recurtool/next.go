package main

import (
	"fmt"

	"github.com/cyp0633/librecur/datetime"
	"github.com/cyp0633/librecur/recurrence"
	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next <rule>",
	Short: "Print upcoming occurrences of a rule",
	Example: `  recurtool next -f rrule --start 2009-01-05T10:00:00 "FREQ=WEEKLY;INTERVAL=1;BYDAY=MO,WE,FR"
  recurtool next -f vcal --start 2009-01-01T09:00:00 --max 3 "D2 #3"`,
	Args: cobra.ExactArgs(1),
	RunE: runNext,
}

func init() {
	nextCmd.Flags().String("start", "", "anchor instant, e.g. 2009-01-05T10:00:00 (required)")
	nextCmd.Flags().String("after", "", "print occurrences on or after this instant (default: the anchor)")
	nextCmd.Flags().IntP("max", "n", 10, "maximum number of occurrences to print")
	_ = nextCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	rule, err := parseRule(cmd, args[0])
	if err != nil {
		return err
	}

	pivot := rule.Start().Clone()
	if after, _ := cmd.Flags().GetString("after"); after != "" {
		if pivot, err = datetime.Parse(after); err != nil {
			return fmt.Errorf("invalid --after: %w", err)
		}
	}

	max, _ := cmd.Flags().GetInt("max")
	for i := 0; i < max; i++ {
		occ := rule.NextActiveAfter(pivot)
		if occ == nil {
			if i == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no occurrences")
			}
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), occ)
		pivot = occ.Add(1)
	}
	return nil
}

// parseRule builds a rule from the command line: anchor from --start,
// rule text in the selected input format.
func parseRule(cmd *cobra.Command, text string) (*recurrence.Rule, error) {
	startText, _ := cmd.Flags().GetString("start")
	start, err := datetime.Parse(startText)
	if err != nil {
		return nil, fmt.Errorf("invalid --start: %w", err)
	}

	rule := recurrence.NewRule(start)
	switch format := inputFormat(cmd); format {
	case "rrule":
		recurrence.ParseRRule(rule, text)
	case "vcal":
		recurrence.ParseVCal(rule, text)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	if rule.Kind() == recurrence.None {
		return nil, fmt.Errorf("cannot parse rule %q", text)
	}
	return rule, nil
}
