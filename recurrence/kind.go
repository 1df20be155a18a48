package recurrence

// Kind selects the unit and shape of a rule's repetition.
type Kind int

const (
	None             Kind = iota // no repetition
	Daily                        // every interval days
	Weekly                       // selected weekdays every interval weeks
	MonthlyByDate                // same day-of-month every interval months
	MonthlyByWeekday             // same nth-weekday every interval months
	YearlyByDate                 // same month and day every interval years
	YearlyByDayOfYear            // same ordinal day every interval years
	YearlyByWeekday              // same nth-weekday of the month every interval years
)

var kindNames = map[Kind]string{
	None:              "none",
	Daily:             "daily",
	Weekly:            "weekly",
	MonthlyByDate:     "monthly-by-date",
	MonthlyByWeekday:  "monthly-by-weekday",
	YearlyByDate:      "yearly-by-date",
	YearlyByDayOfYear: "yearly-by-dayofyear",
	YearlyByWeekday:   "yearly-by-weekday",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
