package recurrence

import "strings"

// weekdayTokens are the two-letter weekday abbreviations shared by the
// vCalendar 1.0 and iCalendar 2.0 wire formats, indexed Sunday = 0.
var weekdayTokens = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// weekdayNames are the lowercase english weekday names used by the hash
// form, indexed Sunday = 0.
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// monthNames are the lowercase english month names used by the hash
// form, indexed January = 0.
var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// weekdayIndex maps a two-letter token to its Sunday-based index.
func weekdayIndex(token string) (int, bool) {
	token = strings.ToUpper(token)
	for i, t := range weekdayTokens {
		if t == token {
			return i, true
		}
	}
	return 0, false
}

// weekdayNameIndex maps an english weekday name to its Sunday-based index.
func weekdayNameIndex(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// monthNameIndex maps an english month name to its 1-based month number.
func monthNameIndex(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range monthNames {
		if n == name {
			return i + 1, true
		}
	}
	return 0, false
}

// nthOfMonth is the ordinal position of the anchor's weekday within its
// month under the wire formats' convention: when seven days later falls
// into the next month the position is reported as 5 ("last").
func nthOfMonth(day, daysInMonth int) int {
	if day+7 > daysInMonth {
		return 5
	}
	return (day + 6) / 7
}
