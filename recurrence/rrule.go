package recurrence

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cyp0633/librecur/datetime"
)

// ParseRRule configures r from an iCalendar 2.0 RRULE property value
// such as "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,TH;COUNT=5". A missing or
// unknown FREQ sets the kind to None; unrecognized keys are ignored.
func ParseRRule(r *Rule, value string) {
	kv := make(map[string]string)
	for _, segment := range strings.Split(value, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, val, _ := strings.Cut(segment, "=")
		kv[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}

	r.SetInterval(1)
	if v, ok := kv["INTERVAL"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			r.SetInterval(n)
		}
	}

	_, hasByDay := kv["BYDAY"]
	_, hasByYearDay := kv["BYYEARDAY"]

	switch strings.ToUpper(kv["FREQ"]) {
	case "DAILY":
		r.SetKind(Daily)
	case "WEEKLY":
		r.SetKind(Weekly)
		mask := parseByDayMask(kv["BYDAY"])
		if mask == 0 {
			mask = 1 << r.Start().Weekday()
		}
		r.SetWeekdayMask(mask)
	case "MONTHLY":
		if hasByDay {
			r.SetKind(MonthlyByWeekday)
		} else {
			r.SetKind(MonthlyByDate)
		}
	case "YEARLY":
		switch {
		case hasByYearDay:
			r.SetKind(YearlyByDayOfYear)
		case hasByDay:
			r.SetKind(YearlyByWeekday)
		default:
			r.SetKind(YearlyByDate)
		}
	default:
		r.SetKind(None)
		return
	}

	if v, ok := kv["UNTIL"]; ok {
		if d, err := datetime.Parse(v); err == nil {
			r.SetUntil(d)
		}
	}
	if v, ok := kv["COUNT"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			r.SetCount(n)
		}
	}
}

// parseByDayMask folds BYDAY weekday tokens into a bitmask. Ordinal
// prefixes like the "4" of "4TH" are stripped; unknown tokens are
// ignored.
func parseByDayMask(value string) int {
	mask := 0
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		token = strings.TrimLeft(token, "+-0123456789")
		if bit, ok := weekdayIndex(token); ok {
			mask |= 1 << bit
		}
	}
	return mask
}

// FormatRRule renders r as an iCalendar 2.0 RRULE property value. The
// end date, if any, is emitted one day later than stored (the iCalendar
// half-open convention). A kind of None yields the empty string.
func FormatRRule(r *Rule) string {
	var freq string
	switch r.Kind() {
	case Daily:
		freq = "DAILY"
	case Weekly:
		freq = "WEEKLY"
	case MonthlyByDate, MonthlyByWeekday:
		freq = "MONTHLY"
	case YearlyByDate, YearlyByDayOfYear, YearlyByWeekday:
		freq = "YEARLY"
	default:
		return ""
	}

	start := r.Start()
	var b strings.Builder
	fmt.Fprintf(&b, "FREQ=%s;INTERVAL=%d", freq, r.Interval())

	switch r.Kind() {
	case Weekly:
		var days []string
		for i := 0; i < len(weekdayTokens); i++ {
			if r.WeekdayMask()&(1<<i) != 0 {
				days = append(days, weekdayTokens[i])
			}
		}
		if len(days) > 0 {
			fmt.Fprintf(&b, ";BYDAY=%s", strings.Join(days, ","))
		}
	case MonthlyByWeekday:
		nth := nthOfMonth(start.Day, datetime.DaysInMonth(start.Year, start.Month))
		fmt.Fprintf(&b, ";BYDAY=%d%s", nth, weekdayTokens[start.Weekday()])
	case YearlyByDayOfYear:
		fmt.Fprintf(&b, ";BYYEARDAY=%d", start.DayOfYear())
	case YearlyByWeekday:
		fmt.Fprintf(&b, ";BYDAY=%d%s;BYMONTH=%d",
			start.WeekOfMonth(), weekdayTokens[start.Weekday()], start.Month)
	}

	if until, ok := r.Until().Get(); ok {
		fmt.Fprintf(&b, ";UNTIL=%s", FormatICalDateTime(until.Add(1)))
	}
	if count, ok := r.Count().Get(); ok {
		fmt.Fprintf(&b, ";COUNT=%d", count)
	}
	return b.String()
}
