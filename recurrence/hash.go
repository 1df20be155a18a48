package recurrence

import (
	"strconv"
	"strings"

	"github.com/cyp0633/librecur/datetime"
)

// The hash form is a loosely-typed map of named fields: "cycle" and
// "type" select the kind, "range-type"/"range" the termination,
// "daynumber"/"month"/"day" refit the anchor, and "exceptions"/
// "completions" carry the skip sets as YYYYMMDD keys.

// FromMap configures r from the hash form. It returns false, with the
// kind reset to None, when the mandatory "interval" or "range-type"
// field is missing; unknown values elsewhere are silently ignored.
func FromMap(r *Rule, h map[string]any) bool {
	interval, ok := hashInt(h["interval"])
	if !ok {
		r.SetKind(None)
		return false
	}
	rangeType, ok := hashString(h["range-type"])
	if !ok {
		r.SetKind(None)
		return false
	}

	r.SetInterval(interval)
	kindType, _ := hashString(h["type"])
	r.SetKind(hashKind(h["cycle"], kindType))

	lastWeekday := -1
	if days, ok := hashStrings(h["day"]); ok {
		mask := 0
		for _, name := range days {
			if i, ok := weekdayNameIndex(name); ok {
				mask |= 1 << i
				lastWeekday = i
			}
		}
		r.SetWeekdayMask(mask)
	}

	switch strings.ToLower(rangeType) {
	case "number":
		if n, ok := hashInt(h["range"]); ok {
			r.SetCount(n)
		}
	case "date":
		if s, ok := hashString(h["range"]); ok {
			if d, err := datetime.Parse(s); err == nil {
				d.Hour, d.Min, d.Sec = 23, 59, 59
				r.SetUntil(d)
			}
		}
	case "none":
		r.SetUntil(nil)
		r.SetCount(0)
	}

	daynumber, hasDayNumber := hashInt(h["daynumber"])
	start := r.Start()
	switch r.Kind() {
	case MonthlyByDate:
		if hasDayNumber {
			start.Day = daynumber
		}
	case MonthlyByWeekday:
		if hasDayNumber && lastWeekday >= 0 {
			start.SetNthWeekday(lastWeekday, daynumber)
		}
	case YearlyByDate:
		if name, ok := hashString(h["month"]); ok {
			if m, ok := monthNameIndex(name); ok {
				start.Month = m
			}
		}
		if hasDayNumber {
			start.Day = daynumber
		}
	case YearlyByDayOfYear:
		if hasDayNumber {
			start.Day += daynumber - start.DayOfYear()
		}
	case YearlyByWeekday:
		if name, ok := hashString(h["month"]); ok {
			if m, ok := monthNameIndex(name); ok {
				start.Month = m
			}
		}
		if hasDayNumber && lastWeekday >= 0 {
			start.SetNthWeekday(lastWeekday, daynumber)
		}
	}

	if keys, ok := hashStrings(h["exceptions"]); ok {
		for _, key := range keys {
			if y, m, d, ok := splitDayKey(key); ok {
				r.AddException(y, m, d)
			}
		}
	}
	if keys, ok := hashStrings(h["completions"]); ok {
		for _, key := range keys {
			if y, m, d, ok := splitDayKey(key); ok {
				r.AddCompletion(y, m, d)
			}
		}
	}
	return true
}

// ToMap renders r in the hash form. A kind of None yields an empty map.
func ToMap(r *Rule) map[string]any {
	h := make(map[string]any)
	if r.Kind() == None {
		return h
	}

	start := r.Start()
	h["interval"] = r.Interval()
	switch r.Kind() {
	case Daily:
		h["cycle"] = "daily"
	case Weekly:
		h["cycle"] = "weekly"
		var days []string
		for i := 0; i < len(weekdayNames); i++ {
			if r.WeekdayMask()&(1<<i) != 0 {
				days = append(days, weekdayNames[i])
			}
		}
		h["day"] = days
	case MonthlyByDate:
		h["cycle"] = "monthly"
		h["type"] = "daynumber"
		h["daynumber"] = start.Day
	case MonthlyByWeekday:
		h["cycle"] = "monthly"
		h["type"] = "weekday"
		h["daynumber"] = (start.Day + 6) / 7
		h["day"] = []string{weekdayNames[start.Weekday()]}
	case YearlyByDate:
		h["cycle"] = "yearly"
		h["type"] = "monthday"
		h["month"] = monthNames[start.Month-1]
		h["daynumber"] = start.Day
	case YearlyByDayOfYear:
		h["cycle"] = "yearly"
		h["type"] = "yearday"
		h["daynumber"] = start.DayOfYear()
	case YearlyByWeekday:
		h["cycle"] = "yearly"
		h["type"] = "weekday"
		h["month"] = monthNames[start.Month-1]
		h["daynumber"] = (start.Day + 6) / 7
		h["day"] = []string{weekdayNames[start.Weekday()]}
	}

	switch {
	case r.Count().IsPresent():
		h["range-type"] = "number"
		h["range"] = r.Count().MustGet()
	case r.Until().IsPresent():
		until := r.Until().MustGet()
		h["range-type"] = "date"
		h["range"] = until.String()[:10]
	default:
		h["range-type"] = "none"
	}

	if keys := r.Exceptions(); len(keys) > 0 {
		h["exceptions"] = keys
	}
	if keys := r.Completions(); len(keys) > 0 {
		h["completions"] = keys
	}
	return h
}

// hashKind maps the cycle and type fields to a Kind. Anything
// unrecognized maps to None.
func hashKind(cycle any, kindType string) Kind {
	c, _ := hashString(cycle)
	switch strings.ToLower(c) {
	case "daily":
		return Daily
	case "weekly":
		return Weekly
	case "monthly":
		if strings.ToLower(kindType) == "weekday" {
			return MonthlyByWeekday
		}
		return MonthlyByDate
	case "yearly":
		switch strings.ToLower(kindType) {
		case "yearday":
			return YearlyByDayOfYear
		case "weekday":
			return YearlyByWeekday
		default:
			return YearlyByDate
		}
	}
	return None
}

func hashInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func hashString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func hashStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		return []string{list}, true
	}
	return nil, false
}

// splitDayKey parses an eight-digit YYYYMMDD day key.
func splitDayKey(key string) (year, month, day int, ok bool) {
	key = strings.TrimSpace(key)
	if len(key) != 8 {
		return 0, 0, 0, false
	}
	y, err1 := strconv.Atoi(key[:4])
	m, err2 := strconv.Atoi(key[4:6])
	d, err3 := strconv.Atoi(key[6:8])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return y, m, d, true
}
