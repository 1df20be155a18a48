package recurrence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cyp0633/librecur/datetime"
)

// The vCalendar 1.0 recurrence grammar: a frequency tag, an optional
// interval, format-specific modifiers, and a terminator that is either
// "#N" (occurrence count, 0 = forever) or an end date.

var vcalPattern = regexp.MustCompile(`^(MP|MD|YM|YD|D|W)(\d+)?\s*(.*)$`)

var vcalKinds = map[string]Kind{
	"D":  Daily,
	"W":  Weekly,
	"MP": MonthlyByWeekday,
	"MD": MonthlyByDate,
	"YM": YearlyByDate,
	"YD": YearlyByDayOfYear,
}

var (
	vcalCountPattern = regexp.MustCompile(`^#(\d+)`)
	vcalUntilPattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})(?:T(\d{2})(\d{2})(\d{2}))?`)
)

// ParseVCal configures r from a vCalendar 1.0 recurrence rule line such
// as "W2 MO TH #5" or "D1 20090630". Empty or unrecognized input sets
// the kind to None; unknown modifier text is skipped.
func ParseVCal(r *Rule, line string) {
	m := vcalPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		r.SetKind(None)
		return
	}
	kind := vcalKinds[m[1]]
	r.SetKind(kind)
	r.SetInterval(1)
	if m[2] != "" {
		if n, err := strconv.Atoi(m[2]); err == nil {
			r.SetInterval(n)
		}
	}

	rest := m[3]
	mask := 0
	for i := 0; i < len(rest); {
		switch {
		case rest[i] == ' ' || rest[i] == '\t':
			i++
		case kind == Weekly && i+2 <= len(rest) && isWeekdayToken(rest[i:i+2]):
			bit, _ := weekdayIndex(rest[i : i+2])
			mask |= 1 << bit
			i += 2
		case rest[i] == '#':
			if cm := vcalCountPattern.FindStringSubmatch(rest[i:]); cm != nil {
				n, _ := strconv.Atoi(cm[1])
				r.SetCount(n)
				i = len(rest)
				continue
			}
			i++
		default:
			if um := vcalUntilPattern.FindStringSubmatch(rest[i:]); um != nil {
				r.SetUntil(vcalUntilDate(um))
				i = len(rest)
				continue
			}
			i++
		}
	}

	if kind == Weekly {
		if mask == 0 {
			mask = 1 << r.Start().Weekday()
		}
		r.SetWeekdayMask(mask)
	}
}

func isWeekdayToken(s string) bool {
	_, ok := weekdayIndex(s)
	return ok
}

func vcalUntilDate(m []string) *datetime.Date {
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	d := datetime.New(atoi(m[1]), atoi(m[2]), atoi(m[3]), 0, 0, 0)
	if m[4] != "" {
		d.Hour, d.Min, d.Sec = atoi(m[4]), atoi(m[5]), atoi(m[6])
	}
	return d
}

// FormatVCal renders r as a vCalendar 1.0 recurrence rule line. The end
// date, if any, is emitted one day later than stored (the iCalendar
// half-open convention); otherwise "#N" is emitted with N = 0 standing
// for an unbounded rule.
func FormatVCal(r *Rule) string {
	var b strings.Builder
	start := r.Start()
	switch r.Kind() {
	case Daily:
		fmt.Fprintf(&b, "D%d", r.Interval())
	case Weekly:
		fmt.Fprintf(&b, "W%d", r.Interval())
		// The scan runs one bit past Saturday; bit 7 is never set.
		for i := 0; i <= 7; i++ {
			if r.WeekdayMask()&(1<<i) != 0 && i < len(weekdayTokens) {
				b.WriteByte(' ')
				b.WriteString(weekdayTokens[i])
			}
		}
	case MonthlyByWeekday:
		nth := nthOfMonth(start.Day, datetime.DaysInMonth(start.Year, start.Month))
		fmt.Fprintf(&b, "MP%d %d+ %s", r.Interval(), nth, weekdayTokens[start.Weekday()])
	case MonthlyByDate:
		fmt.Fprintf(&b, "MD%d %d", r.Interval(), start.Day)
	case YearlyByDate:
		fmt.Fprintf(&b, "YM%d %d", r.Interval(), start.Month)
	case YearlyByDayOfYear:
		fmt.Fprintf(&b, "YD%d %d", r.Interval(), start.DayOfYear())
	default:
		return ""
	}

	b.WriteByte(' ')
	if until, ok := r.Until().Get(); ok {
		b.WriteString(FormatICalDateTime(until.Add(1)))
	} else {
		fmt.Fprintf(&b, "#%d", r.Count().OrElse(0))
	}
	return b.String()
}
