package recurrence

import (
	"fmt"

	"github.com/cyp0633/librecur/datetime"
	"github.com/teambition/rrule-go"
)

// rruleWeekdays maps our Sunday-based weekday index to rrule-go's
// Monday-based constants.
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// ToROption translates the rule into a teambition/rrule-go option set,
// for callers that want to hand the rule to that library's expansion
// machinery. A kind of None is not translatable.
func ToROption(r *Rule) (rrule.ROption, error) {
	start := r.Start()
	opt := rrule.ROption{
		Dtstart:  start.Time(),
		Interval: r.Interval(),
	}
	if n, ok := r.Count().Get(); ok {
		opt.Count = n
	}
	if u, ok := r.Until().Get(); ok {
		opt.Until = u.Time()
	}

	nth := (start.Day + 6) / 7
	switch r.Kind() {
	case Daily:
		opt.Freq = rrule.DAILY
	case Weekly:
		opt.Freq = rrule.WEEKLY
		for i := 0; i < len(rruleWeekdays); i++ {
			if r.WeekdayMask()&(1<<i) != 0 {
				opt.Byweekday = append(opt.Byweekday, rruleWeekdays[i])
			}
		}
	case MonthlyByDate:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{start.Day}
	case MonthlyByWeekday:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[start.Weekday()].Nth(nth)}
	case YearlyByDate:
		opt.Freq = rrule.YEARLY
		opt.Bymonth = []int{start.Month}
		opt.Bymonthday = []int{start.Day}
	case YearlyByDayOfYear:
		opt.Freq = rrule.YEARLY
		opt.Byyearday = []int{start.DayOfYear()}
	case YearlyByWeekday:
		opt.Freq = rrule.YEARLY
		opt.Bymonth = []int{start.Month}
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[start.Weekday()].Nth(nth)}
	default:
		return rrule.ROption{}, fmt.Errorf("kind %s has no rrule representation", r.Kind())
	}
	return opt, nil
}

// FromROption builds a rule from a teambition/rrule-go option set. Only
// the frequencies and by-rules this engine models are supported.
func FromROption(opt rrule.ROption) (*Rule, error) {
	r := NewRule(datetime.FromTime(opt.Dtstart))
	r.SetInterval(opt.Interval)

	switch opt.Freq {
	case rrule.DAILY:
		r.SetKind(Daily)
	case rrule.WEEKLY:
		r.SetKind(Weekly)
		mask := 0
		for _, wd := range opt.Byweekday {
			mask |= 1 << ((wd.Day() + 1) % 7)
		}
		if mask == 0 {
			mask = 1 << r.Start().Weekday()
		}
		r.SetWeekdayMask(mask)
	case rrule.MONTHLY:
		if len(opt.Byweekday) > 0 {
			r.SetKind(MonthlyByWeekday)
		} else {
			r.SetKind(MonthlyByDate)
		}
	case rrule.YEARLY:
		switch {
		case len(opt.Byyearday) > 0:
			r.SetKind(YearlyByDayOfYear)
		case len(opt.Byweekday) > 0:
			r.SetKind(YearlyByWeekday)
		default:
			r.SetKind(YearlyByDate)
		}
	default:
		return nil, fmt.Errorf("unsupported rrule frequency %v", opt.Freq)
	}

	if opt.Count > 0 {
		r.SetCount(opt.Count)
	}
	if !opt.Until.IsZero() {
		r.SetUntil(datetime.FromTime(opt.Until))
	}
	return r, nil
}
