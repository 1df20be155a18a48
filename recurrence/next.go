package recurrence

import (
	"github.com/cyp0633/librecur/datetime"
)

// NextAfter returns the earliest occurrence on or after pivot, subject
// to the rule's count and until bounds, or nil when none remains. The
// skip sets are not consulted; see NextActiveAfter for that.
//
// When the pivot does not lie past the anchor the anchor itself is the
// answer, so the first occurrence is always reachable by passing the
// anchor as pivot.
func (r *Rule) NextAfter(pivot *datetime.Date) *datetime.Date {
	if pivot == nil {
		return nil
	}
	if r.start.CompareDateTime(pivot) >= 0 {
		return r.start.Clone()
	}
	if r.kind == None || r.interval == 0 {
		return nil
	}
	switch r.kind {
	case Daily:
		return r.nextDaily(pivot)
	case Weekly:
		return r.nextWeekly(pivot)
	case MonthlyByDate:
		return r.nextMonthlyByDate(pivot)
	case MonthlyByWeekday:
		return r.nextMonthlyByWeekday(pivot)
	case YearlyByDate:
		return r.nextYearlyByDate(pivot)
	case YearlyByDayOfYear:
		return r.nextYearlyByDayOfYear(pivot)
	case YearlyByWeekday:
		return r.nextYearlyByWeekday(pivot)
	}
	return nil
}

// NextActiveAfter behaves like NextAfter but skips occurrences whose day
// appears in the exception or completion set, advancing one day past
// each skipped candidate.
func (r *Rule) NextActiveAfter(pivot *datetime.Date) *datetime.Date {
	if pivot == nil {
		return nil
	}
	pivot = pivot.Clone()
	for {
		occ := r.NextAfter(pivot)
		if occ == nil {
			return nil
		}
		if !r.isSkipped(occ) {
			return occ
		}
		pivot = occ.Add(1)
	}
}

// HasActiveOccurrence reports whether the rule still produces at least
// one occurrence outside the skip sets. An open-ended rule (no until)
// trivially does; a bounded one is walked from the anchor forward.
func (r *Rule) HasActiveOccurrence() bool {
	if r.until.IsAbsent() {
		return true
	}
	pivot := r.start.Clone()
	var prev *datetime.Date
	for {
		occ := r.NextAfter(pivot)
		if occ == nil {
			return false
		}
		// A candidate that does not advance strictly would be counted
		// twice and loop forever; treat it as exhaustion.
		if prev != nil && occ.CompareDateTime(prev) <= 0 {
			return false
		}
		if !r.isSkipped(occ) {
			return true
		}
		prev = occ
		pivot = occ.Add(1)
	}
}

func (r *Rule) nextDaily(pivot *datetime.Date) *datetime.Date {
	// Days from anchor to pivot, rounding partial days up: a pivot later
	// in the day than the anchor's time has already passed that day's
	// occurrence.
	seconds := pivot.Time().Unix() - r.start.Time().Unix()
	days := int((seconds + 86399) / 86400)
	k := ceilDiv(days, r.interval)
	if n, ok := r.count.Get(); ok && k >= n {
		return nil
	}
	return r.boundUntil(r.start.Add(k * r.interval))
}

func (r *Rule) nextWeekly(pivot *datetime.Date) *datetime.Date {
	// No selectable weekday means no occurrences; bits past Saturday
	// never match a real weekday.
	if r.weekdayMask&0x7f == 0 {
		return nil
	}
	sw := r.weekAnchor(r.start)
	pw := r.weekAnchor(pivot)
	weekEnd := pw.Add(6)
	step := r.interval * 7

	// Align the week distance up to the next multiple of the interval.
	delta := sw.Diff(pw)
	if rem := delta % step; rem != 0 {
		delta += step - rem
	}
	if n, ok := r.count.Get(); ok && delta/7/r.interval >= n {
		return nil
	}

	cand := sw.Add(delta)
	for cand.CompareDateTime(pivot) < 0 {
		if cand.CompareDate(weekEnd) >= 0 {
			return r.nextWeekly(pw.Add(7))
		}
		cand = cand.Add(1)
	}
	for r.weekdayMask&(1<<cand.Weekday()) == 0 {
		if cand.CompareDate(weekEnd) >= 0 {
			// Week exhausted without hitting a selected weekday; retry
			// from the following week. Each recursion advances the
			// pivot a full week, so the search terminates.
			return r.nextWeekly(pw.Add(7))
		}
		cand = cand.Add(1)
	}
	return r.boundUntil(cand)
}

// weekAnchor returns the first day of the ISO week containing d, with
// the rule anchor's time of day. Days aliased into an adjacent ISO year
// (late December in week 1, early January in week 52/53) resolve to the
// Monday of the week they actually belong to.
func (r *Rule) weekAnchor(d *datetime.Date) *datetime.Date {
	year, week := d.ISOWeek()
	ws := datetime.FirstDayOfWeek(week, year)
	ws.Hour, ws.Min, ws.Sec = r.start.Hour, r.start.Min, r.start.Sec
	return ws
}

func (r *Rule) nextMonthlyByDate(pivot *datetime.Date) *datetime.Date {
	months := (pivot.Year-r.start.Year)*12 + pivot.Month - r.start.Month
	if pivot.Day > r.start.Day {
		months++
	}
	if months < 0 {
		months = 0
	}
	off := ceilDiv(months, r.interval) * r.interval
	for {
		if n, ok := r.count.Get(); ok && off/r.interval >= n {
			return nil
		}
		cand := r.start.AddMonths(off)
		if u, ok := r.until.Get(); ok && cand.CompareDate(&u) > 0 {
			return nil
		}
		if cand.IsValid() {
			return cand
		}
		// With a 12-month interval the candidate month never changes, so
		// an anchor like April 31 (or February 30) can never become a
		// real date. February 29 is the one day that may still appear in
		// a later (leap) year.
		if r.interval == 12 && (r.start.Month != 2 || r.start.Day > 29) {
			return nil
		}
		off += r.interval
	}
}

func (r *Rule) nextMonthlyByWeekday(pivot *datetime.Date) *datetime.Date {
	nth := (r.start.Day + 6) / 7
	wd := r.start.Weekday()
	months := (pivot.Year-r.start.Year)*12 + pivot.Month - r.start.Month
	if months < 0 {
		months = 0
	}
	// One interval short of the aligned offset, so the first iteration
	// lands on the first candidate month.
	off := ceilDiv(months, r.interval)*r.interval - r.interval
	for {
		off += r.interval
		if n, ok := r.count.Get(); ok && off/r.interval >= n {
			return nil
		}
		cand := r.start.AddMonths(off)
		cand.Day = 1
		cand.SetNthWeekday(wd, nth)
		if u, ok := r.until.Get(); ok && cand.CompareDate(&u) > 0 {
			return nil
		}
		if cand.CompareDateTime(pivot) >= 0 {
			return cand
		}
	}
}

func (r *Rule) nextYearlyByDate(pivot *datetime.Date) *datetime.Date {
	year := pivot.Year
	if pivot.Month > r.start.Month ||
		(pivot.Month == r.start.Month && pivot.Day > r.start.Day) {
		year++
	}
	// A February 29 anchor only recurs in leap years.
	if r.start.Month == 2 && r.start.Day == 29 {
		for !datetime.IsLeapYear(year) {
			year++
		}
	}
	off := year - r.start.Year
	if off < 0 {
		off = 0
	}
	off = ceilDiv(off, r.interval) * r.interval
	if n, ok := r.count.Get(); ok && off/r.interval >= n {
		return nil
	}
	cand := r.start.Clone()
	cand.Year = r.start.Year + off
	return r.boundUntil(cand)
}

func (r *Rule) nextYearlyByDayOfYear(pivot *datetime.Date) *datetime.Date {
	doy := r.start.DayOfYear()
	idx := (pivot.Year-r.start.Year)/r.interval + 1
	if n, ok := r.count.Get(); ok {
		if idx > n || (idx == n && pivot.DayOfYear() > doy) {
			return nil
		}
	}
	cand := r.start.Clone()
	cand.Year = r.start.Year + (idx-1)*r.interval
	// Re-pin the ordinal day: the same month/day shifts by one across
	// the leap-day boundary.
	cand.Day += doy - cand.DayOfYear()
	if cand.CompareDate(pivot) < 0 {
		cand.Year += r.interval
		cand.Day = r.start.Day
		cand.Day += doy - cand.DayOfYear()
	}
	return r.boundUntil(cand)
}

func (r *Rule) nextYearlyByWeekday(pivot *datetime.Date) *datetime.Date {
	nth := (r.start.Day + 6) / 7
	wd := r.start.Weekday()
	off := pivot.Year - r.start.Year
	if off < 0 {
		off = 0
	}
	off = ceilDiv(off, r.interval)*r.interval - r.interval
	for {
		off += r.interval
		if n, ok := r.count.Get(); ok && off/r.interval >= n {
			return nil
		}
		cand := r.start.Clone()
		cand.Year = r.start.Year + off
		cand.Day = 1
		cand.SetNthWeekday(wd, nth)
		if u, ok := r.until.Get(); ok && cand.CompareDate(&u) > 0 {
			return nil
		}
		if cand.CompareDateTime(pivot) >= 0 {
			return cand
		}
	}
}

// boundUntil returns cand unless it lies past the rule's end date. The
// bound is day-granular: an occurrence on the until day itself is kept
// regardless of time of day.
func (r *Rule) boundUntil(cand *datetime.Date) *datetime.Date {
	if u, ok := r.until.Get(); ok && cand.CompareDate(&u) > 0 {
		return nil
	}
	return cand
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
