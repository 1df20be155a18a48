// Package datetime provides a mutable Gregorian calendar instant.
//
// The standard library's time.Time is an immutable point on a physical
// timeline; recurrence arithmetic wants something closer to a broken-down
// calendar value: individual fields that can be set out of range and
// validated afterwards (a candidate of February 31 must be representable
// so it can be rejected), whole-day differences, and weekday placement
// within a month. Date fills that gap. Conversions to time.Time always
// use UTC; this package does not interpret time zones.
package datetime

import (
	"fmt"
	"time"
)

// Date is a calendar instant with second resolution. All fields are
// plain ints and may be mutated freely; a Date holding an impossible
// combination (February 30) is allowed and reported by IsValid.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
	Hour  int
	Min   int
	Sec   int
}

// New returns a Date with the given fields. No validation is performed.
func New(year, month, day, hour, min, sec int) *Date {
	return &Date{Year: year, Month: month, Day: day, Hour: hour, Min: min, Sec: sec}
}

// FromTime converts a time.Time into its broken-down UTC calendar fields.
func FromTime(t time.Time) *Date {
	t = t.UTC()
	return &Date{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Hour:  t.Hour(),
		Min:   t.Minute(),
		Sec:   t.Second(),
	}
}

// FromUnix converts seconds since the Unix epoch.
func FromUnix(sec int64) *Date {
	return FromTime(time.Unix(sec, 0))
}

// parseLayouts are the textual forms Parse accepts, most specific first.
var parseLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"20060102T150405",
	"2006-01-02",
	"20060102",
}

// Parse reads a Date from an ISO-style string such as "2009-01-05",
// "2009-01-05 10:00:00" or the compact "20090105T100000". A trailing
// "Z" is tolerated and ignored.
func Parse(s string) (*Date, error) {
	if n := len(s); n > 0 && s[n-1] == 'Z' {
		s = s[:n-1]
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return nil, fmt.Errorf("datetime: cannot parse %q", s)
}

// Clone returns an independent copy.
func (d *Date) Clone() *Date {
	c := *d
	return &c
}

// Time converts to a time.Time in UTC. Out-of-range fields are
// normalized the way time.Date normalizes them.
func (d *Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Min, d.Sec, 0, time.UTC)
}

// midnight is the UTC midnight of the calendar day, used for whole-day math.
func (d *Date) midnight() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// IsValid reports whether the field combination names an existing
// calendar date, e.g. it rejects February 30 and April 31.
func (d *Date) IsValid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := d.midnight()
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// Weekday returns the day of week with Sunday = 0 through Saturday = 6.
func (d *Date) Weekday() int {
	return int(d.midnight().Weekday())
}

// DayOfYear returns the ordinal day within the year, January 1 = 1.
func (d *Date) DayOfYear() int {
	return d.midnight().YearDay()
}

// ISOWeek returns the ISO 8601 year and week number. Late December days
// may belong to week 1 of the following year and early January days to
// week 52 or 53 of the previous one; the returned year reflects that.
func (d *Date) ISOWeek() (year, week int) {
	return d.midnight().ISOWeek()
}

// WeekOfYear returns the week number under the Sunday-first convention:
// week 1 is the week containing January 1, and each Sunday begins a new
// week. This is the numbering the wire formats were built around; the
// occurrence engine itself uses ISO weeks.
func (d *Date) WeekOfYear() int {
	jan1 := Date{Year: d.Year, Month: 1, Day: 1}
	return (d.DayOfYear()-1+jan1.Weekday())/7 + 1
}

// WeekOfMonth returns the week of the month under the same Sunday-first
// convention, i.e. WeekOfYear(d) - WeekOfYear(first of month) + 1.
func (d *Date) WeekOfMonth() int {
	first := Date{Year: d.Year, Month: d.Month, Day: 1}
	return (d.Day-1+first.Weekday())/7 + 1
}

// CompareDateTime orders two instants by all six fields. It returns a
// negative value if d is earlier than o, zero if equal, positive if later.
func (d *Date) CompareDateTime(o *Date) int {
	if c := d.CompareDate(o); c != 0 {
		return c
	}
	if c := cmpInt(d.Hour, o.Hour); c != 0 {
		return c
	}
	if c := cmpInt(d.Min, o.Min); c != 0 {
		return c
	}
	return cmpInt(d.Sec, o.Sec)
}

// CompareDate orders two instants by calendar day only, ignoring the
// time of day.
func (d *Date) CompareDate(o *Date) int {
	if c := cmpInt(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmpInt(d.Month, o.Month); c != 0 {
		return c
	}
	return cmpInt(d.Day, o.Day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Diff returns the number of whole calendar days from d to o. The result
// is positive when o is later, negative when earlier; time of day is
// ignored.
func (d *Date) Diff(o *Date) int {
	return int(o.midnight().Sub(d.midnight()).Hours() / 24)
}

// Add returns a new Date n days later (earlier for negative n),
// preserving the time of day.
func (d *Date) Add(days int) *Date {
	t := d.midnight().AddDate(0, 0, days)
	c := d.Clone()
	c.Year, c.Month, c.Day = t.Year(), int(t.Month()), t.Day()
	return c
}

// AddMonths returns a new Date with the month advanced by n, keeping the
// day-of-month field as is. Unlike time.Time.AddDate this never
// normalizes an overflowing day into the next month: January 31 plus one
// month is the (invalid) February 31, which callers are expected to test
// with IsValid.
func (d *Date) AddMonths(n int) *Date {
	c := d.Clone()
	m := c.Year*12 + (c.Month - 1) + n
	c.Year = m / 12
	c.Month = m%12 + 1
	if c.Month < 1 { // Go's % is sign-preserving
		c.Year--
		c.Month += 12
	}
	return c
}

// SetNthWeekday mutates d to the n-th occurrence (1-5) of the given
// weekday (Sunday = 0) within d's current month. When n is 5 and the
// month holds only four such weekdays, the last one is used.
func (d *Date) SetNthWeekday(weekday, n int) {
	first := Date{Year: d.Year, Month: d.Month, Day: 1}
	day := 1 + (weekday-first.Weekday()+7)%7 + (n-1)*7
	for day > DaysInMonth(d.Year, d.Month) {
		day -= 7
	}
	d.Day = day
}

// FirstDayOfWeek returns the Monday beginning the given ISO week of the
// given year, at midnight.
func FirstDayOfWeek(week, year int) *Date {
	// January 4 is always inside ISO week 1.
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	monday := jan4.AddDate(0, 0, -offset+(week-1)*7)
	return &Date{Year: monday.Year(), Month: int(monday.Month()), Day: monday.Day()}
}

// IsLeapYear reports whether the given year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month of the
// given year.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

// String renders the instant as "2009-01-05 10:00:00".
func (d *Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Min, d.Sec)
}
