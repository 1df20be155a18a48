package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Date
		fails bool
	}{
		{name: "date only", input: "2009-01-05", want: New(2009, 1, 5, 0, 0, 0)},
		{name: "date and time", input: "2009-01-05 10:00:00", want: New(2009, 1, 5, 10, 0, 0)},
		{name: "iso T separator", input: "2009-01-05T10:30:00", want: New(2009, 1, 5, 10, 30, 0)},
		{name: "compact", input: "20090105T100000", want: New(2009, 1, 5, 10, 0, 0)},
		{name: "compact date", input: "20090105", want: New(2009, 1, 5, 0, 0, 0)},
		{name: "trailing Z", input: "20090105T100000Z", want: New(2009, 1, 5, 10, 0, 0)},
		{name: "garbage", input: "not a date", fails: true},
		{name: "empty", input: "", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.fails {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		date *Date
		want bool
	}{
		{name: "ordinary day", date: New(2009, 1, 31, 0, 0, 0), want: true},
		{name: "feb 29 leap", date: New(2008, 2, 29, 0, 0, 0), want: true},
		{name: "feb 29 non-leap", date: New(2009, 2, 29, 0, 0, 0), want: false},
		{name: "feb 30", date: New(2008, 2, 30, 0, 0, 0), want: false},
		{name: "april 31", date: New(2009, 4, 31, 0, 0, 0), want: false},
		{name: "month 13", date: New(2009, 13, 1, 0, 0, 0), want: false},
		{name: "day zero", date: New(2009, 1, 0, 0, 0, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.IsValid())
		})
	}
}

func TestWeekdayAndOrdinals(t *testing.T) {
	// 2009-01-05 was a Monday, the 5th day of the year.
	d := New(2009, 1, 5, 10, 0, 0)
	assert.Equal(t, 1, d.Weekday())
	assert.Equal(t, 5, d.DayOfYear())

	sunday := New(2009, 11, 1, 0, 0, 0)
	assert.Equal(t, 0, sunday.Weekday())
	assert.Equal(t, 6, New(2009, 1, 31, 0, 0, 0).Weekday())
}

func TestISOWeek(t *testing.T) {
	tests := []struct {
		name     string
		date     *Date
		wantYear int
		wantWeek int
	}{
		{name: "same calendar year", date: New(2009, 1, 5, 0, 0, 0), wantYear: 2009, wantWeek: 2},
		{name: "dec in week 1", date: New(2008, 12, 29, 0, 0, 0), wantYear: 2009, wantWeek: 1},
		{name: "jan in week 53", date: New(2010, 1, 1, 0, 0, 0), wantYear: 2009, wantWeek: 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, week := tt.date.ISOWeek()
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantWeek, week)
		})
	}
}

func TestWeekOfYear(t *testing.T) {
	// Sunday-first numbering: week 1 holds January 1, each Sunday
	// starts a new week.
	assert.Equal(t, 1, New(2009, 1, 1, 0, 0, 0).WeekOfYear())
	assert.Equal(t, 1, New(2009, 1, 3, 0, 0, 0).WeekOfYear())
	assert.Equal(t, 2, New(2009, 1, 4, 0, 0, 0).WeekOfYear())
	assert.Equal(t, 45, New(2009, 11, 1, 0, 0, 0).WeekOfYear())
	assert.Equal(t, 48, New(2009, 11, 26, 0, 0, 0).WeekOfYear())
}

func TestWeekOfMonth(t *testing.T) {
	// November 2009 begins on a Sunday; the 26th falls in its 4th week.
	assert.Equal(t, 4, New(2009, 11, 26, 0, 0, 0).WeekOfMonth())
	assert.Equal(t, 1, New(2009, 11, 1, 0, 0, 0).WeekOfMonth())
	// January 2009 begins on a Thursday, so Sunday the 4th opens week 2
	// and the 5th falls in it.
	assert.Equal(t, 2, New(2009, 1, 5, 0, 0, 0).WeekOfMonth())
}

func TestCompare(t *testing.T) {
	a := New(2009, 1, 5, 10, 0, 0)
	b := New(2009, 1, 5, 12, 0, 0)
	c := New(2009, 1, 6, 9, 0, 0)

	assert.Negative(t, a.CompareDateTime(b))
	assert.Positive(t, b.CompareDateTime(a))
	assert.Zero(t, a.CompareDateTime(a.Clone()))

	assert.Zero(t, a.CompareDate(b))
	assert.Negative(t, b.CompareDate(c))
}

func TestDiffAndAdd(t *testing.T) {
	a := New(2009, 1, 5, 10, 0, 0)
	b := New(2009, 1, 12, 0, 0, 0)
	assert.Equal(t, 7, a.Diff(b))
	assert.Equal(t, -7, b.Diff(a))

	added := a.Add(7)
	assert.Equal(t, New(2009, 1, 12, 10, 0, 0), added)
	assert.Equal(t, New(2009, 1, 5, 10, 0, 0), a, "Add must not mutate the receiver")

	// Across the leap day.
	assert.Equal(t, New(2008, 3, 1, 0, 0, 0), New(2008, 2, 28, 0, 0, 0).Add(2))
}

func TestAddMonths(t *testing.T) {
	jan31 := New(2009, 1, 31, 9, 0, 0)

	feb := jan31.AddMonths(1)
	assert.Equal(t, 2009, feb.Year)
	assert.Equal(t, 2, feb.Month)
	assert.Equal(t, 31, feb.Day, "day-of-month is preserved, not normalized")
	assert.False(t, feb.IsValid())

	mar := jan31.AddMonths(2)
	assert.True(t, mar.IsValid())

	next := New(2009, 11, 15, 0, 0, 0).AddMonths(3)
	assert.Equal(t, 2010, next.Year)
	assert.Equal(t, 2, next.Month)
}

func TestSetNthWeekday(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		weekday int
		n       int
		wantDay int
	}{
		{name: "2nd monday jan 2009", year: 2009, month: 1, weekday: 1, n: 2, wantDay: 12},
		{name: "2nd monday feb 2009", year: 2009, month: 2, weekday: 1, n: 2, wantDay: 9},
		{name: "4th thursday nov 2009", year: 2009, month: 11, weekday: 4, n: 4, wantDay: 26},
		{name: "1st sunday nov 2009", year: 2009, month: 11, weekday: 0, n: 1, wantDay: 1},
		{name: "5th friday falls back to last", year: 2009, month: 2, weekday: 5, n: 5, wantDay: 27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.year, tt.month, 1, 0, 0, 0)
			d.SetNthWeekday(tt.weekday, tt.n)
			assert.Equal(t, tt.wantDay, d.Day)
		})
	}
}

func TestFirstDayOfWeek(t *testing.T) {
	// ISO week 1 of 2009 begins on Monday 2008-12-29.
	assert.Equal(t, New(2008, 12, 29, 0, 0, 0), FirstDayOfWeek(1, 2009))
	assert.Equal(t, New(2009, 1, 5, 0, 0, 0), FirstDayOfWeek(2, 2009))
	assert.Equal(t, New(2009, 1, 19, 0, 0, 0), FirstDayOfWeek(4, 2009))
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2008))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(2009))
	assert.False(t, IsLeapYear(1900))
}

func TestFromTimeAndTime(t *testing.T) {
	moment := time.Date(2009, 6, 30, 23, 59, 59, 0, time.UTC)
	d := FromTime(moment)
	assert.Equal(t, New(2009, 6, 30, 23, 59, 59), d)
	assert.True(t, d.Time().Equal(moment))

	assert.Equal(t, d, FromUnix(moment.Unix()))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2009, 1))
	assert.Equal(t, 28, DaysInMonth(2009, 2))
	assert.Equal(t, 29, DaysInMonth(2008, 2))
	assert.Equal(t, 30, DaysInMonth(2009, 4))
}

func TestString(t *testing.T) {
	assert.Equal(t, "2009-01-05 10:00:00", New(2009, 1, 5, 10, 0, 0).String())
}
