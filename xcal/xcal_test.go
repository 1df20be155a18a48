package xcal

import (
	"testing"

	"github.com/cyp0633/librecur/datetime"
	"github.com/cyp0633/librecur/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	r := recurrence.NewRule(datetime.New(2009, 1, 5, 10, 0, 0))
	r.SetKind(recurrence.Weekly)
	r.SetInterval(2)
	r.SetWeekdayMask(1<<1 | 1<<4)
	r.SetCount(5)

	data, err := Marshal(r)
	require.NoError(t, err)

	xml := string(data)
	assert.Contains(t, xml, "<rrule>")
	assert.Contains(t, xml, "<freq>WEEKLY</freq>")
	assert.Contains(t, xml, "<interval>2</interval>")
	assert.Contains(t, xml, "<byday>MO,TH</byday>")
	assert.Contains(t, xml, "<count>5</count>")
}

func TestMarshalNone(t *testing.T) {
	r := recurrence.NewRule(datetime.New(2009, 1, 5, 10, 0, 0))
	_, err := Marshal(r)
	assert.ErrorIs(t, err, ErrNoRecurrence)
}

func TestUnmarshal(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<rrule>
  <freq>DAILY</freq>
  <interval>2</interval>
  <count>3</count>
</rrule>`

	r, err := Unmarshal([]byte(input), datetime.New(2009, 1, 1, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, recurrence.Daily, r.Kind())
	assert.Equal(t, 2, r.Interval())
	assert.Equal(t, 3, r.Count().MustGet())
}

func TestUnmarshalErrors(t *testing.T) {
	start := datetime.New(2009, 1, 1, 9, 0, 0)

	_, err := Unmarshal([]byte("<not-closed"), start)
	assert.Error(t, err)

	_, err = Unmarshal([]byte("<calendar/>"), start)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	kinds := []recurrence.Kind{
		recurrence.Daily,
		recurrence.Weekly,
		recurrence.MonthlyByDate,
		recurrence.MonthlyByWeekday,
		recurrence.YearlyByDate,
		recurrence.YearlyByDayOfYear,
		recurrence.YearlyByWeekday,
	}

	for _, kind := range kinds {
		orig := recurrence.NewRule(datetime.New(2009, 1, 12, 10, 0, 0))
		orig.SetKind(kind)
		orig.SetInterval(2)
		orig.SetWeekdayMask(1 << 1)
		orig.SetCount(4)

		data, err := Marshal(orig)
		require.NoError(t, err, "kind %s", kind)

		parsed, err := Unmarshal(data, orig.Start().Clone())
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, parsed.Kind())
		assert.Equal(t, 2, parsed.Interval())
		assert.Equal(t, 4, parsed.Count().MustGet())
	}
}
