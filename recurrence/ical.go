package recurrence

import (
	"fmt"
	"strings"

	"github.com/cyp0633/librecur/datetime"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// FormatICalDateTime renders d as an iCalendar date-time string in UTC,
// e.g. "20090701T000000Z", by round-tripping it through a go-ical
// property. The wire codecs use it for their end-date terminators.
func FormatICalDateTime(d *datetime.Date) string {
	prop := ical.NewProp(ical.PropDateTimeEnd)
	prop.SetDateTime(d.Time())
	return prop.Value
}

// FromComponent extracts a recurrence rule from an iCal component:
// DTSTART becomes the anchor, RRULE is parsed with the iCalendar 2.0
// codec and EXDATE days populate the exception set.
func FromComponent(comp *ical.Component) (*Rule, error) {
	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return nil, fmt.Errorf("component %s has no DTSTART", comp.Name)
	}
	dtstart, err := startProp.DateTime(nil)
	if err != nil {
		return nil, fmt.Errorf("unusable DTSTART: %w", err)
	}
	r := NewRule(datetime.FromTime(dtstart))

	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil && prop.Value != "" {
		ParseRRule(r, prop.Value)
	}
	if prop := comp.Props.Get(ical.PropExceptionDates); prop != nil && prop.Value != "" {
		for _, s := range strings.Split(prop.Value, ",") {
			if d, err := datetime.Parse(strings.TrimSpace(s)); err == nil {
				r.AddException(d.Year, d.Month, d.Day)
			}
		}
	}
	return r, nil
}

// ToComponent renders the rule as a VEVENT component carrying UID,
// DTSTART, RRULE and EXDATE. An empty uid gets a generated one.
func ToComponent(r *Rule, uid string) *ical.Component {
	if uid == "" {
		uid = uuid.NewString()
	}
	comp := ical.NewComponent(ical.CompEvent)
	comp.Props.SetText(ical.PropUID, uid)
	comp.Props.SetDateTime(ical.PropDateTimeStart, r.Start().Time())

	if value := FormatRRule(r); value != "" {
		// RRULE is a RECUR value, not TEXT: store it verbatim so its ';'
		// and ',' separators are not backslash-escaped.
		prop := ical.NewProp(ical.PropRecurrenceRule)
		prop.Value = value
		comp.Props.Set(prop)
	}
	if keys := r.Exceptions(); len(keys) > 0 {
		prop := ical.NewProp(ical.PropExceptionDates)
		prop.Params.Set(ical.ParamValue, "DATE")
		prop.Value = strings.Join(keys, ",")
		comp.Props.Set(prop)
	}
	return comp
}
