// Package recurrence implements a calendar recurrence engine: a compact
// rule describes how an event repeats (daily, weekly on selected
// weekdays, monthly by date or by nth weekday, yearly by date, day of
// year, or nth weekday of a month), optionally bounded by an occurrence
// count or an end date, with per-day exception and completion sets. The
// engine answers next-occurrence queries; codecs in this package convert
// rules to and from the vCalendar 1.0 line format, the iCalendar 2.0
// RRULE property format, a structured hash form, and iCalendar VEVENT
// components.
package recurrence

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/cyp0633/librecur/datetime"
	"github.com/samber/mo"
)

// Rule is a single recurrence rule anchored at a start instant.
// Occurrences inherit the anchor's time of day. A Rule is a plain value:
// concurrent readers are safe as long as no writer runs in parallel.
type Rule struct {
	start       *datetime.Date
	kind        Kind
	interval    int
	count       mo.Option[int]
	until       mo.Option[datetime.Date]
	weekdayMask int
	exceptions  map[string]struct{}
	completions map[string]struct{}
}

// untilForeverYear is the sentinel some producers use for "no end date".
// It is accepted on input and treated as unset, but never emitted.
const untilForeverYear = 9999

// NewRule creates a rule anchored at start with kind None and interval 1.
// The rule keeps its own clone of start.
func NewRule(start *datetime.Date) *Rule {
	return &Rule{
		start:       start.Clone(),
		kind:        None,
		interval:    1,
		count:       mo.None[int](),
		until:       mo.None[datetime.Date](),
		exceptions:  make(map[string]struct{}),
		completions: make(map[string]struct{}),
	}
}

// Start returns the rule's anchor. The returned Date is owned by the
// rule; mutate it only to adjust the anchor in place.
func (r *Rule) Start() *datetime.Date { return r.start }

// SetStart replaces the anchor with a clone of start.
func (r *Rule) SetStart(start *datetime.Date) {
	if start != nil {
		r.start = start.Clone()
	}
}

// Kind returns the recurrence kind.
func (r *Rule) Kind() Kind { return r.kind }

// SetKind sets the recurrence kind.
func (r *Rule) SetKind(k Kind) { r.kind = k }

// Interval returns the step size in the kind's natural unit.
func (r *Rule) Interval() int { return r.interval }

// SetInterval sets the step size. Values below 1 are silently ignored.
func (r *Rule) SetInterval(n int) {
	if n >= 1 {
		r.interval = n
	}
}

// Count returns the occurrence bound, if any. The count is inclusive of
// the first occurrence.
func (r *Rule) Count() mo.Option[int] { return r.count }

// SetCount bounds the rule to n occurrences and clears any end date.
// A non-positive n clears the count without touching the end date.
func (r *Rule) SetCount(n int) {
	if n <= 0 {
		r.count = mo.None[int]()
		return
	}
	r.count = mo.Some(n)
	r.until = mo.None[datetime.Date]()
}

// Until returns the inclusive end date, if any.
func (r *Rule) Until() mo.Option[datetime.Date] { return r.until }

// SetUntil sets the inclusive end date and clears any count. A nil date,
// or one carrying the year-9999 "forever" sentinel, clears the end date
// without touching the count.
func (r *Rule) SetUntil(d *datetime.Date) {
	if d == nil || d.Year == untilForeverYear {
		r.until = mo.None[datetime.Date]()
		return
	}
	r.until = mo.Some(*d.Clone())
	r.count = mo.None[int]()
}

// WeekdayMask returns the weekly rule's weekday bitmask, bit i being
// weekday i with Sunday = 0.
func (r *Rule) WeekdayMask() int { return r.weekdayMask }

// SetWeekdayMask replaces the weekday bitmask.
func (r *Rule) SetWeekdayMask(mask int) { r.weekdayMask = mask }

// DayKey formats the eight-character YYYYMMDD key identifying a
// calendar day in the exception and completion sets.
func DayKey(year, month, day int) string {
	return fmt.Sprintf("%04d%02d%02d", year, month, day)
}

func dateKey(d *datetime.Date) string {
	return DayKey(d.Year, d.Month, d.Day)
}

// AddException marks a day to be skipped.
func (r *Rule) AddException(year, month, day int) {
	r.exceptions[DayKey(year, month, day)] = struct{}{}
}

// DeleteException removes a day from the exception set. Removing an
// absent day is a no-op.
func (r *Rule) DeleteException(year, month, day int) {
	delete(r.exceptions, DayKey(year, month, day))
}

// HasException reports whether the day is in the exception set.
func (r *Rule) HasException(year, month, day int) bool {
	_, ok := r.exceptions[DayKey(year, month, day)]
	return ok
}

// Exceptions returns the exception day keys in ascending order.
func (r *Rule) Exceptions() []string { return sortedKeys(r.exceptions) }

// AddCompletion marks a day as already satisfied. Completed days are
// treated like exceptions when searching for the next active occurrence
// but are stored and exported separately.
func (r *Rule) AddCompletion(year, month, day int) {
	r.completions[DayKey(year, month, day)] = struct{}{}
}

// DeleteCompletion removes a day from the completion set.
func (r *Rule) DeleteCompletion(year, month, day int) {
	delete(r.completions, DayKey(year, month, day))
}

// HasCompletion reports whether the day is in the completion set.
func (r *Rule) HasCompletion(year, month, day int) bool {
	_, ok := r.completions[DayKey(year, month, day)]
	return ok
}

// Completions returns the completion day keys in ascending order.
func (r *Rule) Completions() []string { return sortedKeys(r.completions) }

// isSkipped reports whether the occurrence's day is excluded by either
// skip set.
func (r *Rule) isSkipped(d *datetime.Date) bool {
	key := dateKey(d)
	if _, ok := r.exceptions[key]; ok {
		return true
	}
	_, ok := r.completions[key]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the rule.
func (r *Rule) Clone() *Rule {
	c := &Rule{
		start:       r.start.Clone(),
		kind:        r.kind,
		interval:    r.interval,
		count:       r.count,
		until:       r.until,
		weekdayMask: r.weekdayMask,
		exceptions:  make(map[string]struct{}, len(r.exceptions)),
		completions: make(map[string]struct{}, len(r.completions)),
	}
	for k := range r.exceptions {
		c.exceptions[k] = struct{}{}
	}
	for k := range r.completions {
		c.completions[k] = struct{}{}
	}
	return c
}

// Fingerprint returns a stable digest of every field that influences
// occurrence computation. The engine cache keys on it.
func (r *Rule) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%d", r.start, r.kind, r.interval, r.weekdayMask)
	if n, ok := r.count.Get(); ok {
		fmt.Fprintf(h, "|c%d", n)
	}
	if u, ok := r.until.Get(); ok {
		fmt.Fprintf(h, "|u%s", u.String())
	}
	fmt.Fprintf(h, "|e%s", strings.Join(r.Exceptions(), ","))
	fmt.Fprintf(h, "|d%s", strings.Join(r.Completions(), ","))
	return fmt.Sprintf("%x", h.Sum(nil))
}
