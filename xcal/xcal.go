// Package xcal converts recurrence rules to and from an xCal-style XML
// representation (RFC 6321 shape): each part of the iCalendar RRULE
// value becomes a lowercase child element of an <rrule> element.
package xcal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/cyp0633/librecur/datetime"
	"github.com/cyp0633/librecur/recurrence"
)

// ErrNoRecurrence is returned when marshalling a rule whose kind is None.
var ErrNoRecurrence = errors.New("xcal: rule has no recurrence")

// Marshal renders the rule as an <rrule> XML document.
func Marshal(r *recurrence.Rule) ([]byte, error) {
	value := recurrence.FormatRRule(r)
	if value == "" {
		return nil, ErrNoRecurrence
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("rrule")
	for _, part := range strings.Split(value, ";") {
		key, val, _ := strings.Cut(part, "=")
		child := root.CreateElement(strings.ToLower(key))
		child.SetText(val)
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

// Unmarshal reads an <rrule> XML document into a rule anchored at
// start. Unknown child elements pass through to the RRULE codec, which
// ignores them.
func Unmarshal(data []byte, start *datetime.Date) (*recurrence.Rule, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xcal: malformed document: %w", err)
	}
	root := doc.SelectElement("rrule")
	if root == nil {
		return nil, errors.New("xcal: missing rrule element")
	}

	var parts []string
	for _, child := range root.ChildElements() {
		parts = append(parts, fmt.Sprintf("%s=%s",
			strings.ToUpper(child.Tag), strings.TrimSpace(child.Text())))
	}
	r := recurrence.NewRule(start)
	recurrence.ParseRRule(r, strings.Join(parts, ";"))
	return r, nil
}
