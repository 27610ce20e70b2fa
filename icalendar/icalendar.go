// Package icalendar exports timespan rulesets as iCalendar documents, so
// tools that speak ics or xCal can display the windows a ruleset describes.
package icalendar

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/jart/timespan"
	"github.com/jart/timespan/internal/xcal"
	"github.com/jart/timespan/recurrence"
)

const productID = "-//jart//timespan//EN"

// Calendar renders the ruleset as a VCALENDAR with one recurring VEVENT per
// window pattern. from anchors the recurrences: each event's DTSTART is its
// first window start at or after from. Negated rules have no event
// representation and yield recurrence.ErrNegatedRule.
func Calendar(name string, rs timespan.Ruleset, from time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	for _, r := range rs {
		patterns, err := recurrence.Patterns(r)
		if err != nil {
			return nil, err
		}
		for _, p := range patterns {
			rr, err := p.RRule(from)
			if err != nil {
				return nil, fmt.Errorf("compile recurrence for %q: %w", r.String(), err)
			}
			start := rr.After(from, true)
			if start.IsZero() {
				return nil, fmt.Errorf("no window of %q starts after %v", r.String(), from)
			}

			event := ical.NewComponent(ical.CompEvent)
			event.Props.SetText(ical.PropUID, uuid.NewString()+"@timespan")
			event.Props.SetText(ical.PropSummary, name)
			event.Props.SetDateTime(ical.PropDateTimeStamp, from)
			event.Props.SetDateTime(ical.PropDateTimeStart, start)
			event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(p.Duration))

			// SetText would tag the value VALUE=TEXT; RRULE's default
			// type is already recur.
			rruleProp := ical.NewProp(ical.PropRecurrenceRule)
			rruleProp.Value = p.RRuleString()
			event.Props.Add(rruleProp)
			cal.Children = append(cal.Children, event)
		}
	}
	return cal, nil
}

// Encode serializes cal as ics text.
func Encode(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeXCal serializes cal as xCal XML (RFC 6321).
func EncodeXCal(cal *ical.Calendar) ([]byte, error) {
	return xcal.Encode(cal)
}
