package xcal

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	event := ical.NewComponent(ical.CompEvent)
	event.Props.SetText(ical.PropUID, "abc@timespan")
	event.Props.SetText(ical.PropSummary, "Night shift; on call")
	event.Props.SetDateTime(ical.PropDateTimeStart,
		time.Date(2024, time.January, 1, 22, 0, 0, 0, time.UTC))
	rrule := ical.NewProp(ical.PropRecurrenceRule)
	rrule.Value = "FREQ=DAILY;BYHOUR=22;BYMINUTE=0"
	event.Props.Add(rrule)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//jart//timespan//EN")
	cal.Children = append(cal.Children, event)

	out, err := Encode(cal)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, text, `<icalendar xmlns="urn:ietf:params:xml:ns:icalendar-2.0">`)
	assert.Contains(t, text, "<vcalendar>")
	assert.Contains(t, text, "<vevent>")
	assert.Contains(t, text, "<text>abc@timespan</text>")
	assert.Contains(t, text, "<text>Night shift; on call</text>")
	assert.NotContains(t, text, `\;`)
	assert.Contains(t, text, "<date-time>2024-01-01T22:00:00Z</date-time>")
	assert.Contains(t, text, "<recur>FREQ=DAILY;BYHOUR=22;BYMINUTE=0</recur>")
}
