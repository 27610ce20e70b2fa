// Package xcal renders go-ical calendars as xCal XML (RFC 6321).
package xcal

import (
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/emersion/go-ical"
)

const namespace = "urn:ietf:params:xml:ns:icalendar-2.0"


// Encode renders cal as an indented xCal document.
func Encode(cal *ical.Calendar) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("icalendar")
	root.CreateAttr("xmlns", namespace)
	encodeComponent(root, cal.Component)
	doc.Indent(2)
	return doc.WriteToBytes()
}

func encodeComponent(parent *etree.Element, comp *ical.Component) {
	el := parent.CreateElement(strings.ToLower(comp.Name))

	props := el.CreateElement("properties")
	for _, name := range sortedPropNames(comp.Props) {
		for _, prop := range comp.Props[name] {
			encodeProp(props, prop)
		}
	}

	if len(comp.Children) > 0 {
		components := el.CreateElement("components")
		for _, child := range comp.Children {
			encodeComponent(components, child)
		}
	}
}

func encodeProp(parent *etree.Element, prop ical.Prop) {
	el := parent.CreateElement(strings.ToLower(prop.Name))
	tag, value := valueTag(prop)
	el.CreateElement(tag).SetText(value)
}

// valueTag picks the xCal value element for a property and converts ics
// date-time values to the extended format xCal uses.
func valueTag(prop ical.Prop) (string, string) {
	switch prop.Name {
	case ical.PropDateTimeStart, ical.PropDateTimeEnd, ical.PropDateTimeStamp:
		if t, err := time.Parse("20060102T150405Z", prop.Value); err == nil {
			return "date-time", t.Format("2006-01-02T15:04:05Z")
		}
		if t, err := time.Parse("20060102T150405", prop.Value); err == nil {
			return "date-time", t.Format("2006-01-02T15:04:05")
		}
		if t, err := time.Parse("20060102", prop.Value); err == nil {
			return "date", t.Format("2006-01-02")
		}
		return "date-time", prop.Value
	case ical.PropRecurrenceRule:
		return "recur", prop.Value
	default:
		// prop.Value is the ics-escaped form; xCal carries the plain text.
		if text, err := prop.Text(); err == nil {
			return "text", text
		}
		return "text", prop.Value
	}
}

func sortedPropNames(props ical.Props) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
