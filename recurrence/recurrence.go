// Package recurrence bridges timespan rules to iCalendar-style recurrence
// rules. A non-negated rule is a daily recurrence of window starts restricted
// by weekday, day-of-month and month, which maps directly onto RRULE
// semantics.
package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jart/timespan"
	"github.com/teambition/rrule-go"
)

// ErrNegatedRule marks a rule whose complement has no recurrence form: the
// instants outside a window do not make up a window sequence.
var ErrNegatedRule = errors.New("negated timespan has no recurrence form")

const minutesPerDay = 24 * 60

// Pattern is one recurring window of a rule: a daily start time plus the
// fields restricting which days it fires on. Nil day lists mean no
// restriction.
type Pattern struct {
	Start     int           // minutes after midnight of the window start
	Duration  time.Duration // window length; instants in [start, start+Duration) match the rule
	Weekdays  []int         // Monday is 0
	Monthdays []int
	Months    []int
}

// Patterns decomposes a rule into its recurring windows, one per time
// sub-range. A rule with a wildcard time field yields a single whole-day
// window. Negated rules yield ErrNegatedRule.
func Patterns(r timespan.Rule) ([]Pattern, error) {
	if r.Negated {
		return nil, fmt.Errorf("%q: %w", r.String(), ErrNegatedRule)
	}
	spans := r.Time.Spans()
	if spans == nil {
		spans = []timespan.Span{{Lo: 0, Hi: minutesPerDay - 1}}
	}
	patterns := make([]Pattern, 0, len(spans))
	for _, s := range spans {
		// Matching is minute-resolution and inclusive of Hi, so the window
		// runs to the start of minute Hi+1. Lo > Hi crosses midnight.
		length := s.Hi - s.Lo + 1
		if s.Lo > s.Hi {
			length = minutesPerDay - s.Lo + s.Hi + 1
		}
		patterns = append(patterns, Pattern{
			Start:     s.Lo,
			Duration:  time.Duration(length) * time.Minute,
			Weekdays:  r.Weekday.Values(),
			Monthdays: r.Day.Values(),
			Months:    r.Month.Values(),
		})
	}
	return patterns, nil
}

var rruleWeekdays = [7]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

var bydayNames = [7]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// ROption builds the rrule options describing the pattern's window starts.
func (p Pattern) ROption(dtstart time.Time) rrule.ROption {
	opt := rrule.ROption{
		Freq:     rrule.DAILY,
		Dtstart:  dtstart,
		Byhour:   []int{p.Start / 60},
		Byminute: []int{p.Start % 60},
		Bysecond: []int{0},
	}
	for _, wd := range p.Weekdays {
		opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
	}
	opt.Bymonthday = append([]int(nil), p.Monthdays...)
	opt.Bymonth = append([]int(nil), p.Months...)
	return opt
}

// RRule compiles the pattern for expansion from dtstart.
func (p Pattern) RRule(dtstart time.Time) (*rrule.RRule, error) {
	return rrule.NewRRule(p.ROption(dtstart))
}

// RRuleString renders the pattern as an RRULE property value.
func (p Pattern) RRuleString() string {
	parts := []string{"FREQ=DAILY"}
	if len(p.Weekdays) > 0 {
		names := make([]string, len(p.Weekdays))
		for i, wd := range p.Weekdays {
			names[i] = bydayNames[wd]
		}
		parts = append(parts, "BYDAY="+strings.Join(names, ","))
	}
	if len(p.Monthdays) > 0 {
		parts = append(parts, "BYMONTHDAY="+joinInts(p.Monthdays))
	}
	if len(p.Months) > 0 {
		parts = append(parts, "BYMONTH="+joinInts(p.Months))
	}
	parts = append(parts,
		"BYHOUR="+strconv.Itoa(p.Start/60),
		"BYMINUTE="+strconv.Itoa(p.Start%60))
	return strings.Join(parts, ";")
}

func joinInts(vals []int) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = strconv.Itoa(v)
	}
	return strings.Join(strs, ",")
}

// Window is one concrete occurrence of a rule's pattern. End is exclusive.
type Window struct {
	Start, End time.Time
}

// Windows expands the rule into the concrete windows starting within
// [from, until], sorted by start.
func Windows(r timespan.Rule, from, until time.Time) ([]Window, error) {
	patterns, err := Patterns(r)
	if err != nil {
		return nil, err
	}
	var wins []Window
	for _, p := range patterns {
		rr, err := p.RRule(from)
		if err != nil {
			return nil, fmt.Errorf("compile recurrence for %q: %w", r.String(), err)
		}
		for _, start := range rr.Between(from, until, true) {
			wins = append(wins, Window{Start: start, End: start.Add(p.Duration)})
		}
	}
	sort.Slice(wins, func(i, j int) bool { return wins[i].Start.Before(wins[j].Start) })
	return wins, nil
}

// searchHorizon bounds Next to one year of minutes. Rare combinations such as
// a leap day pinned to one weekday can fall outside it; the bound trades that
// away for a guaranteed finite search.
const searchHorizon = 366 * 24 * time.Hour

// Next returns the first instant strictly after t that the ruleset matches,
// at minute resolution. The second return is false when no match exists
// within the search horizon.
func Next(rs timespan.Ruleset, t time.Time) (time.Time, bool) {
	end := t.Add(searchHorizon)
	for cur := t.Truncate(time.Minute).Add(time.Minute); !cur.After(end); cur = cur.Add(time.Minute) {
		if rs.Matches(cur) {
			return cur, true
		}
	}
	return time.Time{}, false
}
