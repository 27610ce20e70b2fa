/*
Package timespan checks whether timestamps fall within human-readable
recurring time windows.

A timespan describes a recurring window in the form times|weekdays|days|months,
where each field is either the * wildcard or a comma-separated list of values
and low-high ranges. A rule starting with ! matches timestamps falling outside
its window. For example, business hours Monday through Friday:

	ok, err := timespan.Match([]string{"9:00-17:00|mon-fri|*|*"}, time.Now())

Several rules combine by conjunction: every non-negated rule must match and
every negated rule must not. That makes exclusions natural:

	bizhr := []string{
		"9:00-17:00|mon-fri|*|*",
		"!*|*|1|jan",
		"!*|*|25|dec",
		"!*|thu|22-28|nov",
	}
	open, err := timespan.Match(bizhr, time.Now())

MatchAny evaluates the same rules by disjunction instead, which suits split
windows such as "9:00-12:00 or 13:00-17:00". An empty rule list matches
everything under Match and nothing under MatchAny.

# Grammar

	rule        := ["!"] field "|" field "|" field "|" field
	field       := "*" | subrange ("," subrange)*
	subrange    := token ["-" token]
	token(time) := H[H]":"MM                      (0:00-23:59)
	token(wday) := 0-6  | mon|tue|wed|thu|fri|sat|sun
	token(day)  := 1-31
	token(month):= 1-12 | jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec

Weekday and month names are case-insensitive; full names like "monday" and
"december" work too. Weekday 0 is Monday. A range whose low end exceeds its
high end wraps around the domain: "fri-mon" covers Friday through Monday and
"22:00-6:00" covers the night across midnight. Day-of-month ranges wrap on the
numeric range 1-31 without regard to how many days the concrete month has.

# Pre-parsed rules

Rules are otherwise parsed afresh on every call. To parse once and match many
times, or to mix strings with parsed rules, use Ruleset and Matcher:

	rs, err := timespan.ParseRuleset(bizhr...)
	open := rs.Matches(time.Now())

	m := timespan.NewMatcher(timespan.WithLogger(logger))
	open, err := m.Match([]timespan.RuleInput{
		timespan.Parsed(rs[0]),
		timespan.Raw("!*|*|25|dec"),
	}, time.Now())

# Errors

Malformed rules fail the whole call immediately; nothing is skipped. The
returned error is a *ParseError naming the rule and field at fault and
wrapping one of ErrMalformedRule, ErrEmptyField, ErrInvalidValue or
ErrUnknownName.
*/
package timespan
