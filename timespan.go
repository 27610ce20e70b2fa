package timespan

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Rule is one parsed timespan: four field specs plus the negation flag.
type Rule struct {
	Negated bool
	Time    FieldSpec
	Weekday FieldSpec
	Day     FieldSpec
	Month   FieldSpec

	src string
}

// String returns the rule's original source text.
func (r Rule) String() string { return r.src }

// Matches reports whether t falls inside the rule, with negation applied. A
// timestamp is decomposed into minute-of-day, weekday (Monday is 0, matching
// the mon..sun name table), day-of-month and month, each tested against its
// field.
func (r Rule) Matches(t time.Time) bool {
	raw := r.Time.Matches(t.Hour()*60+t.Minute()) &&
		r.Weekday.Matches(weekdayOrdinal(t)) &&
		r.Day.Matches(t.Day()) &&
		r.Month.Matches(int(t.Month()))
	return raw != r.Negated
}

// weekdayOrdinal maps time.Weekday (Sunday is 0) onto the rule convention
// (Monday is 0).
func weekdayOrdinal(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Ruleset is an ordered list of parsed rules. Order never changes the match
// result; it is preserved for diagnostics.
type Ruleset []Rule

// ParseRuleset parses rule strings into a Ruleset. Each string may hold
// several newline-separated rules; blank lines are skipped.
func ParseRuleset(specs ...string) (Ruleset, error) {
	var rs Ruleset
	for _, spec := range specs {
		for _, line := range strings.Split(spec, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			r, err := ParseRule(line)
			if err != nil {
				return nil, err
			}
			rs = append(rs, r)
		}
	}
	return rs, nil
}

// Matches reports whether t satisfies every rule in the set: each non-negated
// rule must match and each negated rule must not. The empty set matches
// everything.
func (rs Ruleset) Matches(t time.Time) bool {
	for _, r := range rs {
		if !r.Matches(t) {
			return false
		}
	}
	return true
}

// MatchesAny reports whether t satisfies at least one rule in the set. The
// empty set matches nothing.
func (rs Ruleset) MatchesAny(t time.Time) bool {
	for _, r := range rs {
		if r.Matches(t) {
			return true
		}
	}
	return false
}

// RuleInput feeds a Matcher with either a raw rule string or an already
// parsed Rule. Construct values with Raw or Parsed.
type RuleInput = mo.Either[string, Rule]

// Raw wraps a rule string, possibly holding several newline-separated rules.
// It is parsed afresh on every Match call.
func Raw(s string) RuleInput { return mo.Left[string, Rule](s) }

// Parsed wraps an already parsed Rule.
func Parsed(r Rule) RuleInput { return mo.Right[string, Rule](r) }

// Matcher evaluates timespan rules against timestamps. Evaluation is pure and
// keeps no state across calls, so a single Matcher is safe for concurrent
// use.
type Matcher struct {
	logger *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger directs per-rule evaluation traces to logger, at debug level.
// Without it the Matcher is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) { m.logger = logger }
}

// NewMatcher creates a Matcher.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// normalize converts mixed inputs into a Ruleset before any evaluation
// happens, so a malformed rule fails the whole call up front.
func (m *Matcher) normalize(inputs []RuleInput) (Ruleset, error) {
	var rs Ruleset
	for _, in := range inputs {
		if s, ok := in.Left(); ok {
			parsed, err := ParseRuleset(s)
			if err != nil {
				return nil, err
			}
			rs = append(rs, parsed...)
			continue
		}
		rs = append(rs, in.MustRight())
	}
	return rs, nil
}

// Match reports whether t satisfies every rule. An empty input matches
// everything.
func (m *Matcher) Match(inputs []RuleInput, t time.Time) (bool, error) {
	rs, err := m.normalize(inputs)
	if err != nil {
		return false, err
	}
	for _, r := range rs {
		if !r.Matches(t) {
			m.logger.Debug("rule rejected timestamp", "rule", r.String(), "time", t)
			return false, nil
		}
	}
	return true, nil
}

// MatchAny reports whether t satisfies at least one rule. An empty input
// matches nothing.
func (m *Matcher) MatchAny(inputs []RuleInput, t time.Time) (bool, error) {
	rs, err := m.normalize(inputs)
	if err != nil {
		return false, err
	}
	for _, r := range rs {
		if r.Matches(t) {
			m.logger.Debug("rule accepted timestamp", "rule", r.String(), "time", t)
			return true, nil
		}
	}
	return false, nil
}

var defaultMatcher = NewMatcher()

// Match reports whether t falls inside every one of the given timespans.
// Each string may hold several newline-separated rules.
func Match(rules []string, t time.Time) (bool, error) {
	return defaultMatcher.Match(rawInputs(rules), t)
}

// MatchAny reports whether t falls inside at least one of the given
// timespans.
func MatchAny(rules []string, t time.Time) (bool, error) {
	return defaultMatcher.MatchAny(rawInputs(rules), t)
}

// MatchString matches t against a newline-delimited list of rules.
func MatchString(spec string, t time.Time) (bool, error) {
	return Match([]string{spec}, t)
}

func rawInputs(rules []string) []RuleInput {
	inputs := make([]RuleInput, len(rules))
	for i, s := range rules {
		inputs[i] = Raw(s)
	}
	return inputs
}
