package timespan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockRE = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)

var weekdayNames = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// fieldDomains fixes the order of a rule's fields: times, weekdays, days,
// months.
var fieldDomains = [4]*domain{timeDomain, weekdayDomain, dayDomain, monthDomain}

// ParseRule parses a single timespan rule of the form
//
//	[!]times|weekdays|days|months
//
// and returns it as an immutable Rule value. Surrounding whitespace is
// ignored; anything else that deviates from the grammar is a *ParseError.
func ParseRule(s string) (Rule, error) {
	r := Rule{src: s}
	body := strings.TrimSpace(s)
	if strings.HasPrefix(body, "!") {
		r.Negated = true
		body = body[1:]
	}
	fields := strings.Split(body, "|")
	if len(fields) != len(fieldDomains) {
		return Rule{}, &ParseError{
			Rule: s,
			Err:  fmt.Errorf("%w, got %d", ErrMalformedRule, len(fields)),
		}
	}
	specs := [4]*FieldSpec{&r.Time, &r.Weekday, &r.Day, &r.Month}
	for i, dom := range fieldDomains {
		spec, err := parseField(fields[i], dom)
		if err != nil {
			return Rule{}, &ParseError{Rule: s, Field: dom.name, Err: err}
		}
		*specs[i] = spec
	}
	return r, nil
}

// parseField expands one field into its FieldSpec: the "*" wildcard, or
// comma-separated sub-ranges of at most two dash-separated tokens each. The
// same grammar serves all four domains; only the token resolver differs.
func parseField(field string, dom *domain) (FieldSpec, error) {
	if field == "" {
		return FieldSpec{}, ErrEmptyField
	}
	if field == "*" {
		return FieldSpec{dom: dom}, nil
	}
	var spans []Span
	for _, tok := range strings.Split(field, ",") {
		span, err := parseSpan(tok, dom)
		if err != nil {
			return FieldSpec{}, err
		}
		spans = append(spans, span)
	}
	return FieldSpec{dom: dom, spans: spans}, nil
}

func parseSpan(tok string, dom *domain) (Span, error) {
	first, second, ranged := strings.Cut(tok, "-")
	lo, err := resolveToken(first, dom)
	if err != nil {
		return Span{}, err
	}
	if !ranged {
		return Span{Lo: lo, Hi: lo}, nil
	}
	hi, err := resolveToken(second, dom)
	if err != nil {
		return Span{}, err
	}
	return Span{Lo: lo, Hi: hi}, nil
}

func resolveToken(tok string, dom *domain) (int, error) {
	if tok == "" {
		return 0, ErrEmptyField
	}
	return dom.resolve(tok, dom)
}

// resolveClock turns an H:MM or HH:MM token into minutes since midnight.
func resolveClock(tok string, _ *domain) (int, error) {
	m := clockRE.FindStringSubmatch(tok)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", tok, ErrInvalidValue)
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", tok, ErrInvalidValue)
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", tok, ErrInvalidValue)
	}
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%q: %w", tok, ErrInvalidValue)
	}
	return hour*60 + minute, nil
}

func resolveWeekday(tok string, dom *domain) (int, error) {
	return resolveName(tok, weekdayNames, dom)
}

func resolveMonth(tok string, dom *domain) (int, error) {
	return resolveName(tok, monthNames, dom)
}

func resolveDay(tok string, dom *domain) (int, error) {
	return resolveOrdinal(tok, dom)
}

// resolveName looks tok up case-insensitively in the name table, falling back
// to a numeric ordinal. A token that is neither a known name nor numeric is
// ErrUnknownName; a numeric token outside the domain is ErrInvalidValue.
func resolveName(tok string, names map[string]int, dom *domain) (int, error) {
	if v, ok := names[strings.ToLower(tok)]; ok {
		return v, nil
	}
	if _, err := strconv.Atoi(tok); err != nil {
		return 0, fmt.Errorf("%q: %w", tok, ErrUnknownName)
	}
	return resolveOrdinal(tok, dom)
}

func resolveOrdinal(tok string, dom *domain) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil || v < dom.min || v > dom.max {
		return 0, fmt.Errorf("%q: %w", tok, ErrInvalidValue)
	}
	return v, nil
}
