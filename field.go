package timespan

import "sort"

// Span is one low-high sub-range within a field, expressed in the field's own
// ordinal space. A bare value v is stored as (v, v). Lo > Hi denotes
// wraparound: the union of [Lo, domain max] and [domain min, Hi], such as
// fri-mon or 22:00-6:00.
type Span struct {
	Lo, Hi int
}

// domain describes the ordinal space of one rule field. The four instances
// below are the only ones: minute-of-day 0-1439, weekday 0-6 (Monday is 0),
// day-of-month 1-31 and month 1-12. The resolver receives its own domain as a
// parameter so that the package-level vars stay free of initialization
// cycles.
type domain struct {
	name     string
	min, max int
	resolve  func(token string, dom *domain) (int, error)
}

var (
	timeDomain    = &domain{name: "time", min: 0, max: 1439, resolve: resolveClock}
	weekdayDomain = &domain{name: "weekday", min: 0, max: 6, resolve: resolveWeekday}
	dayDomain     = &domain{name: "day", min: 1, max: 31, resolve: resolveDay}
	monthDomain   = &domain{name: "month", min: 1, max: 12, resolve: resolveMonth}
)

// FieldSpec is the parsed form of one rule field: either the wildcard or an
// ordered set of sub-ranges. The zero value is the wildcard. FieldSpecs are
// immutable once parsed.
type FieldSpec struct {
	dom   *domain
	spans []Span
}

// IsWildcard reports whether the field accepts every value in its domain.
func (f FieldSpec) IsWildcard() bool { return len(f.spans) == 0 }

// Spans returns a copy of the field's sub-ranges, nil for the wildcard.
func (f FieldSpec) Spans() []Span {
	if len(f.spans) == 0 {
		return nil
	}
	return append([]Span(nil), f.spans...)
}

// Matches reports whether v falls inside the field. A wraparound sub-range
// matches the tail and head of the domain; day-of-month wraparound is
// evaluated purely on the numeric range 1-31, with no awareness of how many
// days the concrete month has.
func (f FieldSpec) Matches(v int) bool {
	if len(f.spans) == 0 {
		return true
	}
	for _, s := range f.spans {
		if s.Lo <= s.Hi {
			if s.Lo <= v && v <= s.Hi {
				return true
			}
		} else if v >= s.Lo || v <= s.Hi {
			return true
		}
	}
	return false
}

// Values expands the field into the sorted, deduplicated list of accepted
// ordinals. It returns nil for the wildcard.
func (f FieldSpec) Values() []int {
	if len(f.spans) == 0 {
		return nil
	}
	seen := make(map[int]bool)
	var vals []int
	add := func(lo, hi int) {
		for v := lo; v <= hi; v++ {
			if !seen[v] {
				seen[v] = true
				vals = append(vals, v)
			}
		}
	}
	for _, s := range f.spans {
		if s.Lo <= s.Hi {
			add(s.Lo, s.Hi)
		} else {
			add(s.Lo, f.dom.max)
			add(f.dom.min, s.Hi)
		}
	}
	sort.Ints(vals)
	return vals
}
