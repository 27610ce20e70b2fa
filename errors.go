package timespan

import (
	"errors"
	"fmt"
)

// Parse failures are reported as a *ParseError wrapping one of these
// sentinels, so callers can both identify the broken rule and branch on the
// error class with errors.Is.
var (
	// ErrMalformedRule means the rule did not split into exactly four
	// |-delimited fields.
	ErrMalformedRule = errors.New("timespan must have exactly four fields")

	// ErrEmptyField means a field, or a token inside one, was empty.
	ErrEmptyField = errors.New("empty field")

	// ErrInvalidValue means a numeric token fell outside its field's domain,
	// such as month 13 or time 25:00.
	ErrInvalidValue = errors.New("value out of range")

	// ErrUnknownName means a non-numeric token matched nothing in the
	// weekday or month name table.
	ErrUnknownName = errors.New("unknown name")
)

// ParseError reports which rule string, and which of its fields, failed to
// parse. Field is "time", "weekday", "day" or "month", or empty when the rule
// as a whole is malformed.
type ParseError struct {
	Rule  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot parse timespan %q: %v", e.Rule, e.Err)
	}
	return fmt.Sprintf("cannot parse timespan %q: %s field: %v", e.Rule, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
