package timespan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleFieldCount(t *testing.T) {
	for _, src := range []string{
		"only-two|fields",
		"9:00-17:00",
		"9:00-17:00|mon-fri",
		"9:00-17:00|mon-fri|*",
		"*|*|*|*|*",
	} {
		_, err := ParseRule(src)
		assert.ErrorIs(t, err, ErrMalformedRule, "source %q", src)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, src, perr.Rule)
		assert.Empty(t, perr.Field)
	}
}

func TestParseRuleErrorTaxonomy(t *testing.T) {
	for _, tc := range []struct {
		name  string
		src   string
		field string
		want  error
	}{
		{"empty time field", "|*|*|*", "time", ErrEmptyField},
		{"empty day field", "*|*||*", "day", ErrEmptyField},
		{"empty subrange token", "*|mon,|*|*", "weekday", ErrEmptyField},
		{"open-ended range", "9:00-|*|*|*", "time", ErrEmptyField},
		{"hour out of range", "25:00-26:00|*|*|*", "time", ErrInvalidValue},
		{"minute out of range", "9:60|*|*|*", "time", ErrInvalidValue},
		{"time without colon", "900|*|*|*", "time", ErrInvalidValue},
		{"single-digit minutes", "9:5|*|*|*", "time", ErrInvalidValue},
		{"weekday ordinal too big", "*|7|*|*", "weekday", ErrInvalidValue},
		{"unknown weekday name", "*|noday|*|*", "weekday", ErrUnknownName},
		{"day zero", "*|*|0|*", "day", ErrInvalidValue},
		{"day out of range", "*|*|32|*", "day", ErrInvalidValue},
		{"day not numeric", "*|*|first|*", "day", ErrInvalidValue},
		{"month thirteen", "*|*|*|13", "month", ErrInvalidValue},
		{"unknown month name", "*|*|*|noember", "month", ErrUnknownName},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRule(tc.src)
			assert.ErrorIs(t, err, tc.want)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.src, perr.Rule)
			assert.Equal(t, tc.field, perr.Field)
			assert.Contains(t, perr.Error(), tc.src)
		})
	}
}

func TestParseRuleNamesCaseInsensitive(t *testing.T) {
	for _, src := range []string{
		"*|MON-FRI|*|*",
		"*|Monday-Friday|*|*",
		"*|mon-fri|*|JAN-dec",
		"*|0-4|*|january-December",
	} {
		rule, err := ParseRule(src)
		require.NoError(t, err, "source %q", src)
		assert.Equal(t, []Span{{Lo: 0, Hi: 4}}, rule.Weekday.Spans())
	}
}

func TestDomainResolvers(t *testing.T) {
	for _, tc := range []struct {
		dom  *domain
		tok  string
		want int
	}{
		{timeDomain, "23:59", 1439},
		{weekdayDomain, "sunday", 6},
		{weekdayDomain, "6", 6},
		{dayDomain, "31", 31},
		{monthDomain, "december", 12},
		{monthDomain, "12", 12},
	} {
		got, err := tc.dom.resolve(tc.tok, tc.dom)
		require.NoError(t, err, "%s %q", tc.dom.name, tc.tok)
		assert.Equal(t, tc.want, got)
	}

	_, err := weekdayDomain.resolve("7", weekdayDomain)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = monthDomain.resolve("0", monthDomain)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseRuleFields(t *testing.T) {
	rule, err := ParseRule("9:00-17:30,22:00-23:00|sat-sun|1,15-20|jun")
	require.NoError(t, err)

	assert.False(t, rule.Negated)
	assert.Equal(t, []Span{{Lo: 540, Hi: 1050}, {Lo: 1320, Hi: 1380}}, rule.Time.Spans())
	assert.Equal(t, []Span{{Lo: 5, Hi: 6}}, rule.Weekday.Spans())
	assert.Equal(t, []Span{{Lo: 1, Hi: 1}, {Lo: 15, Hi: 20}}, rule.Day.Spans())
	assert.Equal(t, []Span{{Lo: 6, Hi: 6}}, rule.Month.Spans())
}

func TestParseRuleWildcardFields(t *testing.T) {
	rule, err := ParseRule("*|*|*|*")
	require.NoError(t, err)

	for _, f := range []FieldSpec{rule.Time, rule.Weekday, rule.Day, rule.Month} {
		assert.True(t, f.IsWildcard())
		assert.Nil(t, f.Spans())
	}
}

func TestParseRuleNegation(t *testing.T) {
	rule, err := ParseRule("!*|*|25|dec")
	require.NoError(t, err)
	assert.True(t, rule.Negated)

	rule, err = ParseRule("  !*|*|25|dec  ")
	require.NoError(t, err)
	assert.True(t, rule.Negated)
}

func TestParseRuleWildcardInsideListRejected(t *testing.T) {
	_, err := ParseRule("*|mon,*|*|*")
	assert.ErrorIs(t, err, ErrUnknownName)
}

func TestParseRulesetPropagatesError(t *testing.T) {
	_, err := ParseRuleset("*|*|*|*\n*|*|*|13")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "month", perr.Field)
}
