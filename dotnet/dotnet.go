// Package dotnet converts between time.Duration values and .NET TimeSpan
// strings, the [-][d.]hh:mm:ss[.fffffff] notation produced by TimeSpan's
// standard "c", "g" and "G" format specifiers.
package dotnet

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Specifier selects one of the three standard TimeSpan formats.
type Specifier byte

const (
	// Constant is the culture-invariant "c" format:
	// [-][d'.']hh':'mm':'ss['.'fffffff].
	Constant Specifier = 'c'

	// GeneralShort is the "g" format, [-][d':']h':'mm':'ss[.FFFFFFF]. It
	// outputs only what is needed and trims trailing fraction zeros.
	GeneralShort Specifier = 'g'

	// GeneralLong is the "G" format, [-]d':'hh':'mm':'ss.fffffff. It always
	// outputs days and seven fractional digits.
	GeneralLong Specifier = 'G'
)

// A .NET tick is 100ns; fractions carry at most seven digits.
const fractionDigits = 7

// ErrBadFormat is wrapped by Parse for input that is not a TimeSpan string.
var ErrBadFormat = errors.New("not a TimeSpan string")

// pattern accepts all three formats. Days are told apart from hours by their
// trailing ':' or '.'; both '.' and ',' serve as the decimal separator.
var pattern = regexp.MustCompile(
	`^(-?)([0-9]+[:.])?([0-9]{1,2}):([0-9]{2}):([0-9]{2})([.,][0-9]{1,7})?$`)

// Duration builds a time.Duration from TimeSpan components. Components are
// summed, so they may individually exceed their natural carry range.
func Duration(days, hours, minutes, seconds, milliseconds int) time.Duration {
	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(milliseconds)*time.Millisecond
}

// Formatter renders TimeSpan strings. The g and G formats are locale-sensitive
// in .NET; Go carries no locale database, so the decimal separator is an
// explicit option here instead.
type Formatter struct {
	// DecimalSeparator separates seconds from their fraction in the g and G
	// formats. Empty means ".". The c format is invariant and always uses ".".
	DecimalSeparator string
}

// Format renders d in the given format.
func (f Formatter) Format(d time.Duration, spec Specifier) string {
	sep := f.DecimalSeparator
	if sep == "" || spec == Constant {
		sep = "."
	}

	var sign string
	if d < 0 {
		sign = "-"
		d = -d
	}

	days := int(d / (24 * time.Hour))
	rem := d % (24 * time.Hour)
	hours := int(rem / time.Hour)
	rem %= time.Hour
	minutes := int(rem / time.Minute)
	rem %= time.Minute
	seconds := int(rem / time.Second)
	ticks := int(rem % time.Second / 100)

	hh := fmt.Sprintf("%02d", hours)
	if spec == GeneralShort {
		hh = strconv.Itoa(hours)
	}

	var frac string
	if ticks > 0 || spec == GeneralLong {
		frac = sep + fmt.Sprintf("%07d", ticks)
		if spec == GeneralShort {
			frac = strings.TrimRight(frac, "0")
		}
	}

	var dd string
	switch {
	case days == 0 && spec != GeneralLong:
	case spec == Constant:
		dd = strconv.Itoa(days) + "."
	default:
		dd = strconv.Itoa(days) + ":"
	}

	return fmt.Sprintf("%s%s%s:%02d:%02d%s", sign, dd, hh, minutes, seconds, frac)
}

// Format renders d with the invariant "." separator.
func Format(d time.Duration, spec Specifier) string {
	return Formatter{}.Format(d, spec)
}

// Parse converts a TimeSpan string in any of the three formats into a
// time.Duration. Both "." and "," are accepted as the decimal separator, and
// a leading "-" negates every component. Fractions resolve exactly to 100ns
// ticks.
func Parse(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadFormat)
	}

	var days int
	if m[2] != "" {
		days, _ = strconv.Atoi(strings.TrimRight(m[2], ":."))
	}
	hours, _ := strconv.Atoi(m[3])
	minutes, _ := strconv.Atoi(m[4])
	seconds, _ := strconv.Atoi(m[5])

	var ticks int
	if m[6] != "" {
		digits := m[6][1:]
		ticks, _ = strconv.Atoi(digits)
		for i := len(digits); i < fractionDigits; i++ {
			ticks *= 10
		}
	}

	d := Duration(days, hours, minutes, seconds, 0) + time.Duration(ticks)*100
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}

// TotalSeconds parses s and returns its length in seconds, fraction included.
func TotalSeconds(s string) (float64, error) {
	d, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return d.Seconds(), nil
}
