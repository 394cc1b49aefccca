// Public domain.

// Package radec parses and formats sexagesimal equatorial coordinates.
//
// Accepted text forms are three fields separated by colons or white
// space, hours minutes seconds for right ascension, degrees minutes
// seconds for declination.  A declination sign applies to the whole
// coordinate, so "-00:30:00" means half a degree south.
package radec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
)

// split cuts a sexagesimal string into its three fields.
func split(s string) []string {
	return strings.Fields(strings.ReplaceAll(s, ":", " "))
}

// ParseRA parses sexagesimal hours, "16:13:11.57", into a right
// ascension.  Hours must be 0 to 23, minutes 0 to 59, seconds below
// 60.
func ParseRA(s string) (unit.RA, error) {
	f := split(s)
	if len(f) != 3 {
		return 0, fmt.Errorf("radec: invalid RA (%s), need 3 fields", s)
	}
	h, err := strconv.Atoi(f[0])
	var m int
	var sec float64
	if err == nil {
		m, err = strconv.Atoi(f[1])
		if err == nil {
			sec, err = strconv.ParseFloat(f[2], 64)
		}
	}
	if err != nil {
		return 0, fmt.Errorf("radec: invalid RA (%s), %v", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec >= 60 {
		return 0, fmt.Errorf("radec: RA (%s) out of range", s)
	}
	return unit.NewRA(h, m, sec), nil
}

// ParseDec parses signed sexagesimal degrees, "+20:52:23.7", into a
// declination.  The sign is taken from a leading + or - on the degree
// field and applies to the whole coordinate.  Degrees must be 0 to 90,
// minutes 0 to 59, seconds below 60.
func ParseDec(s string) (unit.Angle, error) {
	f := split(s)
	if len(f) != 3 {
		return 0, fmt.Errorf("radec: invalid dec (%s), need 3 fields", s)
	}
	neg := byte('+')
	df := f[0]
	if len(df) > 0 && (df[0] == '-' || df[0] == '+') {
		neg = df[0]
		df = df[1:]
	}
	d, err := strconv.Atoi(df)
	var m int
	var sec float64
	if err == nil {
		m, err = strconv.Atoi(f[1])
		if err == nil {
			sec, err = strconv.ParseFloat(f[2], 64)
		}
	}
	if err != nil {
		return 0, fmt.Errorf("radec: invalid dec (%s), %v", s, err)
	}
	switch {
	case d < 0 || d > 90 || m < 0 || m > 59 || sec < 0 || sec >= 60:
		return 0, fmt.Errorf("radec: dec (%s) out of range", s)
	case d == 90 && (m > 0 || sec > 0):
		return 0, fmt.Errorf("radec: dec (%s) beyond the pole", s)
	}
	return unit.NewAngle(neg, d, m, sec), nil
}

// Parse parses an RA, dec pair into equatorial coordinates.
func Parse(ra, dec string) (coord.Equa, error) {
	α, err := ParseRA(ra)
	if err != nil {
		return coord.Equa{}, err
	}
	δ, err := ParseDec(dec)
	if err != nil {
		return coord.Equa{}, err
	}
	return coord.Equa{RA: α, Dec: δ}, nil
}

// FormatRA formats a right ascension as colon separated sexagesimal
// hours with two decimals on the seconds, "16:13:11.57".
func FormatRA(ra unit.RA) string {
	// work in rounded hundredths of a second to carry cleanly
	cs := int64(math.Round(unit.Angle(ra).Deg() / 15 * 360000))
	cs %= 24 * 360000
	if cs < 0 {
		cs += 24 * 360000
	}
	return fmt.Sprintf("%02d:%02d:%05.2f",
		cs/360000, cs/6000%60, float64(cs%6000)/100)
}

// FormatDec formats a declination as signed colon separated
// sexagesimal degrees with one decimal on the seconds, "-00:30:00.0".
func FormatDec(dec unit.Angle) string {
	sign := byte('+')
	if dec < 0 {
		sign = '-'
	}
	// rounded tenths of an arc second
	ts := int64(math.Round(math.Abs(dec.Deg()) * 36000))
	return fmt.Sprintf("%c%02d:%02d:%04.1f",
		sign, ts/36000, ts/600%60, float64(ts%600)/10)
}
