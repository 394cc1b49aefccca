// Public domain.

// Package timeconv converts astronomical time series between time
// systems and standards.
//
// Times move between Julian date forms (JD, MJD, ISO 8601 calendar),
// the UTC and TDB standards, and light travel reference points: the
// observer, the heliocentre (HJD) and the solar system barycentre
// (BJD).  Input timestamps marking exposure start or end are shifted
// to mid exposure.
//
// Approximations are those usual for photometric work rather than
// pulsar timing: TDB-UTC is taken as ΔT from the post-2000 polynomial,
// which folds the sub-second UT1-UTC and TDB-TT differences into the
// second-level ΔT estimate, and the barycentre offset is computed from
// the mean orbits of the four giant planets, good to a few hundredths
// of a light second.  Barycentric corrections are reliable to roughly
// 0.2 seconds, heliocentric ones to well under that.
package timeconv

import (
	"errors"
	"fmt"
	"time"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/lmfit"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/observation"
	"github.com/soniakeys/unit"
)

// Format names a time format and standard.
type Format string

const (
	JDUTC   Format = "jd_utc"   // Julian date, UTC
	ISOTUTC Format = "isot_utc" // ISO 8601 calendar form, UTC
	MJDUTC  Format = "mjd_utc"  // modified Julian date, UTC
	MJDTDB  Format = "mjd_tdb"  // modified Julian date, TDB
	HJDUTC  Format = "hjd_utc"  // heliocentric Julian date, UTC
	BJDTDB  Format = "bjd_tdb"  // barycentric Julian date, TDB
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case JDUTC, ISOTUTC, MJDUTC, MJDTDB, HJDUTC, BJDTDB:
		return f, nil
	}
	return "", fmt.Errorf("timeconv: unknown time format %q", s)
}

// Stamp tells which instant of an exposure the input times mark.
type Stamp string

const (
	Start Stamp = "start"
	Mid   Stamp = "mid"
	End   Stamp = "end"
)

// ParseStamp validates a timestamp name.
func ParseStamp(s string) (Stamp, error) {
	switch st := Stamp(s); st {
	case Start, Mid, End:
		return st, nil
	}
	return "", fmt.Errorf("timeconv: unknown timestamp %q", s)
}

// A Converter converts batches of times from one format to another.
// Exported fields configure it, the zero Stamp meaning mid exposure.
// Formats with a light travel correction need the target direction,
// either fixed Target coordinates or motion fitted with UseArc.  A nil
// Site observes from the geocentre, at most some hundredths of a
// second from any ground site.
type Converter struct {
	In, Out Format
	Stamp   Stamp
	Target  *coord.Equa                // fixed target coordinates
	ExpTime unit.Time                  // exposure duration
	Site    *observation.ParallaxConst // observatory, nil for geocentre

	track func(mjd float64) *coord.Equa
}

// UseArc fits great circle motion through the observations of a and
// uses the fitted position at each timestamp in place of the fixed
// Target, for objects that move appreciably over a time series.
func (c *Converter) UseArc(a *observation.Arc) error {
	if len(a.Obs) < 2 {
		return fmt.Errorf("timeconv: arc %s has %d observations, need at least 2",
			a.Desig, len(a.Obs))
	}
	t := make([]float64, len(a.Obs))
	s := make(coord.EquaS, len(a.Obs))
	for i, o := range a.Obs {
		m := o.Meas()
		t[i] = m.MJD
		s[i] = m.Equa
	}
	c.track = lmfit.New(t, s).Pos
	return nil
}

func (c *Converter) targetAt(mjd float64) coord.Equa {
	if c.track != nil {
		return *c.track(mjd)
	}
	return *c.Target
}

func (c *Converter) stamp() Stamp {
	if c.Stamp == "" {
		return Mid
	}
	return c.Stamp
}

// Validate reports configuration errors: a format outside the
// readable or writable set, an unknown timestamp, or a missing target
// where a light travel correction would be computed.  Convert and
// ConvertISO validate implicitly.  Calling Validate first lets a long
// batch fail before any input is read.
func (c *Converter) Validate() error {
	switch c.In {
	case JDUTC, ISOTUTC, MJDUTC, HJDUTC, BJDTDB:
	default:
		return fmt.Errorf("timeconv: unsupported input format %q", c.In)
	}
	switch c.Out {
	case JDUTC, MJDUTC, MJDTDB, HJDUTC, BJDTDB:
	default:
		return fmt.Errorf("timeconv: unsupported output format %q", c.Out)
	}
	switch c.Stamp {
	case "", Start, Mid, End:
	default:
		return fmt.Errorf("timeconv: unknown timestamp %q", c.Stamp)
	}
	// light travel formats need a direction to project on, except in
	// the equal format mid exposure case, which copies times unchanged
	if c.Target == nil && c.track == nil && !(c.In == c.Out && c.stamp() == Mid) {
		switch {
		case c.In == HJDUTC, c.In == BJDTDB, c.Out == HJDUTC, c.Out == BJDTDB:
			return errors.New("timeconv: light travel correction needs a target, set Target or call UseArc")
		}
	}
	return nil
}

// correction returns the shift to mid exposure, in days.
func (c *Converter) correction() float64 {
	half := c.ExpTime.Day() / 2
	switch c.stamp() {
	case Start:
		return half
	case End:
		return -half
	}
	return 0
}

// Convert converts a batch of numeric times from the In format to the
// Out format.  When the formats already agree and times are already
// mid exposure the input is returned unchanged, as a copy.
func (c *Converter) Convert(times []float64) ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.In == ISOTUTC {
		return nil, errors.New("timeconv: calendar form input needs ConvertISO")
	}
	if c.In == c.Out && c.stamp() == Mid {
		return append([]float64{}, times...), nil
	}
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = c.emit(c.normalize(t) + c.correction())
	}
	return out, nil
}

// ConvertISO converts a batch of calendar form times,
// "2019-03-21T12:34:56.789", interpreted as UTC.
func (c *Converter) ConvertISO(times []string) ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.In != ISOTUTC {
		return nil, fmt.Errorf("timeconv: input format %s is not calendar form", c.In)
	}
	out := make([]float64, len(times))
	for i, s := range times {
		tm, err := time.Parse("2006-01-02T15:04:05", s)
		if err != nil {
			return nil, fmt.Errorf("timeconv: invalid time %q, %v", s, err)
		}
		out[i] = c.emit(julian.TimeToJD(tm) + c.correction())
	}
	return out, nil
}

// normalize reduces an input time to a Julian date, UTC.
func (c *Converter) normalize(t float64) float64 {
	switch c.In {
	case MJDUTC:
		return t + base.JMod
	case HJDUTC:
		return t - c.lttHelio(t)
	case BJDTDB:
		jd := t - c.lttBary(t)
		return jd - tdbMinusUTC(jd)
	}
	return t // jd_utc
}

// emit renders a Julian date, UTC, in the output format.
func (c *Converter) emit(jd float64) float64 {
	switch c.Out {
	case MJDUTC:
		return jd - base.JMod
	case MJDTDB:
		return jd + tdbMinusUTC(jd) - base.JMod
	case HJDUTC:
		return jd + c.lttHelio(jd)
	case BJDTDB:
		return jd + tdbMinusUTC(jd) + c.lttBary(jd)
	}
	return jd // jd_utc
}

// tdbMinusUTC approximates TDB-UTC in days at jd.  ΔT serves for the
// difference: TDB stays within 2 ms of TT, and UT1 within 0.9 s of
// UTC.
func tdbMinusUTC(jd float64) float64 {
	return deltat.PolyAfter2000(base.JDEToJulianYear(jd)).Day()
}
