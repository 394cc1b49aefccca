// Public domain.

package timeconv

import (
	"math"

	"github.com/soniakeys/astro"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/observation"
	"github.com/soniakeys/unit"
)

// lttHelio returns the light travel time in days from the observer to
// the heliocentre along the target direction at jd.  Positive when the
// observer is on the target side of the sun.
func (c *Converter) lttHelio(jd float64) float64 {
	mjd := jd - base.JMod
	r := c.helioObserver(mjd)
	n := unitVect(c.targetAt(mjd))
	return base.LightTime(r.Dot(&n))
}

// lttBary is lttHelio referred to the solar system barycentre.
func (c *Converter) lttBary(jd float64) float64 {
	mjd := jd - base.JMod
	r := c.helioObserver(mjd)
	s := sunSSB(mjd)
	r.Add(&r, &s)
	n := unitVect(c.targetAt(mjd))
	return base.LightTime(r.Dot(&n))
}

// helioObserver computes the observer's heliocentric position,
// equatorial J2000, AU.
func (c *Converter) helioObserver(mjd float64) coord.Cart {
	sunEarth, _, _ := astro.Se2000(mjd)
	var site coord.Cart
	if c.Site != nil {
		so := observation.SiteObs{
			VMeas: observation.VMeas{MJD: mjd},
			Par:   c.Site,
		}
		site = so.EarthObserverVect()
	}
	var r coord.Cart
	r.Sub(&site, &sunEarth)
	return r
}

// unitVect returns the unit vector toward equatorial coordinates eq.
func unitVect(eq coord.Equa) coord.Cart {
	sd, cd := math.Sincos(eq.Dec.Rad())
	sa, ca := math.Sincos(unit.Angle(eq.RA).Rad())
	return coord.Cart{X: ca * cd, Y: sa * cd, Z: sd}
}

// Mean orbital elements of the four giant planets on the J2000
// ecliptic, from the JPL approximate-position tables: AU and degrees
// at epoch J2000, the mean longitude rate in degrees per Julian
// century, and the sun/planet mass ratio.  Only the mean longitudes
// move fast enough to need rates at this accuracy.  The inner planets
// shift the barycentre by under a millisecond of light travel and are
// left out.
var giants = []planet{
	{5.20288700, .04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		3034.74612775, 1047.3486},
	{9.53667594, .05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		1222.49362201, 3497.898},
	{19.18916464, .04725744, .77263783, 313.23810451, 170.95427630, 74.01692503,
		428.48202785, 22902.98},
	{30.06992276, .00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		218.45945325, 19412.24},
}

type planet struct {
	a, e, i, l, lp, om float64 // elements at J2000
	dl                 float64 // mean longitude rate, degrees/century
	massRatio          float64 // sun mass over planet mass
}

// position computes the heliocentric equatorial position of p in AU at
// t Julian centuries from J2000, given the sine and cosine of the
// obliquity.
func (p *planet) position(t, soe, coe float64) coord.Cart {
	m := (p.l - p.lp + p.dl*t) * math.Pi / 180 // mean anomaly
	sm, cm := math.Sincos(m)
	s2m, c2m := math.Sincos(2 * m)
	// equation of center and radius to order e squared
	v := m + 2*p.e*sm + 1.25*p.e*p.e*s2m // true anomaly
	r := p.a * (1 + p.e*p.e*.5 - p.e*cm - p.e*p.e*.5*c2m)
	lam := v + p.lp*math.Pi/180 // true longitude
	beta := p.i * math.Pi / 180 * math.Sin(lam-p.om*math.Pi/180)
	sl, cl := math.Sincos(lam)
	sb, cb := math.Sincos(beta)
	ec := coord.Cart{X: r * cb * cl, Y: r * cb * sl, Z: r * sb}
	ec.RotateX(&ec, -soe, coe) // ecliptic to equatorial
	return ec
}

// sunSSB returns the position of the sun relative to the solar system
// barycentre, equatorial J2000, AU.
func sunSSB(mjd float64) coord.Cart {
	d := mjd - 51544.5
	t := d / 36525
	e := (23.439 - .00000036*d) * math.Pi / 180 // obliquity of ecliptic
	soe, coe := math.Sincos(e)
	var s coord.Cart
	for i := range giants {
		p := &giants[i]
		v := p.position(t, soe, coe)
		f := 1 / (p.massRatio + 1)
		s.X -= v.X * f
		s.Y -= v.Y * f
		s.Z -= v.Z * f
	}
	return s
}
