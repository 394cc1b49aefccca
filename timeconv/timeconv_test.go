// Public domain.

package timeconv_test

import (
	"math"
	"testing"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/observation"
	"github.com/soniakeys/unit"

	"tsfit/timeconv"
)

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{
		"jd_utc", "isot_utc", "mjd_utc", "mjd_tdb", "hjd_utc", "bjd_tdb",
	} {
		f, err := timeconv.ParseFormat(ok)
		if err != nil {
			t.Fatalf("ParseFormat(%s): %v", ok, err)
		}
		if string(f) != ok {
			t.Fatalf("ParseFormat(%s) = %s", ok, f)
		}
	}
	if _, err := timeconv.ParseFormat("utc"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if s, err := timeconv.ParseStamp("end"); err != nil || s != timeconv.End {
		t.Fatalf("ParseStamp(end) = %v, %v", s, err)
	}
	if _, err := timeconv.ParseStamp("middle"); err == nil {
		t.Fatal("expected error for unknown timestamp")
	}
}

func TestConvertErrors(t *testing.T) {
	c := timeconv.Converter{In: timeconv.MJDTDB, Out: timeconv.JDUTC}
	if _, err := c.Convert([]float64{51544.5}); err == nil {
		t.Fatal("mjd_tdb input should be rejected")
	}

	c = timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.ISOTUTC}
	if _, err := c.Convert([]float64{2451545}); err == nil {
		t.Fatal("isot_utc output should be rejected")
	}

	c = timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.JDUTC, Stamp: "middle"}
	if _, err := c.Convert([]float64{2451545}); err == nil {
		t.Fatal("unknown timestamp should be rejected")
	}

	c = timeconv.Converter{In: timeconv.ISOTUTC, Out: timeconv.JDUTC}
	if _, err := c.Convert([]float64{2451545}); err == nil {
		t.Fatal("numeric Convert should reject calendar input")
	}

	c = timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.MJDUTC}
	if _, err := c.ConvertISO([]string{"2000-01-01T12:00:00"}); err == nil {
		t.Fatal("ConvertISO should reject numeric input format")
	}

	c = timeconv.Converter{In: timeconv.ISOTUTC, Out: timeconv.MJDUTC}
	if _, err := c.ConvertISO([]string{"2000-01-01 12:00:00"}); err == nil {
		t.Fatal("expected parse error for malformed time")
	}
}

func TestTargetRequired(t *testing.T) {
	// conversions that evaluate a light travel term are rejected when
	// neither Target nor UseArc supplied a direction
	for _, c := range []timeconv.Converter{
		{In: timeconv.JDUTC, Out: timeconv.HJDUTC},
		{In: timeconv.JDUTC, Out: timeconv.BJDTDB},
		{In: timeconv.BJDTDB, Out: timeconv.JDUTC},
		{In: timeconv.BJDTDB, Out: timeconv.BJDTDB,
			Stamp: timeconv.Start, ExpTime: unit.Time(60)},
	} {
		if err := c.Validate(); err == nil {
			t.Fatalf("%s to %s validated without a target", c.In, c.Out)
		}
		if _, err := c.Convert([]float64{2455197.5}); err == nil {
			t.Fatalf("%s to %s converted without a target", c.In, c.Out)
		}
	}
	iso := timeconv.Converter{In: timeconv.ISOTUTC, Out: timeconv.BJDTDB}
	if _, err := iso.ConvertISO([]string{"2010-01-01T00:00:00"}); err == nil {
		t.Fatal("calendar input converted to bjd_tdb without a target")
	}
	// a target restores the conversion
	ok := timeconv.Converter{
		In:     timeconv.JDUTC,
		Out:    timeconv.HJDUTC,
		Target: &coord.Equa{Dec: unit.Angle(.5)},
	}
	if err := ok.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestMJDJD(t *testing.T) {
	c := timeconv.Converter{In: timeconv.MJDUTC, Out: timeconv.JDUTC}
	got, err := c.Convert([]float64{51544.5, 55197})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2451545, 2455197.5}
	for i, g := range got {
		if g != want[i] {
			t.Fatalf("got %v, want %v", g, want[i])
		}
	}
	c = timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.MJDUTC}
	got, err = c.Convert(want)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 51544.5 || got[1] != 55197 {
		t.Fatalf("got %v, want mjd back", got)
	}
}

func TestNoOpCopy(t *testing.T) {
	c := timeconv.Converter{
		In:      timeconv.BJDTDB,
		Out:     timeconv.BJDTDB,
		ExpTime: unit.Time(300),
	}
	in := []float64{2455197.5, 2455198.5}
	got, err := c.Convert(in)
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range got {
		if g != in[i] {
			t.Fatalf("same format and mid exposure should pass times through, got %v", g)
		}
	}
	got[0]++
	if in[0] != 2455197.5 {
		t.Fatal("Convert should return a copy")
	}
}

func TestExposureStamp(t *testing.T) {
	half := unit.Time(120).Day() / 2
	for _, tc := range []struct {
		stamp timeconv.Stamp
		want  float64
	}{
		{timeconv.Start, 2455197.5 + half},
		{timeconv.Mid, 2455197.5},
		{timeconv.End, 2455197.5 - half},
		{"", 2455197.5},
	} {
		c := timeconv.Converter{
			In:      timeconv.JDUTC,
			Out:     timeconv.JDUTC,
			Stamp:   tc.stamp,
			ExpTime: unit.Time(120),
		}
		got, err := c.Convert([]float64{2455197.5})
		if err != nil {
			t.Fatal(tc.stamp, err)
		}
		if math.Abs(got[0]-tc.want) > 1e-12 {
			t.Fatalf("stamp %s: got %.12f, want %.12f", tc.stamp, got[0], tc.want)
		}
	}
}

func TestCalendarInput(t *testing.T) {
	c := timeconv.Converter{In: timeconv.ISOTUTC, Out: timeconv.JDUTC}
	got, err := c.ConvertISO([]string{
		"2000-01-01T12:00:00",
		"2010-01-01T00:00:00.000",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2451545, 2455197.5}
	for i, g := range got {
		if math.Abs(g-want[i]) > 1e-9 {
			t.Fatalf("got %.9f, want %.9f", g, want[i])
		}
	}
}

func TestTDBOffset(t *testing.T) {
	c := timeconv.Converter{In: timeconv.MJDUTC, Out: timeconv.MJDTDB}
	got, err := c.Convert([]float64{55197})
	if err != nil {
		t.Fatal(err)
	}
	dt := (got[0] - 55197) * 86400
	if dt < 50 || dt > 100 {
		t.Fatalf("TDB-UTC at 2010 = %.1f s, want tens of seconds", dt)
	}
}

func TestHelioEclipticPole(t *testing.T) {
	// the heliocentric observer vector has no component toward the
	// ecliptic pole, so the correction vanishes there
	pole := coord.Equa{
		RA:  unit.RA(270 * math.Pi / 180),
		Dec: unit.Angle((90 - 23.439) * math.Pi / 180),
	}
	c := timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.HJDUTC, Target: &pole}
	got, err := c.Convert([]float64{2451545})
	if err != nil {
		t.Fatal(err)
	}
	if ltt := got[0] - 2451545; math.Abs(ltt) > 1e-9 {
		t.Fatalf("light travel toward ecliptic pole = %g days, want 0", ltt)
	}
}

func TestLightTravelBounds(t *testing.T) {
	tgt := coord.Equa{
		RA:  unit.RA(82.5 * math.Pi / 180),
		Dec: unit.Angle(-10 * math.Pi / 180),
	}
	cH := timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.HJDUTC, Target: &tgt}
	cB := timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.BJDTDB, Target: &tgt}
	cT := timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.MJDTDB}
	for jd := 2455197.5; jd < 2455563; jd += 30.5 {
		h, err := cH.Convert([]float64{jd})
		if err != nil {
			t.Fatal(err)
		}
		b, err := cB.Convert([]float64{jd})
		if err != nil {
			t.Fatal(err)
		}
		m, err := cT.Convert([]float64{jd})
		if err != nil {
			t.Fatal(err)
		}
		if lttH := h[0] - jd; math.Abs(lttH) > .006 {
			t.Fatalf("heliocentric correction %g days at %f exceeds light travel to the sun",
				lttH, jd)
		}
		// after removing TDB-UTC, BJD and HJD differ by the projected
		// sun-barycentre offset, at most six light seconds
		dt := m[0] + 2400000.5 - jd
		bary := b[0] - dt - h[0]
		if bary == 0 || math.Abs(bary) > 8e-5 {
			t.Fatalf("barycentre offset %g days at %f", bary, jd)
		}
	}
}

func TestRoundTrips(t *testing.T) {
	tgt := coord.Equa{
		RA:  unit.RA(243.2982083 * math.Pi / 180),
		Dec: unit.Angle(20.87325 * math.Pi / 180),
	}
	site := &observation.ParallaxConst{
		Longitude: .675,
		RhoCosPhi: 3.57e-5,
		RhoSinPhi: 2.33e-5,
	}
	for _, f := range []timeconv.Format{timeconv.HJDUTC, timeconv.BJDTDB} {
		fwd := timeconv.Converter{In: timeconv.JDUTC, Out: f, Target: &tgt, Site: site}
		back := timeconv.Converter{In: f, Out: timeconv.JDUTC, Target: &tgt, Site: site}
		in := []float64{2455197.5, 2455300.25}
		out, err := fwd.Convert(in)
		if err != nil {
			t.Fatal(f, err)
		}
		rt, err := back.Convert(out)
		if err != nil {
			t.Fatal(f, err)
		}
		for i := range in {
			if math.Abs(rt[i]-in[i]) > 2e-6 {
				t.Fatalf("%s round trip drifted %g days", f, rt[i]-in[i])
			}
		}
	}
}

func TestSiteOffset(t *testing.T) {
	tgt := coord.Equa{Dec: unit.Angle(45 * math.Pi / 180)}
	geo := timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.HJDUTC, Target: &tgt}
	obs := geo
	obs.Site = &observation.ParallaxConst{
		Longitude: .25,
		RhoCosPhi: 3e-5,
		RhoSinPhi: 3e-5,
	}
	g, err := geo.Convert([]float64{2455197.5})
	if err != nil {
		t.Fatal(err)
	}
	s, err := obs.Convert([]float64{2455197.5})
	if err != nil {
		t.Fatal(err)
	}
	if d := s[0] - g[0]; d == 0 || math.Abs(d) > 5e-7 {
		t.Fatalf("site displacement changed the correction by %g days, want under .05 s", d)
	}
}

func TestUseArc(t *testing.T) {
	if err := new(timeconv.Converter).UseArc(&observation.Arc{Desig: "X1"}); err == nil {
		t.Fatal("expected error for arc without observations")
	}
	p0 := coord.Equa{RA: unit.RA(.2), Dec: unit.Angle(.1)}
	p1 := coord.Equa{RA: unit.RA(.21), Dec: unit.Angle(.11)}
	arc := &observation.Arc{Desig: "C1", Obs: []observation.VObs{
		&observation.SiteObs{VMeas: observation.VMeas{MJD: 55000, Equa: p0}},
		&observation.SiteObs{VMeas: observation.VMeas{MJD: 55010, Equa: p1}},
	}}
	tr := timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.HJDUTC}
	if err := tr.UseArc(arc); err != nil {
		t.Fatal(err)
	}
	// the fitted great circle passes through both observed positions,
	// so at the observed epochs tracking must match a fixed target
	for _, e := range []struct {
		mjd float64
		p   coord.Equa
	}{
		{55000, p0},
		{55010, p1},
	} {
		fix := timeconv.Converter{In: timeconv.JDUTC, Out: timeconv.HJDUTC, Target: &e.p}
		jd := []float64{e.mjd + 2400000.5}
		got, err := tr.Convert(jd)
		if err != nil {
			t.Fatal(err)
		}
		want, err := fix.Convert(jd)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got[0]-want[0]) > 1e-9 {
			t.Fatalf("tracked position at %f gave %.12f, fixed target gave %.12f",
				e.mjd, got[0], want[0])
		}
	}
}
