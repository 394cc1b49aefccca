// Public domain.

package mcmc

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestFlattenChain(t *testing.T) {
	// 2 walkers, 5 steps, 2 parameters, each value encoding where it
	// came from.
	chain := make([][][]float64, 2)
	lnp := make([][]float64, 2)
	for w := range chain {
		chain[w] = make([][]float64, 5)
		lnp[w] = make([]float64, 5)
		for s := range chain[w] {
			chain[w][s] = []float64{float64(w), float64(s)}
			lnp[w][s] = -float64(10*w + s)
		}
	}
	flat, chi2, err := flattenChain(chain, lnp, 3)
	if err != nil {
		t.Fatal(err)
	}
	// rows are ordered by step, walkers cycling fastest
	want := [][]float64{{0, 3}, {1, 3}, {0, 4}, {1, 4}}
	if len(flat) != len(want) {
		t.Fatal("retained", len(flat), "samples, want", len(want))
	}
	for i, p := range want {
		w, s := int(p[0]), int(p[1])
		switch {
		case flat[i][0] != p[0] || flat[i][1] != p[1]:
			t.Fatal("sample", i, "=", flat[i], "want", p)
		case chi2[i] != -2*lnp[w][s]:
			t.Fatal("sample", i, "chi2 =", chi2[i], "want", -2*lnp[w][s])
		}
	}
	// a burn-in swallowing the whole chain leaves nothing to fit
	if _, _, err = flattenChain(chain, lnp, 5); err == nil {
		t.Fatal("burn-in of 5 of 5 steps accepted")
	}
}

func TestBestSample(t *testing.T) {
	flat := [][]float64{{0}, {1}, {2}, {3}}
	// ties go to the first sample
	best, min := bestSample(flat, []float64{5.0, 1.2, 3.3, 1.2})
	if best[0] != 1 || min != 1.2 {
		t.Fatal("best sample", best, "chi2", min)
	}
}

var percentileTestCases = []struct {
	p, want float64
}{
	{0, 1},
	{16, 2.44},
	{50, 5.5},
	{84, 8.56},
	{100, 10},
	// out of range requests clamp to the extremes
	{-5, 1},
	{-200, 1},
	{150, 10},
}

func TestPercentile(t *testing.T) {
	xs := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	for _, c := range percentileTestCases {
		if got := Percentile(xs, c.p); math.Abs(got-c.want) > 1e-12 {
			t.Fatal("percentile", c.p, "=", got, "want", c.want)
		}
	}
	if xs[0] != 10 {
		t.Fatal("argument reordered")
	}
	if got := Percentile([]float64{3.25}, 84); got != 3.25 {
		t.Fatal("single value percentile", got)
	}
}

type stubEvent struct {
	ll    float64
	last  []float64
	calls int
}

func (e *stubEvent) SetParams(values []float64, names []string) { e.last = values }
func (e *stubEvent) InitParams(names []string) []float64        { return nil }
func (e *stubEvent) LnProb() float64 {
	e.calls++
	return e.ll
}

func TestLnPost(t *testing.T) {
	names := []string{"x"}
	v := []float64{1}
	ev := &stubEvent{ll: -3.25}
	// finite prior and likelihood sum exactly
	got := lnPost(ev, func([]float64, []string) float64 { return .5 }, v, names)
	if got != -2.75 {
		t.Fatal("posterior", got, "want -2.75")
	}
	if len(ev.last) != 1 || ev.last[0] != 1 {
		t.Fatal("trial vector not stored:", ev.last)
	}
	// nil prior contributes nothing
	if got = lnPost(ev, nil, v, names); got != -3.25 {
		t.Fatal("posterior with nil prior", got)
	}
	// a rejecting prior short-circuits the likelihood
	ev.calls = 0
	got = lnPost(ev, func([]float64, []string) float64 { return math.Inf(1) }, v, names)
	if !math.IsInf(got, -1) {
		t.Fatal("rejecting prior gave", got)
	}
	if ev.calls != 0 {
		t.Fatal("likelihood ran on a rejected vector")
	}
	// non-finite likelihoods reject rather than propagate
	for _, bad := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		ev.ll = bad
		if got = lnPost(ev, nil, v, names); !math.IsInf(got, -1) {
			t.Fatal("likelihood", bad, "gave posterior", got)
		}
	}
}

func TestWriteChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.csv")
	names := []string{"t0", "period"}
	flat := [][]float64{
		{2459000.123456789, 1.0 / 3},
		{2459000.125, .3},
	}
	chi2 := []float64{3.7, math.Inf(1)}
	if err := writeChain(path, names, flat, chi2); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatal("read", len(recs), "records, want 3")
	}
	if h := strings.Join(recs[0], ","); h != "t0,period,chi2" {
		t.Fatal("header", h)
	}
	// values survive the round trip exactly, including the Inf
	for i, row := range recs[1:] {
		for j, want := range append(flat[i], chi2[i]) {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				t.Fatal(err)
			}
			if v != want {
				t.Fatal("row", i, "col", j, "read back", v, "want", want)
			}
		}
	}
}
