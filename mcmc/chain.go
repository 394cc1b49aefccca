// Public domain.

package mcmc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
)

// flattenChain discards the first burn steps of every walker and
// flattens the rest to one sample row per (walker, step) pair, with
// chi2 as -2 times the log posterior of each row.  Rows are ordered by
// step with walkers cycling fastest within each step, the order a
// column-major reshape of the (walker, step, parameter) cube gives.
func flattenChain(chain [][][]float64, lnp [][]float64, burn int) (flat [][]float64, chi2 []float64, err error) {
	nw := len(chain)
	if nw == 0 {
		return nil, nil, errors.New("mcmc: empty chain")
	}
	steps := len(chain[0])
	if burn < 0 || burn >= steps {
		return nil, nil, fmt.Errorf("mcmc: burn-in %d of a %d step chain leaves no samples",
			burn, steps)
	}
	n := nw * (steps - burn)
	flat = make([][]float64, 0, n)
	chi2 = make([]float64, 0, n)
	for s := burn; s < steps; s++ {
		for w := 0; w < nw; w++ {
			flat = append(flat, chain[w][s])
			chi2 = append(chi2, -2*lnp[w][s])
		}
	}
	return flat, chi2, nil
}

// bestSample returns the first sample attaining the minimum chi-square.
func bestSample(flat [][]float64, chi2 []float64) ([]float64, float64) {
	bx := 0
	for i, c := range chi2[1:] {
		if c < chi2[bx] {
			bx = i + 1
		}
	}
	return flat[bx], chi2[bx]
}

// Percentile returns the pth percentile of the values of xs, which
// must be non-empty.  p is clamped to 0 to 100.  Between order
// statistics the result is linearly interpolated, at fractional rank
// (len(xs)-1)*p/100.  xs is not modified.
func Percentile(xs []float64, p float64) float64 {
	switch {
	case p < 0:
		p = 0
	case p > 100:
		p = 100
	}
	s := append([]float64{}, xs...)
	sort.Float64s(s)
	whole, frac := math.Modf(float64(len(s)-1) * p / 100)
	i := int(whole)
	if i+1 >= len(s) {
		return s[len(s)-1]
	}
	return s[i] + frac*(s[i+1]-s[i])
}

// writeChain writes the flattened chain to path as CSV: a header of
// the parameter names plus chi2, then one row per sample.  Values are
// formatted shortest round-trip, so a reader recovers them exactly.
func writeChain(path string, names []string, flat [][]float64, chi2 []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	rec := append(append(make([]string, 0, len(names)+1), names...), "chi2")
	err = w.Write(rec)
	for i, row := range flat {
		if err != nil {
			break
		}
		rec = rec[:0]
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		rec = append(rec, strconv.FormatFloat(chi2[i], 'g', -1, 64))
		err = w.Write(rec)
	}
	if err == nil {
		w.Flush()
		err = w.Error()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
