// Public domain.

package mcmc

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// BatchEval evaluates the log posterior at a batch of parameter
// vectors, one result per vector, in order.  Fit supplies samplers
// with an implementation spreading the batch over its workers.
type BatchEval func(batch [][]float64) []float64

// A Sampler generates a Markov chain over parameter space.  From the
// initial walker positions pos, indexed [walker][parameter], it runs
// the given number of steps and returns every stored position as
// chain, indexed [walker][step][parameter], with the log posterior of
// each stored position in lnp, indexed [walker][step].  The initial
// positions themselves are not stored.  Progress may be nil.
type Sampler interface {
	Sample(eval BatchEval, pos [][]float64, steps int, rnd Rand,
		progress io.Writer) (chain [][][]float64, lnp [][]float64, err error)
}

// EnsembleSampler is the default Sampler: the affine invariant
// ensemble stretch move of Goodman and Weare (2010).  Each walker is
// proposed along the line through its position and that of a walker
// drawn from the complementary half of the ensemble, so the proposal
// scale adapts to the shape of the posterior without tuning.
type EnsembleSampler struct {
	// A is the stretch scale parameter.  Zero means 2, the standard
	// choice.
	A float64
}

func (s *EnsembleSampler) Sample(eval BatchEval, pos [][]float64,
	steps int, rnd Rand, progress io.Writer) ([][][]float64, [][]float64, error) {
	nw := len(pos)
	if nw < 2 {
		return nil, nil, fmt.Errorf("mcmc: ensemble of %d, need at least 2 walkers", nw)
	}
	ndim := len(pos[0])
	for _, p := range pos {
		if len(p) != ndim {
			return nil, nil, errors.New("mcmc: ragged walker positions")
		}
	}
	a := s.A
	if a == 0 {
		a = 2
	}

	// working state.  positions copied so caller slices stay untouched.
	cur := make([][]float64, nw)
	for i, p := range pos {
		cur[i] = append([]float64{}, p...)
	}
	curLnp := eval(cur)

	chain := make([][][]float64, nw)
	lnp := make([][]float64, nw)
	for i := range chain {
		chain[i] = make([][]float64, steps)
		lnp[i] = make([]float64, steps)
	}

	half := nw / 2
	prop := make([][]float64, 0, nw-half)
	zs := make([]float64, 0, nw-half)
	moving := make([]int, 0, nw-half)
	dotEvery := steps / 50
	if dotEvery == 0 {
		dotEvery = 1
	}
	var nl bool
	for step := 0; step < steps; step++ {
		// the halves move in turn.  a moving walker stretches against
		// a partner from the other half, which stays fixed during the
		// half update.
		for _, h := range [2][2]int{{0, half}, {half, nw}} {
			lo, hi := h[0], h[1]
			clo, chi := 0, half
			if lo == 0 {
				clo, chi = half, nw
			}
			prop, zs, moving = prop[:0], zs[:0], moving[:0]
			for k := lo; k < hi; k++ {
				z := (a-1)*rnd.Float64() + 1
				z = z * z / a
				c := cur[clo+rnd.Intn(chi-clo)]
				y := make([]float64, ndim)
				for d := range y {
					y[d] = c[d] + z*(cur[k][d]-c[d])
				}
				prop = append(prop, y)
				zs = append(zs, z)
				moving = append(moving, k)
			}
			propLnp := eval(prop)
			for i, k := range moving {
				// acceptance includes the z^(ndim-1) volume factor of
				// the stretch move.  a NaN difference, from -Inf
				// against -Inf, compares false and so rejects.
				d := float64(ndim-1)*math.Log(zs[i]) + propLnp[i] - curLnp[k]
				if d > math.Log(rnd.Float64()) {
					cur[k] = prop[i]
					curLnp[k] = propLnp[i]
				}
			}
		}
		for k := 0; k < nw; k++ {
			chain[k][step] = append([]float64{}, cur[k]...)
			lnp[k][step] = curLnp[k]
		}
		if progress != nil && (step+1)%dotEvery == 0 {
			fmt.Fprint(progress, ".")
			nl = true
		}
	}
	if nl {
		fmt.Fprintln(progress)
	}
	return chain, lnp, nil
}
