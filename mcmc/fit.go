// Public domain.

// Package mcmc fits model parameters to observed data by Markov chain
// Monte Carlo sampling.
//
// The caller supplies an Event, an object bundling data and model that
// can score a trial parameter vector with a log likelihood.  A Fitter
// seeds an ensemble of walkers around the event's starting vector, runs
// an affine-invariant ensemble sampler over the posterior, discards a
// burn-in phase, and summarizes the surviving samples: the minimum
// chi-square sample as the best fit and the 16th and 84th percentile of
// each parameter as an asymmetric one sigma band.  The flattened chain
// can be written as CSV for later inspection.
package mcmc

import (
	"errors"
	"fmt"
	"io"
)

// Default sampling configuration, used by NewFitter.
const (
	DefaultWalkers = 100
	DefaultBurnIn  = 1000
	DefaultSteps   = 1000
)

// A Fitter holds sampling configuration for fitting events.
// The zero value is not usable directly, NewFitter supplies defaults.
// A single Fitter may be reused to fit any number of events.
type Fitter struct {
	// Bounds constrains parameters by name.  Used by the default flat
	// prior.  Parameters without an entry are unconstrained.
	Bounds Bounds

	// Prior, if non-nil, replaces the flat prior built from Bounds.
	Prior Prior

	// Walkers is the ensemble size.  At least two, and more than the
	// parameter count for the sampler to move well.
	Walkers int

	// BurnIn and Steps split the run: BurnIn+Steps iterations are
	// sampled, the first BurnIn of them discarded from the results.
	BurnIn int
	Steps  int

	// Workers > 1 spreads log posterior evaluations within each step
	// over that many goroutines.  The event must then implement Cloner.
	// Sampling results are identical for any worker count.
	Workers int

	// Rand, if non-nil, replaces the clock-seeded default generator.
	// Fixing it makes runs repeatable.
	Rand Rand

	// Sampler, if non-nil, replaces the default EnsembleSampler.
	Sampler Sampler

	// Progress, if non-nil, receives progress dots during sampling,
	// preceded by the event's String if it has one.
	Progress io.Writer
}

// NewFitter returns a Fitter with default sampling configuration and
// the passed parameter bounds.  Bounds may be nil for an unconstrained
// fit.
func NewFitter(bounds Bounds) *Fitter {
	return &Fitter{
		Bounds:  bounds,
		Walkers: DefaultWalkers,
		BurnIn:  DefaultBurnIn,
		Steps:   DefaultSteps,
		Workers: 1,
	}
}

// Result is the summary of a fitted chain.
type Result struct {
	Names   []string  // parameter names, as passed to Fit
	Best    []float64 // retained sample with minimum chi-square
	P16     []float64 // 16th percentile of each parameter
	P84     []float64 // 84th percentile of each parameter
	MinChi2 float64   // chi-square of Best
}

// Fit samples the posterior of ev over the named parameters and
// summarizes the chain.
//
// The ensemble starts clustered on the event's initial vector, each
// parameter of each walker offset by .1 times a standard normal draw,
// except the last walker which starts exactly on the initial vector.
// After sampling, the first BurnIn steps of every walker are dropped
// and the rest flattened to one sample per walker per step.  Chi-square
// of a sample is -2 times its log posterior.
//
// If chainPath is non-empty the flattened chain is written there as
// CSV, a column per parameter plus a chi2 column.
//
// Fit validates its configuration and returns a descriptive error
// before sampling if it cannot proceed.  A panicking event is not
// recovered.
func (f *Fitter) Fit(ev Event, names []string, chainPath string) (*Result, error) {
	ndim := len(names)
	if ndim == 0 {
		return nil, errors.New("mcmc: no parameters to fit")
	}
	if f.Walkers < 2 {
		return nil, fmt.Errorf("mcmc: %d walkers, need at least 2", f.Walkers)
	}
	if f.BurnIn < 0 || f.Steps < 1 {
		return nil, fmt.Errorf("mcmc: invalid run length, burn-in %d, steps %d",
			f.BurnIn, f.Steps)
	}
	if f.Workers < 1 {
		return nil, fmt.Errorf("mcmc: %d workers", f.Workers)
	}
	init := ev.InitParams(names)
	if len(init) != ndim {
		return nil, fmt.Errorf("mcmc: event initial vector has %d values for %d parameters",
			len(init), ndim)
	}
	rnd := f.Rand
	if rnd == nil {
		rnd = newRand()
	}
	prior := f.Prior
	if prior == nil {
		prior = FlatPrior(f.Bounds)
	}

	// seed the ensemble.  walkers cluster on the initial vector, the
	// last walker sits exactly on it so the starting point is always
	// among the sampled positions.
	pos := make([][]float64, f.Walkers)
	for i := 0; i < f.Walkers-1; i++ {
		p := make([]float64, ndim)
		for d, v := range init {
			p[d] = v + .1*rnd.NormFloat64()
		}
		pos[i] = p
	}
	pos[f.Walkers-1] = append([]float64{}, init...)

	eval := serialEval(ev, prior, names)
	if f.Workers > 1 {
		pe, stop, err := parallelEval(ev, prior, names, f.Workers)
		if err != nil {
			return nil, err
		}
		defer stop()
		eval = pe
	}
	if f.Progress != nil {
		if s, ok := ev.(fmt.Stringer); ok {
			fmt.Fprintln(f.Progress, "fitting", s)
		}
	}
	smp := f.Sampler
	if smp == nil {
		smp = &EnsembleSampler{}
	}
	chain, lnp, err := smp.Sample(eval, pos, f.BurnIn+f.Steps, rnd, f.Progress)
	if err != nil {
		return nil, err
	}

	flat, chi2, err := flattenChain(chain, lnp, f.BurnIn)
	if err != nil {
		return nil, err
	}
	if chainPath != "" {
		if err := writeChain(chainPath, names, flat, chi2); err != nil {
			return nil, err
		}
	}
	best, minChi2 := bestSample(flat, chi2)
	r := &Result{
		Names:   names,
		Best:    best,
		P16:     make([]float64, ndim),
		P84:     make([]float64, ndim),
		MinChi2: minChi2,
	}
	col := make([]float64, len(flat))
	for d := 0; d < ndim; d++ {
		for i, row := range flat {
			col[i] = row[d]
		}
		r.P16[d] = Percentile(col, 16)
		r.P84[d] = Percentile(col, 84)
	}
	return r, nil
}

// Report writes a short human readable summary of r: the minimum
// chi-square, then each parameter's best value with offsets up to the
// 84th and down to the 16th percentile.
func (r *Result) Report(w io.Writer) {
	fmt.Fprintf(w, "Best chi2: %g\n", r.MinChi2)
	fmt.Fprintln(w, "Best parameters:")
	for i, name := range r.Names {
		fmt.Fprintf(w, "%s = %.6f +%.6f -%.6f\n",
			name, r.Best[i], r.P84[i]-r.Best[i], r.Best[i]-r.P16[i])
	}
}
