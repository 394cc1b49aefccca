// Public domain.

package mcmc

import "math"

// Event is the model-and-data object a Fitter drives.  SetParams
// stores a trial parameter vector on the event, names giving the
// meaning of each element of values.  InitParams returns the starting
// vector in the same order as names, typically a rough fit from some
// other method.  LnProb evaluates the log likelihood of the event's
// data against the last stored parameters.
//
// Implementations may also provide a String method for diagnosing
// failed fits, and must provide Clone to be fitted with Workers > 1.
type Event interface {
	SetParams(values []float64, names []string)
	InitParams(names []string) []float64
	LnProb() float64
}

// Cloner is an optional Event capability.  A Fitter with Workers > 1
// gives each worker goroutine its own clone so that SetParams and
// LnProb never race.  Clones must be deep enough that concurrent
// evaluation is safe.  Shared read-only data may remain shared.
type Cloner interface {
	Clone() Event
}

// Bounds holds closed parameter intervals, keyed by parameter name.
// Parameters without an entry are unconstrained.
type Bounds map[string][2]float64

// A Prior scores a trial parameter vector before the likelihood runs.
// A finite return is added to the log likelihood.  A non-finite return
// rejects the vector without evaluating the likelihood at all.
type Prior func(values []float64, names []string) float64

// FlatPrior returns the default prior over bounds: zero for a vector
// inside every bound, including the end points, and +Inf outside any.
func FlatPrior(bounds Bounds) Prior {
	return func(values []float64, names []string) float64 {
		for i, name := range names {
			if b, ok := bounds[name]; ok {
				if v := values[i]; v < b[0] || v > b[1] {
					return math.Inf(1)
				}
			}
		}
		return 0
	}
}

// lnPost evaluates the log posterior of ev at values.  A non-finite
// prior rejects without calling the likelihood.  A rejected vector
// scores -Inf, as does an Inf or NaN likelihood, so the sampler never
// steps onto it.
func lnPost(ev Event, prior Prior, values []float64, names []string) float64 {
	ev.SetParams(values, names)
	var lp float64
	if prior != nil {
		lp = prior(values, names)
		if !finite(lp) {
			return math.Inf(-1)
		}
	}
	ll := ev.LnProb()
	if !finite(ll) {
		return math.Inf(-1)
	}
	return lp + ll
}

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
