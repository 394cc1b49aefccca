// Public domain.

package mcmc

import "fmt"

// serialEval returns a BatchEval running every evaluation on the
// calling goroutine, against the caller's own event.
func serialEval(ev Event, prior Prior, names []string) BatchEval {
	return func(batch [][]float64) []float64 {
		res := make([]float64, len(batch))
		for i, v := range batch {
			res[i] = lnPost(ev, prior, v, names)
		}
		return res
	}
}

type evalJob struct {
	x    []float64
	i    int
	res  []float64
	done chan<- struct{}
}

// parallelEval starts workers goroutines, each owning its own clone of
// ev, and returns a BatchEval spreading each batch over them.  The
// returned stop function releases the goroutines and must be called
// when sampling ends.
func parallelEval(ev Event, prior Prior, names []string, workers int) (BatchEval, func(), error) {
	cl, ok := ev.(Cloner)
	if !ok {
		return nil, nil, fmt.Errorf("mcmc: %d workers requested but event has no Clone method",
			workers)
	}
	jobs := make(chan evalJob)
	for n := 0; n < workers; n++ {
		go func(wev Event) {
			for j := range jobs {
				j.res[j.i] = lnPost(wev, prior, j.x, names)
				j.done <- struct{}{}
			}
		}(cl.Clone())
	}
	eval := func(batch [][]float64) []float64 {
		res := make([]float64, len(batch))
		// buffered so workers drop off results without waiting
		done := make(chan struct{}, len(batch))
		for i, x := range batch {
			jobs <- evalJob{x, i, res, done}
		}
		for range batch {
			<-done
		}
		return res
	}
	return eval, func() { close(jobs) }, nil
}
