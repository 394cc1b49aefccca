// Public domain.

package mcmc

import (
	"time"

	xrand "golang.org/x/exp/rand"
)

// Rand is the source of randomness for walker seeding and sampler
// moves.  It is an interface so the generator can be swapped for a
// fixed-seed one, making runs repeatable for tests and for validating
// ports against each other.  *Rand of golang.org/x/exp/rand and of
// math/rand both satisfy it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
	Intn(n int) int
}

// newRand returns the default generator, seeded from the clock.
func newRand() Rand {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(uint64(time.Now().UnixNano()))
	return rnd
}
