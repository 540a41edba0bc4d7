// Package dist wraps the distribution draws the engine needs around a
// caller-supplied random source. Normal, exponential, and uniform draws go
// through gonum's distuv; geometric and open-closed uniform sampling are not
// provided by distuv and are implemented here by inversion.
//
// Invalid distribution parameters are programming errors: every sampler
// panics with a diagnostic rather than returning a degenerate value.
package dist

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal draws from Normal(mu, sigma). sigma must be positive.
func Normal(rng *rand.Rand, mu, sigma float64) float64 {
	if !(sigma > 0) {
		panic(fmt.Sprintf("dist: invalid normal std-dev %v (mean %v)", sigma, mu))
	}
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: rng}.Rand()
}

// Exponential draws from Exponential(rate). rate must be positive.
func Exponential(rng *rand.Rand, rate float64) float64 {
	if !(rate > 0) {
		panic(fmt.Sprintf("dist: invalid exponential rate %v", rate))
	}
	return distuv.Exponential{Rate: rate, Src: rng}.Rand()
}

// Uniform draws from Uniform[lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	if !(lo < hi) {
		panic(fmt.Sprintf("dist: invalid uniform bounds [%v, %v)", lo, hi))
	}
	return distuv.Uniform{Min: lo, Max: hi, Src: rng}.Rand()
}

// Geometric draws the number of Bernoulli(p) trials up to and including the
// first success, so the support is {1, 2, ...}. p must lie in (0, 1].
func Geometric(rng *rand.Rand, p float64) int {
	if !(p > 0 && p <= 1) {
		panic(fmt.Sprintf("dist: invalid geometric success probability %v", p))
	}
	if p == 1 {
		return 1
	}
	u := rng.Float64()
	return int(math.Floor(math.Log1p(-u)/math.Log1p(-p))) + 1
}

// OpenClosed01 draws uniformly from the half-open interval (0, 1].
func OpenClosed01(rng *rand.Rand) float64 {
	return 1 - rng.Float64()
}
