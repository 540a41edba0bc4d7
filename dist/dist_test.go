package dist

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestGeometricSupport(t *testing.T) {
	rng := testRNG(1)

	for _, p := range []float64{0.05, 0.3, 0.9, 1} {
		for i := 0; i < 1000; i++ {
			if got := Geometric(rng, p); got < 1 {
				t.Fatalf("Geometric(%v) = %d, want >= 1", p, got)
			}
		}
	}
}

func TestGeometricMean(t *testing.T) {
	rng := testRNG(2)

	// Mean of Geometric(p) on {1,2,...} is 1/p.
	const p = 0.1
	var sum float64
	const n = 20000
	for i := 0; i < n; i++ {
		sum += float64(Geometric(rng, p))
	}
	mean := sum / n
	if mean < 9 || mean > 11 {
		t.Errorf("sample mean %v, want about %v", mean, 1/p)
	}
}

func TestOpenClosed01(t *testing.T) {
	rng := testRNG(3)
	for i := 0; i < 10000; i++ {
		u := OpenClosed01(rng)
		if !(u > 0 && u <= 1) {
			t.Fatalf("OpenClosed01 = %v outside (0, 1]", u)
		}
	}
}

func TestNormalMoments(t *testing.T) {
	rng := testRNG(4)

	var sum, sumSq float64
	const n = 20000
	for i := 0; i < n; i++ {
		v := Normal(rng, 2, 0.5)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	if math.Abs(mean-2) > 0.05 {
		t.Errorf("sample mean %v, want about 2", mean)
	}
	if math.Abs(std-0.5) > 0.05 {
		t.Errorf("sample std %v, want about 0.5", std)
	}
}

func TestInvalidParamsPanic(t *testing.T) {
	rng := testRNG(5)

	tests := []struct {
		name string
		fn   func()
	}{
		{"normal zero sigma", func() { Normal(rng, 0, 0) }},
		{"normal negative sigma", func() { Normal(rng, 0, -1) }},
		{"normal NaN sigma", func() { Normal(rng, 0, math.NaN()) }},
		{"exponential zero rate", func() { Exponential(rng, 0) }},
		{"geometric zero prob", func() { Geometric(rng, 0) }},
		{"geometric prob above one", func() { Geometric(rng, 1.5) }},
		{"uniform empty range", func() { Uniform(rng, 1, 1) }},
	}

	for _, tt := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", tt.name)
				}
			}()
			tt.fn()
		}()
	}
}
