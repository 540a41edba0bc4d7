package expr

import (
	"math"
	"testing"

	"github.com/symreg-dev/symreg/params"
)

func TestTreeBoundarySubstitutesZero(t *testing.T) {
	// The root itself produces a non-finite value only transiently; the
	// boundary guard covers whatever the root lets through.
	tree := New(NewBinary(Pow, NewConst(10), NewVar()))
	if got := tree.Eval(400); got != 0 {
		t.Errorf("Eval(400) = %v, want 0", got)
	}
	if got := tree.Eval(2); got != 100 {
		t.Errorf("Eval(2) = %v, want 100", got)
	}
}

func TestTreeForwards(t *testing.T) {
	rng := testRNG(10)
	p := params.Default()

	tree := NewRandom(rng, 17, p)
	if tree.Size() != 17 {
		t.Errorf("Size = %d, want 17", tree.Size())
	}
	if tree.Size() != tree.Root().Size() || tree.Depth() != tree.Root().Depth() {
		t.Error("tree does not forward size/depth to its root")
	}
	if tree.String() != tree.Root().String() {
		t.Error("tree does not forward display to its root")
	}

	mutated := tree.Mutate(rng, p)
	checkCaches(t, mutated.Root(), "tree mutate")

	simplified := tree.Simplify()
	if !simplified.Simplify().Equal(simplified) {
		t.Error("tree simplify is not idempotent")
	}
}

func TestTreeFitnessMatchesRoot(t *testing.T) {
	data := [][2]float64{{-2, 4}, {0, 0}, {2, 4}}
	tree := New(NewBinary(Mul, NewVar(), NewVar()))
	if got := tree.Fitness(data); got != 3 {
		t.Errorf("Fitness = %v, want 3 (zero residual plus three nodes)", got)
	}
}

func TestNewRandomGeometricWithinLimit(t *testing.T) {
	rng := testRNG(11)
	p := params.Default()
	p.NewRandomExpressionProb = 0.001 // heavy-tailed sizes

	for i := 0; i < 200; i++ {
		tree := NewRandomGeometric(rng, p)
		if tree.Size() < 1 || tree.Size() > SizeLimit {
			t.Fatalf("geometric tree size %d out of [1, %d]", tree.Size(), SizeLimit)
		}
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	rng := testRNG(12)
	p := params.Default()

	for trial := 0; trial < 100; trial++ {
		n := RandomExpression(rng, 1+rng.Intn(50), p)
		ops, consts := n.Flatten(nil, nil)
		back, err := FromPreorder(ops, consts)
		if err != nil {
			t.Fatalf("FromPreorder: %v", err)
		}
		if !back.Equal(n) {
			t.Fatalf("round trip changed tree: %s -> %s", n, back)
		}
	}
}

func TestFromPreorderRejectsMalformed(t *testing.T) {
	if _, err := FromPreorder([]byte{byte(Add), byte(Var)}, nil); err == nil {
		t.Error("truncated op stream accepted")
	}
	if _, err := FromPreorder([]byte{byte(Const)}, nil); err == nil {
		t.Error("missing constant payload accepted")
	}
	if _, err := FromPreorder([]byte{byte(Var), byte(Var)}, nil); err == nil {
		t.Error("trailing ops accepted")
	}
	if _, err := FromPreorder([]byte{byte(Var)}, []float64{1}); err == nil {
		t.Error("trailing constants accepted")
	}
	if _, err := FromPreorder([]byte{200}, nil); err == nil {
		t.Error("unknown op accepted")
	}
	if _, err := FromPreorder(nil, nil); err == nil {
		t.Error("empty stream accepted")
	}
}

func TestEvalVarIdentity(t *testing.T) {
	v := NewVar()
	for _, x := range []float64{-1e6, -2.5, 0, 1, math.Pi, 1e12} {
		if got := v.Eval(x); got != x {
			t.Errorf("Var.Eval(%v) = %v", x, got)
		}
	}
}
