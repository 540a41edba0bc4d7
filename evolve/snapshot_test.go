package evolve

import (
	"math"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	e, err := New(lineData(math.Sin, -3, 3), nil, 41)
	if err != nil {
		t.Fatal(err)
	}
	e.Step(300)

	buf := e.Snapshot()
	snap, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if !snap.Tree.Equal(e.BestTree()) {
		t.Errorf("decoded tree %s, want %s", snap.Tree, e.BestTree())
	}
	if snap.Fitness != e.BestFitness() {
		t.Errorf("decoded fitness %v, want %v", snap.Fitness, e.BestFitness())
	}
	if snap.Params != e.Params() {
		t.Errorf("decoded params %+v, want %+v", snap.Params, e.Params())
	}
	if snap.Generations != e.Generation() {
		t.Errorf("decoded generations %d, want %d", snap.Generations, e.Generation())
	}
	if snap.ItersToBest != e.ItersToBest() {
		t.Errorf("decoded iters-to-best %d, want %d", snap.ItersToBest, e.ItersToBest())
	}

	// The decoded tree must behave like the original, not just look like it.
	for x := -5.0; x <= 5.0; x++ {
		if snap.Tree.Eval(x) != e.BestEval(x) {
			t.Fatalf("decoded tree diverges at x=%v", x)
		}
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot(nil); err == nil {
		t.Error("nil buffer accepted")
	}
	if _, err := DecodeSnapshot([]byte{1, 2}); err == nil {
		t.Error("short buffer accepted")
	}
}
