package expr

import (
	"golang.org/x/exp/rand"

	"github.com/symreg-dev/symreg/dist"
	"github.com/symreg-dev/symreg/params"
)

// Tree owns a root node and forwards the node operations. At the tree
// boundary any non-finite evaluation result is replaced by 0.
type Tree struct {
	root *Node
}

// New wraps a root node in a tree.
func New(root *Node) Tree {
	return Tree{root: root}
}

// NewRandom builds a tree of the requested size (capped at SizeLimit).
func NewRandom(rng *rand.Rand, size int, p *params.Params) Tree {
	return New(RandomExpression(rng, size, p))
}

// NewRandomGeometric builds a tree whose size is drawn geometrically with
// the params' NewRandomExpressionProb.
func NewRandomGeometric(rng *rand.Rand, p *params.Params) Tree {
	return NewRandom(rng, dist.Geometric(rng, p.NewRandomExpressionProb), p)
}

// Root returns the root node.
func (t Tree) Root() *Node { return t.root }

// Size returns the total node count.
func (t Tree) Size() int { return t.root.size }

// Depth returns the longest root-to-leaf distance.
func (t Tree) Depth() int { return t.root.depth }

// Eval evaluates at x, substituting 0 for a non-finite result.
func (t Tree) Eval(x float64) float64 {
	return finiteOrZero(t.root.Eval(x))
}

// Mutate returns a mutated copy of the tree.
func (t Tree) Mutate(rng *rand.Rand, p *params.Params) Tree {
	return New(t.root.Mutate(rng, t.root.size, p))
}

// Simplify returns the algebraically simplified tree.
func (t Tree) Simplify() Tree {
	return New(t.root.Simplify())
}

// Fitness scores the tree against the samples; lower is better.
func (t Tree) Fitness(data [][2]float64) float64 {
	return t.root.Fitness(data)
}

// Equal reports structural equality of the two trees.
func (t Tree) Equal(o Tree) bool {
	return t.root.Equal(o.root)
}

func (t Tree) String() string {
	return t.root.String()
}
