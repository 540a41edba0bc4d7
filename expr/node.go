// Package expr implements the expression tree model for single-variable
// symbolic regression: a tagged recursive node with cached size and depth,
// safe evaluation, probabilistic size-aware mutation, and a single-pass
// algebraic simplifier.
//
// Nodes are immutable after construction. Every mutating operation returns a
// new node; unchanged subtrees may be shared structurally.
package expr

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/symreg-dev/symreg/dist"
	"github.com/symreg-dev/symreg/params"
)

// SizeLimit is the hard cap on the number of nodes in any expression tree.
const SizeLimit = 512

// Op identifies the operator of a node.
type Op byte

const (
	Add Op = iota
	Mul
	Pow
	Log
	Sin
	Var
	Const
)

// Arity returns the number of children an operator takes.
func (op Op) Arity() int {
	switch op {
	case Add, Mul, Pow, Log:
		return 2
	case Sin:
		return 1
	case Var, Const:
		return 0
	}
	panic(fmt.Sprintf("expr: unknown op %d", op))
}

func (op Op) String() string {
	switch op {
	case Add:
		return "add"
	case Mul:
		return "mul"
	case Pow:
		return "pow"
	case Log:
		return "log"
	case Sin:
		return "sin"
	case Var:
		return "var"
	case Const:
		return "const"
	}
	return fmt.Sprintf("op(%d)", byte(op))
}

// Node is one operator in an expression tree. Size and depth are established
// at construction and never drift from the actual subtree shape.
type Node struct {
	op       Op
	value    float64 // constant payload, meaningful only when op == Const
	size     int
	depth    int
	children []*Node
}

// NewBinary builds a binary node. op must have arity 2.
func NewBinary(op Op, a, b *Node) *Node {
	if op.Arity() != 2 {
		panic(fmt.Sprintf("expr: %v is not binary", op))
	}
	return &Node{
		op:       op,
		size:     a.size + b.size + 1,
		depth:    maxInt(a.depth, b.depth) + 1,
		children: []*Node{a, b},
	}
}

// NewUnary builds a unary node. op must have arity 1.
func NewUnary(op Op, a *Node) *Node {
	if op.Arity() != 1 {
		panic(fmt.Sprintf("expr: %v is not unary", op))
	}
	return &Node{
		op:       op,
		size:     a.size + 1,
		depth:    a.depth + 1,
		children: []*Node{a},
	}
}

// NewVar builds a leaf referencing the independent variable x.
func NewVar() *Node {
	return &Node{op: Var, size: 1, depth: 1}
}

// NewConst builds a constant leaf.
func NewConst(v float64) *Node {
	return &Node{op: Const, value: v, size: 1, depth: 1}
}

// Op returns the node's operator.
func (n *Node) Op() Op { return n.op }

// Value returns the constant payload; meaningful only when Op() == Const.
func (n *Node) Value() float64 { return n.value }

// Size returns the total number of nodes in the subtree.
func (n *Node) Size() int { return n.size }

// Depth returns the longest root-to-leaf distance; leaves have depth 1.
func (n *Node) Depth() int { return n.depth }

// Children returns the node's children. The returned slice must not be
// modified.
func (n *Node) Children() []*Node { return n.children }

// Eval evaluates the subtree at x. A non-finite result is replaced by 0 at
// the node that produced it, so expressions degrade instead of propagating
// NaN.
func (n *Node) Eval(x float64) float64 {
	var r float64
	switch n.op {
	case Add:
		r = n.children[0].Eval(x) + n.children[1].Eval(x)
	case Mul:
		r = n.children[0].Eval(x) * n.children[1].Eval(x)
	case Pow:
		r = math.Pow(n.children[0].Eval(x), n.children[1].Eval(x))
	case Log:
		// log base a of b
		r = math.Log(n.children[1].Eval(x)) / math.Log(n.children[0].Eval(x))
	case Sin:
		r = math.Sin(n.children[0].Eval(x))
	case Var:
		r = x
	case Const:
		r = n.value
	}
	return finiteOrZero(r)
}

// Jitter perturbs only this node, recursing into children with Mutate (which
// may replace them wholesale). treeSize is the size of the enclosing tree.
func (n *Node) Jitter(rng *rand.Rand, treeSize int, p *params.Params) *Node {
	switch n.op {
	case Add, Mul:
		return NewBinary(n.op,
			n.children[0].Mutate(rng, treeSize, p),
			n.children[1].Mutate(rng, treeSize, p))
	case Pow, Log:
		a := n.children[0].Mutate(rng, treeSize, p)
		b := n.children[1].Mutate(rng, treeSize, p)
		if rng.Float64() < p.BinarySwitchProb {
			a, b = b, a
		}
		return NewBinary(n.op, a, b)
	case Sin:
		return NewUnary(Sin, n.children[0].Mutate(rng, treeSize, p))
	case Var:
		return n
	case Const:
		if rng.Float64() < p.ConstMutationProb {
			c := math.Max(math.Abs(n.value), 0.0001)
			return NewConst(n.value + dist.Normal(rng, 0, c/p.ConstJitterFactor))
		}
		return n
	}
	panic(fmt.Sprintf("expr: unknown op %d", n.op))
}

// Mutate either replaces the whole subtree with a fresh random expression or
// jitters it. Replacement probability decays exponentially in the subtree
// size; a replacement's size is drawn geometrically around the replaced size
// and clamped to the remaining budget. Replacement is suppressed once the
// enclosing tree has reached SizeLimit.
func (n *Node) Mutate(rng *rand.Rand, treeSize int, p *params.Params) *Node {
	if treeSize < SizeLimit && rng.Float64() < math.Pow(p.MutateReplaceRate, -float64(n.size)) {
		size := dist.Geometric(rng, 1/float64(n.size+1))
		if budget := SizeLimit - n.size; size > budget {
			size = budget
		}
		return RandomExpression(rng, size, p)
	}
	return n.Jitter(rng, treeSize, p)
}

// Fitness is the sum of absolute residuals over the samples plus the node
// count. Oversize trees score +Inf immediately.
func (n *Node) Fitness(data [][2]float64) float64 {
	if n.size > SizeLimit {
		return math.Inf(1)
	}
	var sum float64
	for _, d := range data {
		sum += math.Abs(n.Eval(d[0]) - d[1])
	}
	return sum + float64(n.size)
}

// Simplify rewrites the subtree bottom-up, applying a single rewrite attempt
// per node. Constants that land within tolerance of an integer are rounded.
// The pass is idempotent.
func (n *Node) Simplify() *Node {
	switch n.op {
	case Var:
		return n
	case Const:
		return simplifiedConst(n.value)
	}

	a := n.children[0].Simplify()
	var b *Node
	if len(n.children) == 2 {
		b = n.children[1].Simplify()
	}

	switch n.op {
	case Add:
		switch {
		case a.op == Const && b.op == Const:
			return simplifiedConst(a.value + b.value)
		case a.op == Const && approxEq(a.value, 0):
			return b
		case b.op == Const && approxEq(b.value, 0):
			return a
		}
		return NewBinary(Add, a, b)
	case Mul:
		// A zero factor is deliberately not absorbed.
		switch {
		case a.op == Const && b.op == Const:
			return simplifiedConst(a.value * b.value)
		case a.op == Const && approxEq(a.value, 1):
			return b
		case b.op == Const && approxEq(b.value, 1):
			return a
		}
		return NewBinary(Mul, a, b)
	case Pow:
		switch {
		case a.op == Const && b.op == Const:
			return simplifiedConst(math.Pow(a.value, b.value))
		case b.op == Const && approxEq(b.value, 1):
			return a
		case b.op == Const && approxEq(b.value, 0):
			return simplifiedConst(0)
		}
		return NewBinary(Pow, a, b)
	case Log:
		if a.op == Const && b.op == Const {
			return simplifiedConst(math.Log(b.value) / math.Log(a.value))
		}
		return NewBinary(Log, a, b)
	case Sin:
		if a.op == Const {
			return simplifiedConst(math.Sin(a.value))
		}
		return NewUnary(Sin, a)
	}
	panic(fmt.Sprintf("expr: unknown op %d", n.op))
}

// Equal reports structural equality, with exact comparison of constants.
func (n *Node) Equal(m *Node) bool {
	if n.op != m.op || len(n.children) != len(m.children) {
		return false
	}
	if n.op == Const && n.value != m.value {
		return false
	}
	for i, c := range n.children {
		if !c.Equal(m.children[i]) {
			return false
		}
	}
	return true
}

// String renders the subtree as fully parenthesised infix.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.op {
	case Add, Mul, Pow:
		sym := "+"
		switch n.op {
		case Mul:
			sym = "*"
		case Pow:
			sym = "^"
		}
		b.WriteByte('(')
		n.children[0].write(b)
		b.WriteString(" " + sym + " ")
		n.children[1].write(b)
		b.WriteByte(')')
	case Log:
		b.WriteString("log(")
		n.children[0].write(b)
		b.WriteString(", ")
		n.children[1].write(b)
		b.WriteByte(')')
	case Sin:
		b.WriteString("sin(")
		n.children[0].write(b)
		b.WriteByte(')')
	case Var:
		b.WriteByte('x')
	case Const:
		fmt.Fprintf(b, "%.4f", n.value)
	}
}

// simplifiedConst normalises a folded constant: non-finite values collapse to
// 0 and near-integer values round, so a second simplify pass is a no-op.
func simplifiedConst(v float64) *Node {
	v = finiteOrZero(v)
	if r := math.Round(v); approxEq(v, r) {
		return NewConst(r)
	}
	return NewConst(v)
}

// approxEq is the tolerance used by the simplifier's constant comparisons.
func approxEq(a, b float64) bool {
	const eps = 1e-9
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
