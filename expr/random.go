package expr

import (
	"golang.org/x/exp/rand"

	"github.com/symreg-dev/symreg/dist"
	"github.com/symreg-dev/symreg/params"
)

// RandomExpression builds a random tree whose node count equals size, capped
// at SizeLimit. Sizes below 1 are treated as 1.
//
// A size-1 request yields Var or a constant drawn from
// Normal(NewConstMean, NewConstStd) with equal probability. A size-2 request
// is necessarily sin of a leaf. Larger requests pick uniformly among sin and
// the four binary operators; binaries split the remaining budget at a
// uniformly random point so each child gets at least one node.
func RandomExpression(rng *rand.Rand, size int, p *params.Params) *Node {
	if size > SizeLimit {
		size = SizeLimit
	}

	if size <= 1 {
		if rng.Intn(2) == 0 {
			return NewVar()
		}
		return NewConst(dist.Normal(rng, p.NewConstMean, p.NewConstStd))
	}
	if size == 2 {
		return NewUnary(Sin, RandomExpression(rng, 1, p))
	}

	switch rng.Intn(5) {
	case 0:
		return NewUnary(Sin, RandomExpression(rng, size-1, p))
	case 1:
		return randomBinary(rng, Add, size, p)
	case 2:
		return randomBinary(rng, Mul, size, p)
	case 3:
		return randomBinary(rng, Pow, size, p)
	default:
		return randomBinary(rng, Log, size, p)
	}
}

func randomBinary(rng *rand.Rand, op Op, size int, p *params.Params) *Node {
	d := 2 + rng.Intn(size-2)
	return NewBinary(op,
		RandomExpression(rng, d-1, p),
		RandomExpression(rng, size-d, p))
}
