package expr

import "fmt"

// Flatten appends the subtree's pre-order encoding to ops, and the payload of
// every constant (in the same pre-order) to consts. The byte values are the
// Op constants and are stable wire codes.
func (n *Node) Flatten(ops []byte, consts []float64) ([]byte, []float64) {
	ops = append(ops, byte(n.op))
	if n.op == Const {
		consts = append(consts, n.value)
	}
	for _, c := range n.children {
		ops, consts = c.Flatten(ops, consts)
	}
	return ops, consts
}

// FromPreorder rebuilds a tree from the pre-order encoding produced by
// Flatten. It fails on truncated or trailing input.
func FromPreorder(ops []byte, consts []float64) (*Node, error) {
	var oi, ci int
	var build func() (*Node, error)
	build = func() (*Node, error) {
		if oi >= len(ops) {
			return nil, fmt.Errorf("expr: truncated op stream at %d", oi)
		}
		op := Op(ops[oi])
		oi++
		switch op {
		case Var:
			return NewVar(), nil
		case Const:
			if ci >= len(consts) {
				return nil, fmt.Errorf("expr: missing constant payload at op %d", oi-1)
			}
			v := consts[ci]
			ci++
			return NewConst(v), nil
		case Sin:
			a, err := build()
			if err != nil {
				return nil, err
			}
			return NewUnary(op, a), nil
		case Add, Mul, Pow, Log:
			a, err := build()
			if err != nil {
				return nil, err
			}
			b, err := build()
			if err != nil {
				return nil, err
			}
			return NewBinary(op, a, b), nil
		}
		return nil, fmt.Errorf("expr: unknown op code %d at %d", ops[oi-1], oi-1)
	}

	root, err := build()
	if err != nil {
		return nil, err
	}
	if oi != len(ops) {
		return nil, fmt.Errorf("expr: %d trailing ops", len(ops)-oi)
	}
	if ci != len(consts) {
		return nil, fmt.Errorf("expr: %d trailing constants", len(consts)-ci)
	}
	return root, nil
}
