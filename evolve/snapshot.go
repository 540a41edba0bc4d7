package evolve

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/symreg-dev/symreg/bindings/symfb"
	"github.com/symreg-dev/symreg/expr"
	"github.com/symreg-dev/symreg/params"
)

// Snapshot is the decoded form of the wire snapshot: the best individual and
// the params that produced it.
type Snapshot struct {
	Tree        expr.Tree
	Params      params.Params
	Fitness     float64
	Generations int
	ItersToBest int
}

// Snapshot encodes the run's best individual as a flatbuffers message for
// host embeddings.
func (e *Evolve) Snapshot() []byte {
	ops, consts := e.pop[0].tree.Root().Flatten(nil, nil)
	vec := e.params.Vector()

	builder := flatbuffers.NewBuilder(256)

	symfb.SnapshotStartOpsVector(builder, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		builder.PrependByte(ops[i])
	}
	opsOff := builder.EndVector(len(ops))

	symfb.SnapshotStartConstsVector(builder, len(consts))
	for i := len(consts) - 1; i >= 0; i-- {
		builder.PrependFloat64(consts[i])
	}
	constsOff := builder.EndVector(len(consts))

	symfb.SnapshotStartParamsVector(builder, len(vec))
	for i := len(vec) - 1; i >= 0; i-- {
		builder.PrependFloat64(vec[i])
	}
	paramsOff := builder.EndVector(len(vec))

	symfb.SnapshotStart(builder)
	symfb.SnapshotAddOps(builder, opsOff)
	symfb.SnapshotAddConsts(builder, constsOff)
	symfb.SnapshotAddParams(builder, paramsOff)
	symfb.SnapshotAddFitness(builder, e.pop[0].fitness)
	symfb.SnapshotAddGenerations(builder, uint64(e.totalIterations))
	symfb.SnapshotAddItersToBest(builder, uint64(e.itersToBest))
	builder.Finish(symfb.SnapshotEnd(builder))

	return builder.FinishedBytes()
}

// DecodeSnapshot rebuilds a Snapshot from its wire form.
func DecodeSnapshot(buf []byte) (*Snapshot, error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("evolve: snapshot too short (%d bytes)", len(buf))
	}
	raw := symfb.GetRootAsSnapshot(buf, 0)

	consts := make([]float64, raw.ConstsLength())
	for i := range consts {
		consts[i] = raw.Consts(i)
	}
	root, err := expr.FromPreorder(raw.OpsBytes(), consts)
	if err != nil {
		return nil, fmt.Errorf("evolve: bad snapshot tree: %w", err)
	}

	if raw.ParamsLength() != params.NumFields {
		return nil, fmt.Errorf("evolve: snapshot has %d params, want %d", raw.ParamsLength(), params.NumFields)
	}
	var vec [params.NumFields]float64
	for i := range vec {
		vec[i] = raw.Params(i)
	}

	return &Snapshot{
		Tree:        expr.New(root),
		Params:      *params.FromVector(vec),
		Fitness:     raw.Fitness(),
		Generations: int(raw.Generations()),
		ItersToBest: int(raw.ItersToBest()),
	}, nil
}
