// Package symfb holds the flatbuffers table code for the snapshot format
// exposed to host embeddings. The schema is small enough that the accessors
// are maintained by hand in the layout flatc produces:
//
//	table Snapshot {
//	  ops:[ubyte];      // pre-order operator codes of the best tree
//	  consts:[double];  // constant payloads, in the same pre-order
//	  params:[double];  // hyperparameter vector, field order
//	  fitness:double;
//	  generations:uint64;
//	  iters_to_best:uint64;
//	}
package symfb

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

type Snapshot struct {
	_tab flatbuffers.Table
}

func GetRootAsSnapshot(buf []byte, offset flatbuffers.UOffsetT) *Snapshot {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &Snapshot{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *Snapshot) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *Snapshot) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Snapshot) Ops(j int) byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetByte(a + flatbuffers.UOffsetT(j)*1)
	}
	return 0
}

func (rcv *Snapshot) OpsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Snapshot) OpsBytes() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *Snapshot) Consts(j int) float64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetFloat64(a + flatbuffers.UOffsetT(j)*8)
	}
	return 0
}

func (rcv *Snapshot) ConstsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Snapshot) Params(j int) float64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetFloat64(a + flatbuffers.UOffsetT(j)*8)
	}
	return 0
}

func (rcv *Snapshot) ParamsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Snapshot) Fitness() float64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(10))
	if o != 0 {
		return rcv._tab.GetFloat64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *Snapshot) Generations() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(12))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *Snapshot) ItersToBest() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(14))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func SnapshotStart(builder *flatbuffers.Builder) {
	builder.StartObject(6)
}

func SnapshotAddOps(builder *flatbuffers.Builder, ops flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, ops, 0)
}

func SnapshotStartOpsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(1, numElems, 1)
}

func SnapshotAddConsts(builder *flatbuffers.Builder, consts flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, consts, 0)
}

func SnapshotStartConstsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(8, numElems, 8)
}

func SnapshotAddParams(builder *flatbuffers.Builder, params flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(2, params, 0)
}

func SnapshotStartParamsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(8, numElems, 8)
}

func SnapshotAddFitness(builder *flatbuffers.Builder, fitness float64) {
	builder.PrependFloat64Slot(3, fitness, 0)
}

func SnapshotAddGenerations(builder *flatbuffers.Builder, generations uint64) {
	builder.PrependUint64Slot(4, generations, 0)
}

func SnapshotAddItersToBest(builder *flatbuffers.Builder, itersToBest uint64) {
	builder.PrependUint64Slot(5, itersToBest, 0)
}

func SnapshotEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
