package shape

import (
	"github.com/npillmayer/morphon"
)

// NodeSeq is a sequence over the nodes of a shape. It moves in one direction and
// skips nodes rejected by a filter. A sequence ends when it reaches a sentinel.
//
// Usage:
//
//     seq := s.Seq(morphon.LeftToRight, shape.DefaultFilter)
//     for id := seq.First(); !seq.Done(); id = seq.Next() {
//         …
//     }
//
// Sequences may be re-positioned with Reset, e.g. to resume scanning behind a
// rewritten part of a shape.
type NodeSeq struct {
	shape  *Shape
	node   NodeID
	dir    morphon.Direction
	filter Filter
	done   bool
}

// Seq creates a sequence over all nodes of s accepted by filter, walking in
// direction dir.
func (s *Shape) Seq(dir morphon.Direction, filter Filter) *NodeSeq {
	if filter == nil {
		filter = DefaultFilter
	}
	seq := &NodeSeq{shape: s, dir: dir, filter: filter}
	seq.Reset(s.First(dir, filter))
	return seq
}

// First returns the current node of a sequence.
func (seq *NodeSeq) First() NodeID {
	return seq.node
}

// Next advances a sequence and returns the new current node.
func (seq *NodeSeq) Next() NodeID {
	if seq.done {
		return Nil
	}
	seq.Reset(seq.shape.Step(seq.node, seq.dir, seq.filter))
	return seq.node
}

// Reset positions a sequence at a node. If the node is a sentinel (or Nil), the
// sequence is done.
func (seq *NodeSeq) Reset(id NodeID) {
	seq.node = id
	seq.done = id == Nil || seq.shape.IsSentinel(id)
}

// Break signals a sequence to stop iterating.
func (seq *NodeSeq) Break() {
	seq.done = true
}

// Done returns true if a sequence stopped iterating.
func (seq *NodeSeq) Done() bool {
	return seq.done
}

// Direction returns the walking direction of a sequence.
func (seq *NodeSeq) Direction() morphon.Direction {
	return seq.dir
}

// Where derives a sequence which additionally skips nodes rejected by filt.
// The derived sequence starts at the current position of seq (or the next
// position accepted by filt).
func (seq *NodeSeq) Where(filt Filter) *NodeSeq {
	inner := seq.filter
	combined := func(n *Node) bool {
		return inner(n) && filt(n)
	}
	derived := &NodeSeq{shape: seq.shape, dir: seq.dir, filter: combined}
	derived.Reset(seq.node)
	if !derived.done && !combined(seq.shape.Node(seq.node)) {
		derived.Next()
	}
	return derived
}

// List returns all the remaining nodes of a sequence.
func (seq *NodeSeq) List() []NodeID {
	var ids []NodeID
	for id := seq.First(); !seq.Done(); id = seq.Next() {
		ids = append(ids, id)
	}
	return ids
}
