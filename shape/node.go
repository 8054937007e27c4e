package shape

import (
	"strings"

	"github.com/npillmayer/morphon/feature"
)

// NodeID identifies a node within its shape.
type NodeID int32

// Nil is the null value for node identities.
const Nil NodeID = -1

// NodeType is a category for nodes. Node types may be or'ed together to form
// type masks for filters and pattern constraints.
type NodeType uint8

// Node types of a shape. Sentinel nodes have type 0.
const (
	Segment NodeType = 1 << iota
	Boundary
	Anchor
)

// AnyType is a type mask containing all node types.
const AnyType = Segment | Boundary | Anchor

// Has is true if t contains at least one type of mask.
func (t NodeType) Has(mask NodeType) bool {
	return t&mask != 0
}

func (t NodeType) String() string {
	var names []string
	if t.Has(Segment) {
		names = append(names, "Segment")
	}
	if t.Has(Boundary) {
		names = append(names, "Boundary")
	}
	if t.Has(Anchor) {
		names = append(names, "Anchor")
	}
	if len(names) == 0 {
		return "<none>"
	}
	return strings.Join(names, "|")
}

// Node is an element of a shape.
//
// Node pointers are obtained with Shape.Node and stay valid until the next
// node is inserted into the shape. Hold on to NodeIDs instead.
type Node struct {
	Type     NodeType
	Label    string         // display symbol, e.g. "a" or "#"
	Features feature.Bundle // may contain unbound variables
	id       NodeID
	prev     NodeID
	next     NodeID
	order    int  // position in the chain, see Shape.Position
	deleted  bool // marked for deletion
	removed  bool // unlinked by Compact
}

// ID returns the identity of a node.
func (n *Node) ID() NodeID {
	return n.id
}

// IsDeleted is true if a node has been marked for deletion.
func (n *Node) IsDeleted() bool {
	return n.deleted
}

// IsSentinel is true for the invisible edge nodes of a shape.
func (n *Node) IsSentinel() bool {
	return n.Type == 0
}

func (n *Node) String() string {
	if n.Label != "" {
		return n.Label
	}
	switch n.Type {
	case Boundary:
		return "#"
	case Anchor:
		return "|"
	case 0:
		return "·"
	}
	return n.Features.String()
}

// Filter is a predicate on nodes. Filters decide which nodes are visible to
// matchers and rule drivers.
type Filter func(*Node) bool

// DefaultFilter accepts segments, boundaries and anchors which are not deleted.
func DefaultFilter(n *Node) bool {
	return n.Type.Has(AnyType) && !n.deleted
}

// TypeFilter creates a filter accepting non-deleted nodes of the given types.
func TypeFilter(mask NodeType) Filter {
	return func(n *Node) bool {
		return n.Type.Has(mask) && !n.deleted
	}
}
