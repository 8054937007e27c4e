package shape

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/feature"
)

// Arena positions of the fixed nodes of every shape.
const (
	head  NodeID = 0 // sentinel before Begin
	begin NodeID = 1
	end   NodeID = 2
	tail  NodeID = 3 // sentinel after End
)

// Shape is a sequence of nodes, framed by a Begin and an End anchor.
//
// A shape is not safe for concurrent mutation.
type Shape struct {
	nodes       []Node
	annotations []*Annotation
	dirty       bool // order indices have to be re-calculated
}

// New creates an empty shape, consisting of the two anchors only.
func New() *Shape {
	s := &Shape{nodes: make([]Node, 4, 16)}
	for i := range s.nodes {
		s.nodes[i] = Node{id: NodeID(i), prev: NodeID(i) - 1, next: NodeID(i) + 1, order: i}
	}
	s.nodes[head].prev = Nil
	s.nodes[tail].next = Nil
	s.nodes[begin].Type, s.nodes[begin].Label = Anchor, "⟨"
	s.nodes[end].Type, s.nodes[end].Label = Anchor, "⟩"
	return s
}

// Begin returns the left anchor.
func (s *Shape) Begin() NodeID {
	return begin
}

// End returns the right anchor.
func (s *Shape) End() NodeID {
	return end
}

// Node returns the node for an ID, or nil if id is not a node of s.
func (s *Shape) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(s.nodes) || s.nodes[id].removed {
		return nil
	}
	return &s.nodes[id]
}

// Contains is true if id denotes a node of s (sentinels excluded).
func (s *Shape) Contains(id NodeID) bool {
	n := s.Node(id)
	return n != nil && !n.IsSentinel()
}

// IsSentinel is true if id denotes one of the invisible edge nodes.
func (s *Shape) IsSentinel(id NodeID) bool {
	return id == head || id == tail
}

// Next returns the successor of a node, regardless of filters.
func (s *Shape) Next(id NodeID) NodeID {
	return s.nodes[id].next
}

// Prev returns the predecessor of a node, regardless of filters.
func (s *Shape) Prev(id NodeID) NodeID {
	return s.nodes[id].prev
}

// Step moves from a node one step in direction dir, skipping nodes rejected by
// filter. Stepping stops at the sentinels; stepping from a sentinel outwards
// stays at the sentinel.
func (s *Shape) Step(id NodeID, dir morphon.Direction, filter Filter) NodeID {
	if filter == nil {
		filter = DefaultFilter
	}
	for {
		if dir == morphon.LeftToRight {
			if id == tail {
				return tail
			}
			id = s.nodes[id].next
		} else {
			if id == head {
				return head
			}
			id = s.nodes[id].prev
		}
		if s.IsSentinel(id) || filter(&s.nodes[id]) {
			return id
		}
	}
}

// First returns the first node accepted by filter, seen from the edge where a walk
// in direction dir starts. If no node is accepted, the opposite sentinel is
// returned.
func (s *Shape) First(dir morphon.Direction, filter Filter) NodeID {
	if dir == morphon.LeftToRight {
		return s.Step(head, dir, filter)
	}
	return s.Step(tail, dir, filter)
}

// --- Order -----------------------------------------------------------------

// Position returns the order index of a node. Order indices reflect the current
// chain and change when nodes are inserted; use them for comparisons only.
func (s *Shape) Position(id NodeID) int {
	if s.dirty {
		s.renumber()
	}
	return s.nodes[id].order
}

// Compare compares the positions of two nodes, returning -1, 0 or 1.
func (s *Shape) Compare(a, b NodeID) int {
	pa, pb := s.Position(a), s.Position(b)
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	}
	return 0
}

// Span returns the span of order positions covered by the inclusive node range
// [from,to].
func (s *Shape) Span(from, to NodeID) morphon.Span {
	return morphon.Span{s.Position(from), s.Position(to) + 1}
}

func (s *Shape) renumber() {
	i := 0
	for id := head; id != Nil; id = s.nodes[id].next {
		s.nodes[id].order = i
		i++
	}
	s.dirty = false
}

// --- Mutation --------------------------------------------------------------

// Append adds a new node in front of the End anchor.
func (s *Shape) Append(typ NodeType, label string, features feature.Bundle) NodeID {
	return s.InsertBefore(end, typ, label, features)
}

// InsertBefore creates a new node and links it into the chain in front of ref.
// Inserting in front of Begin or the left sentinel is not allowed and panics.
func (s *Shape) InsertBefore(ref NodeID, typ NodeType, label string, features feature.Bundle) NodeID {
	if ref == head || ref == begin || !s.linked(ref) {
		panic(fmt.Sprintf("cannot insert node before %d", ref))
	}
	return s.link(s.nodes[ref].prev, ref, typ, label, features)
}

// InsertAfter creates a new node and links it into the chain behind ref.
// Inserting behind End or the right sentinel is not allowed and panics.
func (s *Shape) InsertAfter(ref NodeID, typ NodeType, label string, features feature.Bundle) NodeID {
	if ref == tail || ref == end || !s.linked(ref) {
		panic(fmt.Sprintf("cannot insert node after %d", ref))
	}
	return s.link(ref, s.nodes[ref].next, typ, label, features)
}

func (s *Shape) linked(id NodeID) bool {
	return id >= 0 && int(id) < len(s.nodes) && !s.nodes[id].removed
}

func (s *Shape) link(prev, next NodeID, typ NodeType, label string, features feature.Bundle) NodeID {
	if typ == 0 {
		panic("cannot insert node without type")
	}
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, Node{
		Type:     typ,
		Label:    label,
		Features: features.Clone(),
		id:       id,
		prev:     prev,
		next:     next,
	})
	s.nodes[prev].next = id
	s.nodes[next].prev = id
	s.dirty = true
	return id
}

// MarkDeleted marks a node as deleted. Anchors cannot be deleted.
func (s *Shape) MarkDeleted(id NodeID) {
	if !s.Contains(id) || id == begin || id == end {
		panic(fmt.Sprintf("cannot delete node %d", id))
	}
	s.nodes[id].deleted = true
}

// Compact physically unlinks all nodes marked as deleted and adjusts annotations.
// Annotations which do not cover any node after compaction are dropped.
// Returns the number of nodes removed.
func (s *Shape) Compact() int {
	count := 0
	for id := s.nodes[begin].next; id != end; {
		next := s.nodes[id].next
		if s.nodes[id].deleted {
			s.unlink(id)
			count++
		}
		id = next
	}
	if count > 0 {
		s.shrinkAnnotations()
		s.dirty = true
		tracer().P("shape", s.String()).Debugf("compacted %d nodes", count)
	}
	return count
}

func (s *Shape) unlink(id NodeID) {
	n := &s.nodes[id]
	s.nodes[n.prev].next = n.next
	s.nodes[n.next].prev = n.prev
	n.removed = true
}

// --- Queries ---------------------------------------------------------------

// Nodes returns the IDs of all nodes between the anchors, including nodes marked
// as deleted.
func (s *Shape) Nodes() []NodeID {
	ids := make([]NodeID, 0, len(s.nodes))
	for id := s.nodes[begin].next; id != end; id = s.nodes[id].next {
		ids = append(ids, id)
	}
	return ids
}

// Len counts the nodes between the anchors, including nodes marked as deleted.
func (s *Shape) Len() int {
	return len(s.Nodes())
}

// LiveLen counts the nodes between the anchors which are not marked as deleted.
func (s *Shape) LiveLen() int {
	count := 0
	for id := s.nodes[begin].next; id != end; id = s.nodes[id].next {
		if !s.nodes[id].deleted {
			count++
		}
	}
	return count
}

// Range returns the nodes of the inclusive range [from,to] accepted by filter,
// in left-to-right order. from must not be right of to.
func (s *Shape) Range(from, to NodeID, filter Filter) []NodeID {
	if filter == nil {
		filter = DefaultFilter
	}
	var ids []NodeID
	for id := from; id != Nil; id = s.nodes[id].next {
		if !s.IsSentinel(id) && filter(&s.nodes[id]) {
			ids = append(ids, id)
		}
		if id == to {
			return ids
		}
	}
	panic(fmt.Sprintf("node range [%d,%d] is not ordered", from, to))
}

// Clone creates a deep copy of s. Node identities are preserved.
func (s *Shape) Clone() *Shape {
	c := &Shape{
		nodes: make([]Node, len(s.nodes), cap(s.nodes)),
		dirty: s.dirty,
	}
	copy(c.nodes, s.nodes)
	for i := range c.nodes {
		c.nodes[i].Features = s.nodes[i].Features.Clone()
	}
	for _, a := range s.annotations {
		clone := *a
		clone.Features = a.Features.Clone()
		c.annotations = append(c.annotations, &clone)
	}
	return c
}

// String returns the labels of all live nodes between the anchors, separated by
// blanks.
func (s *Shape) String() string {
	var labels []string
	for id := s.nodes[begin].next; id != end; id = s.nodes[id].next {
		if !s.nodes[id].deleted {
			labels = append(labels, s.nodes[id].String())
		}
	}
	return strings.Join(labels, " ")
}

// Dump writes all nodes, including deleted ones, to the trace at debug level.
func (s *Shape) Dump() {
	tracer().Debugf("--- shape ------------------------------------")
	for id := head; id != Nil; id = s.nodes[id].next {
		n := &s.nodes[id]
		mark := " "
		if n.deleted {
			mark = "x"
		}
		tracer().Debugf("%s [%3d] %-8s %-3s %s", mark, id, n.Type, n.String(), n.Features)
	}
	tracer().Debugf("----------------------------------------------")
}

// --- Fingerprints ----------------------------------------------------------

type nodePrint struct {
	Type     uint8
	Label    string
	Deleted  bool
	Features string
}

type annotationPrint struct {
	Type     string
	From, To int
	Features string
}

type shapePrint struct {
	Nodes       []nodePrint
	Annotations []annotationPrint
}

// Fingerprint returns a structural hash of a shape: node types, labels, deletion
// flags and features, together with all annotations. Node identities do not
// contribute, so two shapes built independently from the same input have
// identical fingerprints.
func (s *Shape) Fingerprint() (string, error) {
	p := shapePrint{}
	index := make(map[NodeID]int)
	for i, id := range s.Nodes() {
		n := &s.nodes[id]
		index[id] = i
		p.Nodes = append(p.Nodes, nodePrint{
			Type:     uint8(n.Type),
			Label:    n.Label,
			Deleted:  n.deleted,
			Features: n.Features.String(),
		})
	}
	for _, a := range s.annotations {
		p.Annotations = append(p.Annotations, annotationPrint{
			Type:     a.Type,
			From:     index[a.Start],
			To:       index[a.End],
			Features: a.Features.String(),
		})
	}
	return structhash.Hash(p, 1)
}
