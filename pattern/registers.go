package pattern

import (
	"fmt"
	"strings"

	"github.com/npillmayer/morphon/shape"
)

// Register columns.
const (
	regStart = iota // leftmost node of a group
	regEnd          // rightmost node of a group
	regGap          // position of the matcher when the group was entered
)

// Registers hold the node ranges captured by the groups of a pattern during a
// successful match. Group 0 is the whole match.
//
// Every group taking part in a match has a range [Start,End] of nodes in
// left-to-right order, with End not left of Start. A group which matched the
// empty sequence has neither start nor end, but a gap: the node the matcher was
// about to look at when it entered the group. For left-to-right matching the gap
// is left of this node, for right-to-left matching it is right of it.
//
// Registers are stored as a sparse table with triplet encoding, sorted by group
// and column. Unset entries have value shape.Nil.
type Registers struct {
	values []triplet
}

// Triplet values to store
type triplet struct {
	group, col int
	value      shape.NodeID
}

func newRegisters() *Registers {
	return &Registers{values: []triplet{}}
}

// ValueCount returns the number of entries set.
func (r *Registers) ValueCount() int {
	return len(r.values)
}

// Start returns the leftmost node captured by group g, or shape.Nil.
func (r *Registers) Start(g int) shape.NodeID {
	return r.value(g, regStart)
}

// End returns the rightmost node captured by group g, or shape.Nil.
func (r *Registers) End(g int) shape.NodeID {
	return r.value(g, regEnd)
}

// Gap returns the gap position of group g, or shape.Nil if group g did not take
// part in the match.
func (r *Registers) Gap(g int) shape.NodeID {
	return r.value(g, regGap)
}

// Range returns the inclusive node range of group g. ok is false if the group is
// empty or did not take part in the match.
func (r *Registers) Range(g int) (first, last shape.NodeID, ok bool) {
	first, last = r.Start(g), r.End(g)
	return first, last, first != shape.Nil && last != shape.Nil
}

// Matched is true if group g took part in the match, possibly matching the empty
// sequence.
func (r *Registers) Matched(g int) bool {
	return r.Gap(g) != shape.Nil
}

// Groups returns the numbers of all groups which took part in the match.
func (r *Registers) Groups() []int {
	var groups []int
	for _, t := range r.values {
		if t.col == regGap {
			groups = append(groups, t.group)
		}
	}
	return groups
}

func (r *Registers) value(g, col int) shape.NodeID {
	for _, t := range r.values {
		if !t.storedLeftOf(g, col) { // have skipped all lesser indices
			if t.storedAt(g, col) {
				return t.value
			}
			break
		}
	}
	return shape.Nil
}

func (r *Registers) set(g, col int, value shape.NodeID) {
	at := 0 // will be position of new value
	for k, t := range r.values {
		if !t.storedLeftOf(g, col) {
			if t.storedAt(g, col) {
				r.values[k].value = value
				return
			}
			break
		}
		at++
	}
	tnew := triplet{group: g, col: col, value: value}
	r.values = append(r.values, tnew)
	copy(r.values[at+1:], r.values[at:])
	r.values[at] = tnew
}

func (t *triplet) storedLeftOf(g, col int) bool {
	return t.group < g || t.group == g && t.col < col
}

func (t *triplet) storedAt(g, col int) bool {
	return t.group == g && t.col == col
}

func (r *Registers) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, g := range r.Groups() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if first, last, ok := r.Range(g); ok {
			sb.WriteString(fmt.Sprintf("%d:[%d,%d]", g, first, last))
		} else {
			sb.WriteString(fmt.Sprintf("%d:gap@%d", g, r.Gap(g)))
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
