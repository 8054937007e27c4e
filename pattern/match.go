package pattern

import (
	"fmt"

	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/shape"
)

// Match is the result of one successful match attempt.
type Match struct {
	ID        string            // identifier of the pattern, from Settings.ID
	Registers *Registers        // captured groups
	Output    *shape.Shape      // the shape matched, and subject to rewriting
	Bindings  *feature.Bindings // variable bindings; owned by the match
	Priority  int               // rank for tie-breaking, lower is preferred
	Lazy      bool              // a lazy quantifier contributed to the match
	Start     shape.NodeID      // node the attempt started at
	Next      shape.NodeID      // node to resume scanning at
	Depth     int               // quantifier iterations on the path of the match
}

// Range returns the node range of the whole match. ok is false for a match of
// the empty sequence.
func (m *Match) Range() (first, last shape.NodeID, ok bool) {
	return m.Registers.Range(0)
}

func (m *Match) String() string {
	return fmt.Sprintf("<match %s @%d: %s %s next=%d depth=%d>", m.ID, m.Start,
		m.Registers, m.Bindings, m.Next, m.Depth)
}
