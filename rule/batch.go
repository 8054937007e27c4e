package rule

import (
	"github.com/npillmayer/morphon/pattern"
	"github.com/npillmayer/morphon/shape"
)

// batch holds the compiled subrules of a rule, in order of declaration.
type batch struct {
	specs []*spec
}

// match tries the subrules at a node, in order. The first applicable match of
// the first matching subrule wins. Returns nil if no subrule matches.
func (b *batch) match(s *shape.Shape, at shape.NodeID) (*pattern.Match, *spec) {
	for _, sp := range b.specs {
		it := sp.matcher.Match(s, at)
		for it.Next() {
			if m := it.Match(); sp.applicable(m) {
				return m, sp
			}
		}
	}
	return nil, nil
}
