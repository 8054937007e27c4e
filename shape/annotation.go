package shape

import (
	"fmt"

	"github.com/npillmayer/morphon/feature"
)

// Annotation covers an inclusive range [Start,End] of nodes of a shape. Several
// annotations may cover the same range, e.g. a morpheme and a syllable.
type Annotation struct {
	Type     string
	Features feature.Bundle
	Start    NodeID
	End      NodeID
}

func (a *Annotation) String() string {
	return fmt.Sprintf("<%s %d…%d %s>", a.Type, a.Start, a.End, a.Features)
}

// Annotate adds an annotation covering the nodes [start,end] to s.
func (s *Shape) Annotate(typ string, start, end NodeID, features feature.Bundle) (*Annotation, error) {
	if !s.Contains(start) || !s.Contains(end) {
		return nil, fmt.Errorf("annotation %s: range [%d,%d] not within shape", typ, start, end)
	}
	if s.Compare(start, end) > 0 {
		return nil, fmt.Errorf("annotation %s: start %d is right of end %d", typ, start, end)
	}
	a := &Annotation{Type: typ, Features: features.Clone(), Start: start, End: end}
	s.annotations = append(s.annotations, a)
	return a, nil
}

// Annotations returns all annotations of s in the order they were added.
func (s *Shape) Annotations() []*Annotation {
	return s.annotations
}

// AnnotationsAt returns all annotations covering a node.
func (s *Shape) AnnotationsAt(id NodeID) []*Annotation {
	var covering []*Annotation
	pos := s.Position(id)
	for _, a := range s.annotations {
		if s.Position(a.Start) <= pos && pos <= s.Position(a.End) {
			covering = append(covering, a)
		}
	}
	return covering
}

// shrinkAnnotations moves annotation boundaries off removed nodes.
// Annotations left without nodes are dropped.
func (s *Shape) shrinkAnnotations() {
	kept := s.annotations[:0]
	for _, a := range s.annotations {
		start, end := a.Start, a.End
		for s.nodes[start].removed && start != a.End {
			start = s.nodes[start].next // links of removed nodes still point into the chain
		}
		for s.nodes[end].removed && end != a.Start {
			end = s.nodes[end].prev
		}
		if s.nodes[start].removed || s.nodes[end].removed {
			tracer().Debugf("dropping annotation %s", a)
			continue
		}
		a.Start, a.End = start, end
		kept = append(kept, a)
	}
	s.annotations = kept
}
