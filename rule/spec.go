package rule

import (
	"fmt"

	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/pattern"
	"github.com/npillmayer/morphon/shape"
	"golang.org/x/exp/slices"
)

// Variant is the kind of rewrite a subrule performs.
type Variant int8

// Rewrite variants, see package documentation.
const (
	FeatureVariant Variant = iota
	NarrowVariant
	EpenthesisVariant
)

func (v Variant) String() string {
	switch v {
	case NarrowVariant:
		return "narrow"
	case EpenthesisVariant:
		return "epenthesis"
	}
	return "feature"
}

// variantFor chooses the rewrite variant from the lengths of LHS and RHS.
func variantFor(lhs, rhs int) (Variant, error) {
	switch {
	case lhs == rhs && lhs > 0:
		return FeatureVariant, nil
	case lhs > rhs:
		return NarrowVariant, nil
	case lhs == 0 && rhs > 0:
		return EpenthesisVariant, nil
	}
	return 0, fmt.Errorf("%w: LHS of length %d, RHS of length %d", ErrUnsupportedShape, lhs, rhs)
}

// spec is a compiled subrule: its matcher and the rewrite to perform on a match.
type spec struct {
	id      string
	variant Variant
	rule    *Rule
	subrule *Subrule
	matcher *pattern.Matcher
	filter  shape.Filter
	target  int // group capturing the whole LHS
	first   int // group capturing LHS pattern 0; pattern i is captured by first+i
}

// newSpec compiles subrule number index of rule r.
//
// The subrule's pattern is
//
//     Behind(left)  Group(target, Group(first, LHS[0]) … Group(first+n-1, LHS[n-1]))  Ahead(right)
//
// with group numbers above any group number used by the rule's patterns.
func newSpec(r *Rule, index int, filter shape.Filter) (*spec, error) {
	sr := &r.Subrules[index]
	id := sr.ID
	if id == "" {
		id = fmt.Sprintf("%s/%d", r.Name, index)
	}
	variant, err := variantFor(len(r.LHS), len(sr.RHS))
	if err != nil {
		return nil, fmt.Errorf("subrule %s: %w", id, err)
	}
	maxGroup := 0
	var groups []int // groups of the LHS
	var vars []string
	for _, e := range r.LHS {
		maxGroup = max(maxGroup, e.MaxGroup())
		groups = append(groups, e.Groups()...)
		vars = append(vars, e.Variables()...)
	}
	for _, e := range []*pattern.Expr{sr.Left, sr.Right} {
		if e != nil {
			maxGroup = max(maxGroup, e.MaxGroup())
			vars = append(vars, e.Variables()...)
		}
	}
	for i, out := range sr.RHS {
		if out.FromGroup != 0 && !slices.Contains(groups, out.FromGroup) {
			return nil, fmt.Errorf("subrule %s, output %d: %w %d", id, i, ErrUnknownGroup, out.FromGroup)
		}
		for _, v := range out.Features.Variables() {
			if !slices.Contains(vars, v) {
				return nil, fmt.Errorf("subrule %s, output %d: %w '%s'", id, i, ErrUnboundVariable, v)
			}
		}
	}
	sp := &spec{
		id:      id,
		variant: variant,
		rule:    r,
		subrule: sr,
		filter:  filter,
		target:  maxGroup + 1,
		first:   maxGroup + 2,
	}
	lhs := make([]*pattern.Expr, len(r.LHS))
	for i, e := range r.LHS {
		lhs[i] = pattern.Group(sp.first+i, e)
	}
	var parts []*pattern.Expr
	if sr.Left != nil {
		parts = append(parts, pattern.Behind(sr.Left))
	}
	parts = append(parts, pattern.Group(sp.target, pattern.Seq(lhs...)))
	if sr.Right != nil {
		parts = append(parts, pattern.Ahead(sr.Right))
	}
	sp.matcher, err = pattern.NewMatcher(pattern.Seq(parts...), pattern.Settings{
		Direction:   r.Direction,
		Filter:      filter,
		UseDefaults: r.UseDefaults,
		Defaults:    r.Defaults,
		ID:          id,
		Priority:    index,
	})
	if err != nil {
		return nil, fmt.Errorf("subrule %s: %w", id, err)
	}
	tracer().Debugf("subrule %s is a %s rule", id, variant)
	return sp, nil
}

// applicable checks if a match may be rewritten. A match is not applicable if an
// output needs a variable which is unbound on the path of the match, if an output
// copies from a group which matched nothing, or if there is nothing to rewrite.
func (sp *spec) applicable(m *pattern.Match) bool {
	for _, out := range sp.subrule.RHS {
		if _, ok := out.Features.Resolve(m.Bindings); !ok {
			return false
		}
		if out.FromGroup != 0 {
			if _, _, ok := m.Registers.Range(out.FromGroup); !ok {
				return false
			}
		}
	}
	if sp.variant == EpenthesisVariant {
		gap := m.Registers.Gap(sp.target)
		if sp.rule.Direction == morphon.LeftToRight {
			return gap != m.Output.Begin()
		}
		return gap != m.Output.End()
	}
	_, _, ok := m.Registers.Range(sp.target)
	return ok
}

// applyOutput rewrites the shape of a match and returns the range of nodes
// affected. The match has to be applicable.
//
// Rewriting cannot fail for an applicable match; inconsistencies panic.
func (sp *spec) applyOutput(m *pattern.Match) (first, last shape.NodeID) {
	s := m.Output
	switch sp.variant {
	case FeatureVariant, NarrowVariant:
		first, last, _ = m.Registers.Range(sp.target)
		updates := sp.updates(m)
		for i := len(sp.subrule.RHS); i < len(sp.rule.LHS); i++ {
			for _, id := range sp.nodes(m, sp.first+i) {
				s.MarkDeleted(id)
			}
		}
		for _, u := range updates {
			n := s.Node(u.node)
			n.Features = n.Features.Merge(u.features)
			if u.label != "" {
				n.Label = u.label
			}
		}
	case EpenthesisVariant:
		gap := m.Registers.Gap(sp.target)
		first = shape.Nil
		for _, out := range sp.subrule.RHS {
			features, label := sp.outputFeatures(m, out)
			typ := out.Type
			if typ == 0 {
				typ = shape.Segment
			}
			if sp.rule.Direction == morphon.LeftToRight {
				last = s.InsertBefore(gap, typ, label, features)
			} else {
				last = s.InsertAfter(gap, typ, label, features)
				gap = last
			}
			if first == shape.Nil {
				first = last
			}
		}
	}
	tracer().P("subrule", sp.id).Debugf("rewrote [%d,%d]: %s", first, last, s)
	return first, last
}

type update struct {
	node     shape.NodeID
	features feature.Bundle
	label    string
}

// updates calculates the feature updates of Feature and Narrow rewrites before
// any node is changed, so outputs copying from groups see the matched features.
func (sp *spec) updates(m *pattern.Match) []update {
	var updates []update
	for i, out := range sp.subrule.RHS {
		features, label := sp.outputFeatures(m, out)
		for _, id := range sp.nodes(m, sp.first+i) {
			updates = append(updates, update{node: id, features: features, label: label})
		}
	}
	return updates
}

// outputFeatures resolves the features and the label of an output template.
// Outputs copying from a group inherit the label of the group's first node,
// unless they set a label of their own.
func (sp *spec) outputFeatures(m *pattern.Match, out Output) (feature.Bundle, string) {
	features, ok := out.Features.Resolve(m.Bindings)
	if !ok {
		panic(fmt.Sprintf("subrule %s: unresolved variables in output %s", sp.id, out.Features))
	}
	label := out.Label
	if out.FromGroup != 0 {
		from, _, ok := m.Registers.Range(out.FromGroup)
		if !ok {
			panic(fmt.Sprintf("subrule %s: group %d is empty", sp.id, out.FromGroup))
		}
		src := m.Output.Node(from)
		features = src.Features.Merge(features)
		if label == "" {
			label = src.Label
		}
	}
	return features, label
}

// nodes returns the nodes captured by a group, excluding nodes invisible to the
// rule.
func (sp *spec) nodes(m *pattern.Match, group int) []shape.NodeID {
	first, last, ok := m.Registers.Range(group)
	if !ok {
		return nil
	}
	return m.Output.Range(first, last, sp.filter)
}
