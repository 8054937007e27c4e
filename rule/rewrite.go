package rule

import (
	"fmt"

	"github.com/npillmayer/morphon/pattern"
	"github.com/npillmayer/morphon/shape"
)

// FailureReason tells why a rule has not been applied.
type FailureReason int8

// Reasons for not applying a rule.
const (
	SubruleMismatch        FailureReason = iota // no subrule matched
	RuleDisabledBySelector                      // the selector rejected the rule
)

func (r FailureReason) String() string {
	if r == RuleDisabledBySelector {
		return "disabled by selector"
	}
	return "subrule mismatch"
}

// Tracer receives notifications about rule applications. Methods are called
// synchronously at the end of RewriteRule.Apply.
type Tracer interface {
	RuleApplied(r *Rule, input, output *shape.Shape)
	RuleNotApplied(r *Rule, input *shape.Shape, reason FailureReason)
}

// Selector decides if a rule is active.
type Selector func(*Rule) bool

// Environment holds the collaborators of rewrite rules. Both are optional.
type Environment struct {
	Selector Selector
	Tracer   Tracer
}

// RewriteRule is a compiled rule, ready to be applied to shapes.
type RewriteRule struct {
	rule   *Rule
	env    Environment
	batch  *batch
	driver Driver
}

// NewRewriteRule compiles a rule. Errors in the rule's definition are reported
// here, wrapping ErrUnsupportedShape, ErrUnknownGroup, ErrUnboundVariable or
// pattern.ErrInvalidPattern.
func NewRewriteRule(r *Rule, env Environment) (*RewriteRule, error) {
	if r == nil {
		return nil, fmt.Errorf("rule is nil")
	}
	types := r.Types
	if types == 0 {
		types = shape.AnyType
	}
	filter := shape.TypeFilter(types)
	b := &batch{}
	for i := range r.Subrules {
		sp, err := newSpec(r, i, filter)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name, err)
		}
		b.specs = append(b.specs, sp)
	}
	rr := &RewriteRule{rule: r, env: env, batch: b}
	switch r.Mode {
	case Iterative:
		rr.driver = &backtrackingDriver{batch: b, dir: r.Direction, filter: filter}
	case Simultaneous:
		rr.driver = &simultaneousDriver{batch: b, filter: filter}
	default:
		return nil, fmt.Errorf("rule %s: unknown application mode %d", r.Name, r.Mode)
	}
	return rr, nil
}

// Rule returns the rule definition of rr.
func (rr *RewriteRule) Rule() *Rule {
	return rr.rule
}

// Variants returns the rewrite variant of every subrule.
func (rr *RewriteRule) Variants() []Variant {
	variants := make([]Variant, len(rr.batch.specs))
	for i, sp := range rr.batch.specs {
		variants[i] = sp.variant
	}
	return variants
}

// Matchers returns the compiled matchers of the subrules, in order.
func (rr *RewriteRule) Matchers() []*pattern.Matcher {
	matchers := make([]*pattern.Matcher, len(rr.batch.specs))
	for i, sp := range rr.batch.specs {
		matchers[i] = sp.matcher
	}
	return matchers
}

// Apply applies the rule to a shape. The shape is rewritten in place. If the rule
// matched, the rewritten shape is returned. If the rule did not match, or if the
// rule's selector rejects the rule, Apply returns false; the matchers are not run
// for rejected rules.
func (rr *RewriteRule) Apply(input *shape.Shape) (*shape.Shape, bool) {
	if rr.env.Selector != nil && !rr.env.Selector(rr.rule) {
		tracer().Debugf("rule %s disabled", rr.rule.Name)
		if rr.env.Tracer != nil {
			rr.env.Tracer.RuleNotApplied(rr.rule, input, RuleDisabledBySelector)
		}
		return nil, false
	}
	original := input
	if rr.env.Tracer != nil {
		original = input.Clone()
	}
	tracer().P("rule", rr.rule.Name).Debugf("applying to %s", input)
	output, ok := rr.driver.Apply(input)
	if ok {
		tracer().P("rule", rr.rule.Name).Infof("applied: %s", output)
	}
	if rr.env.Tracer != nil {
		if ok {
			rr.env.Tracer.RuleApplied(rr.rule, original, output)
		} else {
			rr.env.Tracer.RuleNotApplied(rr.rule, original, SubruleMismatch)
		}
	}
	return output, ok
}
