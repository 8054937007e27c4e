package trace

import (
	"github.com/npillmayer/morphon/rule"
	"github.com/npillmayer/morphon/shape"
)

// Log is a tracer writing rule applications to the trace with key
// 'morphon.trace'. Applied rules are reported at level Info, rules not applied at
// level Debug.
type Log struct{}

var _ rule.Tracer = Log{}

// RuleApplied is part of interface rule.Tracer.
func (Log) RuleApplied(r *rule.Rule, input, output *shape.Shape) {
	tracer().P("rule", r.Name).Infof("%s ⇒ %s", input, output)
}

// RuleNotApplied is part of interface rule.Tracer.
func (Log) RuleNotApplied(r *rule.Rule, input *shape.Shape, reason rule.FailureReason) {
	tracer().P("rule", r.Name).Debugf("%s: not applied, %s", input, reason)
}

// Tee is a tracer forwarding every event to a list of tracers, in order.
type Tee []rule.Tracer

var _ rule.Tracer = Tee{}

// RuleApplied is part of interface rule.Tracer.
func (tee Tee) RuleApplied(r *rule.Rule, input, output *shape.Shape) {
	for _, t := range tee {
		t.RuleApplied(r, input, output)
	}
}

// RuleNotApplied is part of interface rule.Tracer.
func (tee Tee) RuleNotApplied(r *rule.Rule, input *shape.Shape, reason rule.FailureReason) {
	for _, t := range tee {
		t.RuleNotApplied(r, input, reason)
	}
}
