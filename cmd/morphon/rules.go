package main

import (
	"fmt"

	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/pattern"
	"github.com/npillmayer/morphon/rule"
	"github.com/npillmayer/morphon/shape"
	"github.com/npillmayer/morphon/shape/shapelang"
	"github.com/npillmayer/morphon/trace"
)

var (
	plus  = feature.Plus
	minus = feature.Minus
)

func obstruent(voice feature.Value, cont feature.Value, place string) feature.Bundle {
	return feature.Bundle{
		"syl": minus, "cons": plus, "son": minus,
		"voice": voice, "cont": cont, "place": feature.Symbol(place),
	}
}

func vowel(back, high feature.Value) feature.Bundle {
	return feature.Bundle{
		"syl": plus, "cons": minus, "son": plus, "voice": plus,
		"back": back, "high": high,
	}
}

// baseInventory creates the segment inventory of the built-in rule set.
func baseInventory() *shapelang.Inventory {
	inv := shapelang.NewInventory("base", nil)
	inv.Define("p", obstruent(minus, minus, "labial"))
	inv.Define("b", obstruent(plus, minus, "labial"))
	inv.Define("t", obstruent(minus, minus, "coronal"))
	inv.Define("d", obstruent(plus, minus, "coronal"))
	inv.Define("k", obstruent(minus, minus, "dorsal"))
	inv.Define("g", obstruent(plus, minus, "dorsal"))
	inv.Define("f", obstruent(minus, plus, "labial"))
	inv.Define("v", obstruent(plus, plus, "labial"))
	inv.Define("s", obstruent(minus, plus, "coronal"))
	inv.Define("z", obstruent(plus, plus, "coronal"))
	inv.Define("h", feature.Bundle{
		"syl": minus, "cons": plus, "son": minus, "voice": minus,
		"cont": plus, "spread": plus, "place": feature.Symbol("glottal"),
	})
	inv.Define("m", feature.Bundle{"syl": minus, "cons": plus, "son": plus, "voice": plus,
		"nasal": plus, "place": feature.Symbol("labial")})
	inv.Define("n", feature.Bundle{"syl": minus, "cons": plus, "son": plus, "voice": plus,
		"nasal": plus, "place": feature.Symbol("coronal")})
	inv.Define("a", vowel(plus, minus))
	inv.Define("o", vowel(plus, minus).Merge(feature.Bundle{"round": plus}))
	inv.Define("u", vowel(plus, plus).Merge(feature.Bundle{"round": plus}))
	inv.Define("e", vowel(minus, minus))
	inv.Define("i", vowel(minus, plus))
	inv.Define("@", schwa.Features)
	return inv
}

var schwa = rule.Output{
	Label:    "@",
	Features: feature.Bundle{"syl": plus, "cons": minus, "son": plus, "voice": plus, "reduced": plus},
}

// builtinRules returns the rule cascade, in order of application.
func builtinRules() []*rule.Rule {
	syllabic := pattern.Segment(feature.Bundle{"syl": plus})
	nonSyllabic := pattern.Segment(feature.Bundle{"syl": minus})
	obstr := feature.Bundle{"son": minus}
	edge := pattern.Alt(pattern.Boundary(), pattern.Anchor())
	return []*rule.Rule{
		{
			Name: "h-deletion",
			LHS:  []*pattern.Expr{pattern.Segment(feature.Bundle{"spread": plus})},
			Subrules: []rule.Subrule{{
				Left:  syllabic,
				Right: syllabic,
			}},
		},
		{
			Name:      "voicing-assimilation",
			Direction: morphon.RightToLeft,
			LHS:       []*pattern.Expr{pattern.Segment(obstr)},
			Subrules: []rule.Subrule{{
				RHS:   []rule.Output{{Features: feature.Bundle{"voice": feature.Var("v")}}},
				Right: pattern.Segment(feature.Bundle{"son": minus, "voice": feature.Var("v")}),
			}},
		},
		{
			Name: "back-harmony",
			LHS:  []*pattern.Expr{syllabic},
			Subrules: []rule.Subrule{{
				RHS: []rule.Output{{Features: feature.Bundle{"back": feature.Var("b")}}},
				Left: pattern.Seq(
					pattern.Segment(feature.Bundle{"syl": plus, "back": feature.Var("b")}),
					pattern.Repeat(nonSyllabic, 0, pattern.Unbounded),
				),
			}},
		},
		{
			Name: "schwa-epenthesis",
			Subrules: []rule.Subrule{{
				RHS:   []rule.Output{schwa},
				Left:  nonSyllabic,
				Right: pattern.Seq(nonSyllabic, edge),
			}},
		},
		{
			Name: "final-devoicing",
			Mode: rule.Simultaneous,
			LHS:  []*pattern.Expr{pattern.Segment(obstr)},
			Subrules: []rule.Subrule{{
				RHS:   []rule.Output{{Features: feature.Bundle{"voice": minus}}},
				Right: edge,
			}},
		},
	}
}

// Session holds the compiled rule cascade and the inventory for a run of the
// command.
type Session struct {
	config   *Config
	inv      *shapelang.Inventory
	selector rule.Selector
	rules    []*rule.RewriteRule
	display  *trace.Display
}

// NewSession compiles the built-in rules, adapted to a configuration.
func NewSession(cfg *Config) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	inv := shapelang.NewInventory("config", baseInventory())
	for sym, features := range cfg.Segments {
		b, err := shapelang.ParseBundle(features)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", sym, err)
		}
		inv.Define(sym, b)
	}
	sess := &Session{
		config:   cfg,
		inv:      inv,
		selector: cfg.selector(),
		display:  trace.NewDisplay(cfg.ShowFailures),
	}
	env := rule.Environment{
		Selector: sess.selector,
		Tracer:   trace.Log{},
	}
	for _, r := range builtinRules() {
		if cfg.Mode != "" {
			mode, err := rule.ParseMode(cfg.Mode)
			if err != nil {
				return nil, err
			}
			r.Mode = mode
		}
		rr, err := rule.NewRewriteRule(r, env)
		if err != nil {
			return nil, err
		}
		sess.rules = append(sess.rules, rr)
	}
	tracer().Debugf("session with %d rules, inventory of %d extra segments", len(sess.rules), inv.Size())
	return sess, nil
}

// Rules returns the compiled rules, in order of application.
func (sess *Session) Rules() []*rule.RewriteRule {
	return sess.rules
}

// Derive applies the rule cascade to a word. After every rule applied, rewritten
// segments are relabeled from the inventory. The derivation is recorded and may
// be rendered with Render.
func (sess *Session) Derive(word string) (*shape.Shape, error) {
	s, err := shapelang.Parse(word, sess.inv)
	if err != nil {
		return nil, err
	}
	for _, rr := range sess.rules {
		input := s.Clone()
		out, ok := rr.Apply(s)
		if !ok {
			reason := rule.SubruleMismatch
			if !sess.selector(rr.Rule()) {
				reason = rule.RuleDisabledBySelector
			}
			sess.display.RuleNotApplied(rr.Rule(), input, reason)
			continue
		}
		s = out
		relabel(s, sess.inv)
		sess.display.RuleApplied(rr.Rule(), input, s)
	}
	s.Compact()
	return s, nil
}

// Render prints the recorded derivation of word and starts a new one.
func (sess *Session) Render(word string) {
	sess.display.Render(word)
}

// Forget drops the recorded derivation.
func (sess *Session) Forget() {
	sess.display.Clear()
}

// relabel updates the labels of rewritten nodes. A segment whose features equal
// those of an inventory segment gets the segment's symbol; other labels are kept.
func relabel(s *shape.Shape, inv *shapelang.Inventory) {
	for _, id := range s.Nodes() {
		n := s.Node(id)
		if n.IsDeleted() || n.Type != shape.Segment {
			continue
		}
		if sym := symbolFor(inv, n.Features); sym != "" {
			n.Label = sym
		}
	}
}

// symbolFor finds the symbol of a segment with the given features. Symbols of
// an inventory shadow those of its parents. If more than one symbol matches, the
// lexically smallest is chosen.
func symbolFor(inv *shapelang.Inventory, b feature.Bundle) string {
	seen := make(map[string]bool)
	found := ""
	for ; inv != nil; inv = inv.Parent {
		inv.Each(func(sym string, seg *shapelang.Segment) {
			if seen[sym] {
				return
			}
			seen[sym] = true
			if seg.Type == shape.Segment && seg.Features.Equal(b) && (found == "" || sym < found) {
				found = sym
			}
		})
	}
	return found
}
