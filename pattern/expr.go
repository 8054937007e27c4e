package pattern

import (
	"fmt"
	"strings"

	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/shape"
	"golang.org/x/exp/slices"
)

type exprKind int8

const (
	nodeExpr exprKind = iota
	seqExpr
	altExpr
	repeatExpr
	groupExpr
	assertExpr
)

// Unbounded is the maximum count for quantifiers without an upper bound.
const Unbounded = -1

// Expr is a node of a pattern expression tree. Expressions are created with the
// constructor functions of this package and are immutable afterwards.
type Expr struct {
	kind     exprKind
	types    shape.NodeType // node constraint: acceptable node types
	bundle   feature.Bundle // node constraint: features to unify
	children []*Expr
	min, max int  // repetition bounds
	lazy     bool // lazy repetition
	group    int  // group number
	ahead    bool // assertion on the right context
	negated  bool // negative assertion
}

// Constraint creates a pattern matching a single node. The node's type has to be
// one of types, and its features have to unify with b.
func Constraint(types shape.NodeType, b feature.Bundle) *Expr {
	return &Expr{kind: nodeExpr, types: types, bundle: b.Clone()}
}

// Segment creates a constraint for a segment node.
func Segment(b feature.Bundle) *Expr {
	return Constraint(shape.Segment, b)
}

// Boundary creates a constraint for a boundary node.
func Boundary() *Expr {
	return Constraint(shape.Boundary, nil)
}

// Anchor creates a constraint for one of the anchors of a shape, i.e. the edge
// of a word.
func Anchor() *Expr {
	return Constraint(shape.Anchor, nil)
}

// Seq creates a sequence of patterns.
func Seq(children ...*Expr) *Expr {
	return &Expr{kind: seqExpr, children: children}
}

// Alt creates an alternation of patterns. Alternatives are tried in order.
func Alt(children ...*Expr) *Expr {
	return &Expr{kind: altExpr, children: children}
}

// Repeat creates a greedy quantified pattern, matching e at least min times and
// at most max times. Use Unbounded for max to allow any number of repetitions.
func Repeat(e *Expr, min, max int) *Expr {
	return &Expr{kind: repeatExpr, children: []*Expr{e}, min: min, max: max}
}

// RepeatLazy is like Repeat, but tries fewer repetitions first.
func RepeatLazy(e *Expr, min, max int) *Expr {
	r := Repeat(e, min, max)
	r.lazy = true
	return r
}

// Optional matches e zero times or once.
func Optional(e *Expr) *Expr {
	return Repeat(e, 0, 1)
}

// Group creates capturing group number n (n > 0) for e.
func Group(n int, e *Expr) *Expr {
	return &Expr{kind: groupExpr, children: []*Expr{e}, group: n}
}

// Ahead creates an assertion for the right context. It succeeds if e matches
// immediately right of the current position, without consuming any nodes.
func Ahead(e *Expr) *Expr {
	return &Expr{kind: assertExpr, children: []*Expr{e}, ahead: true}
}

// Behind creates an assertion for the left context. It succeeds if e matches
// immediately left of the current position, without consuming any nodes.
func Behind(e *Expr) *Expr {
	return &Expr{kind: assertExpr, children: []*Expr{e}}
}

// NotAhead is a negative assertion for the right context.
func NotAhead(e *Expr) *Expr {
	a := Ahead(e)
	a.negated = true
	return a
}

// NotBehind is a negative assertion for the left context.
func NotBehind(e *Expr) *Expr {
	a := Behind(e)
	a.negated = true
	return a
}

// Groups returns the numbers of all capturing groups of e, sorted. Groups inside
// assertions are not included, as assertions do not capture.
func (e *Expr) Groups() []int {
	var groups []int
	e.walk(func(x *Expr) bool {
		if x.kind == groupExpr && !slices.Contains(groups, x.group) {
			groups = append(groups, x.group)
		}
		return x.kind != assertExpr
	})
	slices.Sort(groups)
	return groups
}

// MaxGroup returns the highest group number used in e, including groups inside
// assertions, or 0.
func (e *Expr) MaxGroup() int {
	max := 0
	e.walk(func(x *Expr) bool {
		if x.kind == groupExpr && x.group > max {
			max = x.group
		}
		return true
	})
	return max
}

// Variables returns the names of all feature variables e may bind, sorted.
// Variables inside negative assertions are not included, as bindings made by a
// negative assertion never survive it.
func (e *Expr) Variables() []string {
	var vars []string
	e.walk(func(x *Expr) bool {
		if x.kind == nodeExpr {
			for _, v := range x.bundle.Variables() {
				if !slices.Contains(vars, v) {
					vars = append(vars, v)
				}
			}
		}
		return x.kind != assertExpr || !x.negated
	})
	slices.Sort(vars)
	return vars
}

// walk visits e and its sub-expressions depth first. Sub-expressions of x are
// skipped if f(x) returns false.
func (e *Expr) walk(f func(*Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	for _, ch := range e.children {
		ch.walk(f)
	}
}

func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.kind {
	case nodeExpr:
		if len(e.bundle) == 0 {
			return fmt.Sprintf("<%s>", e.types)
		}
		return e.bundle.String()
	case seqExpr:
		return e.list(" ")
	case altExpr:
		return "(" + e.list(" | ") + ")"
	case repeatExpr:
		q := fmt.Sprintf("{%d,%d}", e.min, e.max)
		switch {
		case e.min == 0 && e.max == 1:
			q = "?"
		case e.min == 0 && e.max == Unbounded:
			q = "*"
		case e.min == 1 && e.max == Unbounded:
			q = "+"
		case e.max == Unbounded:
			q = fmt.Sprintf("{%d,}", e.min)
		}
		if e.lazy {
			q += "?"
		}
		return "(" + e.children[0].String() + ")" + q
	case groupExpr:
		return fmt.Sprintf("(%d: %s)", e.group, e.children[0])
	case assertExpr:
		op := "?<="
		if e.ahead {
			op = "?="
		}
		if e.negated {
			op = strings.Replace(op, "=", "!", 1)
		}
		return "(" + op + e.children[0].String() + ")"
	}
	return "?"
}

func (e *Expr) list(sep string) string {
	s := make([]string, len(e.children))
	for i, ch := range e.children {
		s[i] = ch.String()
	}
	return strings.Join(s, sep)
}
