package rule

import (
	"errors"
	"fmt"

	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/pattern"
	"github.com/npillmayer/morphon/shape"
)

// Errors for malformed rules, detected when a rule is constructed.
var (
	ErrUnsupportedShape = errors.New("unsupported rule shape")
	ErrUnknownGroup     = errors.New("output references unknown group")
	ErrUnboundVariable  = errors.New("output uses unbound variable")
)

// Mode is the application mode of a rule.
type Mode int8

// Application modes.
const (
	Iterative Mode = iota
	Simultaneous
)

func (m Mode) String() string {
	if m == Simultaneous {
		return "simultaneous"
	}
	return "iterative"
}

// ParseMode reads a mode name, as used in configuration files.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "iterative":
		return Iterative, nil
	case "simultaneous":
		return Simultaneous, nil
	}
	return Iterative, fmt.Errorf("unknown application mode '%s'", name)
}

// Rule is a phonological rewrite rule. Rules are configured once and must not be
// changed after a RewriteRule has been created for them.
type Rule struct {
	Name        string
	LHS         []*pattern.Expr // target, one pattern per output position
	Subrules    []Subrule
	Direction   morphon.Direction
	Mode        Mode
	Types       shape.NodeType // node types visible to the rule; default shape.AnyType
	UseDefaults bool
	Defaults    feature.Bundle // default feature values, used if UseDefaults is set
}

func (r *Rule) String() string {
	return fmt.Sprintf("<rule %s>", r.Name)
}

// Subrule is a contextual variant of a rule.
type Subrule struct {
	ID    string        // optional, defaults to "<rule>/<index>"
	RHS   []Output      // output templates
	Left  *pattern.Expr // left environment, may be nil
	Right *pattern.Expr // right environment, may be nil
}

// Output is an output template of a subrule.
//
// For Feature and Narrow subrules, output i rewrites the nodes matched by LHS
// pattern i: Features are merged into the node's features, and Label, if set,
// replaces the node's label. For Epenthesis subrules, every output creates a new
// node of type Type (default shape.Segment).
//
// FromGroup, if not 0, names a capturing group of the LHS. The features of the
// first node of this group are copied before Features are merged.
type Output struct {
	Type      shape.NodeType
	Label     string
	Features  feature.Bundle
	FromGroup int
}
