package pattern

import (
	"errors"
	"testing"

	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var (
	cons  = feature.Bundle{"cons": feature.Plus}
	vowel = feature.Bundle{"cons": feature.Minus}
)

func TestExprQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.pattern")
	defer teardown()
	//
	e := Seq(
		Group(2, Segment(feature.Bundle{"voice": feature.Var("x")})),
		Group(1, Segment(cons)),
		Ahead(Group(5, Segment(feature.Bundle{"high": feature.Var("y"), "voice": feature.NegVar("x")}))),
	)
	assert.Equal(t, []int{1, 2}, e.Groups(), "groups inside assertions do not capture")
	assert.Equal(t, 5, e.MaxGroup())
	assert.Equal(t, []string{"x", "y"}, e.Variables())
	e = Seq(Segment(cons), NotAhead(Segment(feature.Bundle{"voice": feature.Var("z")})))
	assert.Empty(t, e.Variables(), "negative assertions do not bind")
	e = NotBehind(Seq(Segment(feature.Bundle{"voice": feature.Var("z")}), Ahead(Segment(feature.Bundle{"high": feature.Var("w")}))))
	assert.Empty(t, e.Variables())
}

func TestExprString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.pattern")
	defer teardown()
	//
	e := Seq(Segment(cons), Optional(Boundary()), NotAhead(Segment(vowel)))
	assert.Equal(t, "[+cons] (<Boundary>)? (?![-cons])", e.String())
	e = Alt(Group(1, RepeatLazy(Anchor(), 1, Unbounded)), Behind(Segment(vowel)))
	assert.Equal(t, "((1: (<Anchor>)+?) | (?<=[-cons]))", e.String())
}

func TestInvalidPatterns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.pattern")
	defer teardown()
	//
	invalid := []*Expr{
		Group(0, Segment(cons)),
		Repeat(Segment(cons), 2, 1),
		Repeat(Segment(cons), -1, Unbounded),
		Alt(),
		Constraint(0, nil),
		Seq(Segment(cons), nil),
		Ahead(Alt()),
	}
	for _, e := range invalid {
		_, err := NewMatcher(e, Settings{})
		assert.True(t, errors.Is(err, ErrInvalidPattern), "expected invalid pattern error for %s", e)
	}
	m, err := NewMatcher(Repeat(Segment(cons), 0, 0), Settings{})
	assert.NoError(t, err)
	assert.NotNil(t, m)
}
