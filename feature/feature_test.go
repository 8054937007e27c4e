package feature

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolUnify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.feature")
	defer teardown()
	//
	place := NewSymbolSet("labial", "coronal", "labial")
	assert.Len(t, place, 2, "duplicates should be removed from symbol sets")
	assert.True(t, Symbol("coronal").Unify(place))
	assert.True(t, place.Unify(Symbol("labial")))
	assert.False(t, place.Unify(Symbol("dorsal")))
	assert.True(t, place.Unify(NewSymbolSet("dorsal", "coronal")))
	assert.True(t, Plus.Unify(Plus))
	assert.False(t, Plus.Unify(Minus))
	assert.False(t, Var("a").Unify(Plus), "unresolved variables never unify")
}

func TestBundleString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.feature")
	defer teardown()
	//
	b := Bundle{"voice": Plus, "cons": Minus, "place": Symbol("labial")}
	assert.Equal(t, "[-cons place=labial +voice]", b.String())
	assert.Equal(t, []string{"cons", "place", "voice"}, b.Names())
}

func TestBundleMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.feature")
	defer teardown()
	//
	b := Bundle{"voice": Minus, "cons": Plus}
	m := b.Merge(Bundle{"voice": Plus, "long": Plus})
	assert.Equal(t, Minus, b["voice"], "merge must not modify the receiver")
	assert.True(t, m.Equal(Bundle{"voice": Plus, "cons": Plus, "long": Plus}))
}

func TestBundleUnifyDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.feature")
	defer teardown()
	//
	constraint := Bundle{"voice": Minus}
	node := Bundle{"cons": Plus}
	b := NewBindings()
	assert.False(t, constraint.Unify(node, nil, b), "missing feature must not unify without defaults")
	assert.True(t, constraint.Unify(node, Bundle{"voice": Minus}, b), "defaults should fill missing features")
	assert.False(t, constraint.Unify(node, Bundle{"voice": Plus}, b))
}

func TestBundleUnifyVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.feature")
	defer teardown()
	//
	constraint := Bundle{"round": Var("a"), "back": Var("a")}
	b := NewBindings()
	require.True(t, constraint.Unify(Bundle{"round": Plus, "back": Plus}, nil, b))
	v, ok := b.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Plus, v)
	//
	b = NewBindings()
	assert.False(t, constraint.Unify(Bundle{"round": Plus, "back": Minus}, nil, b),
		"re-use of a variable requires equal values")
	assert.Equal(t, 0, b.Len(), "failed unification must undo its bindings")
}

func TestNegatedVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.feature")
	defer teardown()
	//
	b := NewBindings()
	require.True(t, Bundle{"voice": Var("a")}.Unify(Bundle{"voice": Plus}, nil, b))
	assert.True(t, Bundle{"voice": NegVar("a")}.Unify(Bundle{"voice": Minus}, nil, b))
	assert.False(t, Bundle{"voice": NegVar("a")}.Unify(Bundle{"voice": Plus}, nil, b))
	resolved, ok := Bundle{"voice": NegVar("a"), "cons": Plus}.Resolve(b)
	require.True(t, ok)
	assert.True(t, resolved.Equal(Bundle{"voice": Minus, "cons": Plus}))
	_, ok = Bundle{"voice": Var("b")}.Resolve(b)
	assert.False(t, ok, "unbound variables cannot be resolved")
}

func TestUnderspecifiedNodeValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.feature")
	defer teardown()
	//
	node := Bundle{"voice": Var("n"), "cons": Plus}
	b := NewBindings()
	assert.True(t, Bundle{"voice": Plus}.Unify(node, nil, b))
	assert.True(t, Bundle{"voice": Minus, "cons": Plus}.Unify(node, nil, b))
	assert.False(t, Bundle{"voice": Minus, "cons": Minus}.Unify(node, nil, b))
	assert.True(t, Bundle{"voice": Var("a")}.Unify(node, nil, b))
	_, ok := b.Lookup("a")
	assert.False(t, ok, "an underspecified node value must not bind a pattern variable")
	assert.Equal(t, 0, b.Len())
}

func TestBindingsTrail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.feature")
	defer teardown()
	//
	b := NewBindings()
	b.Bind("a", Plus)
	mark := b.Mark()
	b.Bind("b", Minus)
	b.Bind("c", Symbol("x"))
	c := b.Clone()
	b.Undo(mark)
	assert.Equal(t, []string{"a"}, b.Names())
	_, ok := b.Lookup("b")
	assert.False(t, ok)
	assert.Equal(t, 3, c.Len(), "clone must be independent of the original")
	assert.Equal(t, "{a=+ b=- c=x}", c.String())
	assert.Panics(t, func() { c.Bind("a", Minus) }, "bindings are append-only")
}
