package pattern

import (
	"sync/atomic"

	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/shape"
	"github.com/npillmayer/schuko/tracing"
)

// DefaultMaxDepth is the default bound for quantifier iterations.
const DefaultMaxDepth = 256

// Settings control how a pattern is matched.
type Settings struct {
	Direction   morphon.Direction
	Filter      shape.Filter   // nodes rejected by the filter are invisible; default shape.DefaultFilter
	UseDefaults bool           // fill unspecified node features from Defaults
	Defaults    feature.Bundle // default feature values
	MaxDepth    int            // bound for quantifier iterations; default DefaultMaxDepth
	ID          string         // copied to every match
	Priority    int            // copied to every match
}

// Matcher is a compiled pattern. Create with NewMatcher.
type Matcher struct {
	expr     *Expr
	prog     *program
	settings Settings
	runs     atomic.Int64
}

// NewMatcher compiles a pattern. It returns an error wrapping ErrInvalidPattern
// if the pattern is malformed.
func NewMatcher(e *Expr, settings Settings) (*Matcher, error) {
	prog, err := compile(e, settings.Direction)
	if err != nil {
		return nil, err
	}
	if settings.Filter == nil {
		settings.Filter = shape.DefaultFilter
	}
	if settings.MaxDepth <= 0 {
		settings.MaxDepth = DefaultMaxDepth
	}
	if !settings.UseDefaults {
		settings.Defaults = nil
	}
	m := &Matcher{expr: e, prog: prog, settings: settings}
	tracer().Debugf("compiled pattern %s: %s", settings.ID, e)
	if tracer().GetTraceLevel() >= tracing.LevelDebug {
		prog.dump()
	}
	return m, nil
}

// Pattern returns the pattern expression of m.
func (m *Matcher) Pattern() *Expr {
	return m.expr
}

// Settings returns the settings m has been compiled with.
func (m *Matcher) Settings() Settings {
	return m.settings
}

// Runs returns the number of match attempts started with m.
func (m *Matcher) Runs() int64 {
	return m.runs.Load()
}

// Match starts a match attempt on shape s at node start. Matching proceeds in the
// direction of m, and the first node of a match (in this direction) is start.
// Results are produced lazily by the returned iterator.
func (m *Matcher) Match(s *shape.Shape, start shape.NodeID) *Iterator {
	m.runs.Add(1)
	it := &Iterator{}
	if !s.Contains(start) {
		it.done = true
		return it
	}
	it.vm = newVM(m.prog, &m.settings, s, feature.NewBindings(), start)
	return it
}

// First is a shortcut to get the first match at a start node.
func (m *Matcher) First(s *shape.Shape, start shape.NodeID) (*Match, bool) {
	it := m.Match(s, start)
	if it.Next() {
		return it.Match(), true
	}
	return nil, false
}

// Iterator enumerates the matches of a match attempt.
//
// Usage:
//
//     it := matcher.Match(s, start)
//     for it.Next() {
//         m := it.Match()
//         …
//     }
type Iterator struct {
	vm      *vm
	match   *Match
	started bool
	done    bool
}

// Next searches for the next match. It returns false if there are no more
// matches.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	ok := false
	if !it.started {
		it.started = true
		ok = it.vm.run()
	} else if it.vm.backtrack() {
		ok = it.vm.run()
	}
	if !ok {
		it.done, it.match = true, nil
		return false
	}
	it.match = it.vm.result()
	tracer().Debugf("match %s", it.match)
	return true
}

// Match returns the current match.
func (it *Iterator) Match() *Match {
	return it.match
}
