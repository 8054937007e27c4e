/*
Package pattern implements patterns over shapes and a backtracking matcher for
them.

A pattern is an expression tree built from node constraints, sequences,
alternations, quantified sub-patterns, numbered capturing groups and context
assertions:

    p := pattern.Seq(
        pattern.Group(1, pattern.Constraint(shape.Segment, feature.Bundle{"cons": feature.Plus})),
        pattern.Repeat(pattern.Constraint(shape.Boundary, nil), 0, 1),
        pattern.Ahead(pattern.Constraint(shape.Segment, feature.Bundle{"cons": feature.Minus})),
    )

A Matcher compiles a pattern together with matching settings (direction, node
filter, default features) into an instruction program. Matching a shape at a
start node yields a lazy sequence of Match results, enumerated in backtracking
order: alternatives and quantifier expansions are tried in the order they are
declared, greedy quantifiers trying more iterations first. Asking for the next
result resumes at the most recent choice point; variable bindings and group
registers are restored from a trail, not re-computed.

Node constraints may contain feature variables (see package feature). A variable
is bound at its first occurrence during a match attempt, and later occurrences
require the same value. A conflicting occurrence fails the current alternative
only.

Quantifier iterations which do not consume any node fail, and the number of
iterations on a path is bounded by Settings.MaxDepth. Exceeding the bound fails
the current alternative. For debugging, configuration flag
"panic-on-depth-exceeded" turns this into a panic.

Compiled matchers are immutable and may be shared between goroutines, as long
as every goroutine matches a shape of its own.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pattern

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphon.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("morphon.pattern")
}
