/*
Package rule implements phonological rewrite rules on shapes.

A rule has a left-hand side (a sequence of patterns, the target) and a list of
subrules. Every subrule pairs a right-hand side (a list of output templates) with
a left and a right environment. Subrules are mutually exclusive contextual
variants of a rule; they are tried in the order of declaration and the first one
to match wins.

How a subrule rewrites a shape depends on the structure of the rule and is
decided once, when the rule is constructed:

    Feature     LHS and RHS have the same length: features of the RHS are merged
                into the matched nodes, position by position
    Narrow      LHS is longer than RHS: surplus nodes are marked as deleted
    Epenthesis  LHS is empty: new nodes are inserted between the environments

Rules are applied either iteratively or simultaneously. An iterative rule scans a
shape in the rule's direction and rewrites each match before looking for the next
one, so later matches may see the effects of earlier ones. A simultaneous rule
first collects all matches, keeping only non-overlapping ones (the leftmost wins),
and then rewrites all of them.

RewriteRule wraps a rule for use by a morphological engine: it checks the rule
against a selector before running it, and reports the outcome to a Tracer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rule

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphon.rule'.
func tracer() tracing.Trace {
	return tracing.Select("morphon.rule")
}
