/*
Package feature implements feature values and feature bundles for phonological
segments.

The value algebra is deliberately small. Values are opaque to the rest of the
module: clients only ask whether a value, given in a pattern, unifies with a
value found on a node, and whether two values are equal. Symbols and sets of
symbols are provided, together with the binary values Plus and Minus.

Variables ("alpha variables") may stand in for a value in patterns and output
templates. During a match attempt variables are bound in a Bindings object.
Bindings keep a trail, so that a backtracking matcher is able to revert to the
exact state of an earlier choice point.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package feature

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphon.feature'.
func tracer() tracing.Trace {
	return tracing.Select("morphon.feature")
}
