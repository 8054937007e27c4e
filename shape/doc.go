/*
Package shape implements shapes, the annotated node sequences phonological rules
operate on.

A shape is a doubly linked chain of nodes. Every node is a segment, a boundary or
an anchor and carries a feature bundle. Each shape starts with a Begin anchor and
ends with an End anchor. Outside of the anchors there are two invisible sentinel
nodes, which no filter will ever accept; a cursor moving over a shape will stop at
the sentinels instead of running off the chain.

Nodes live in an arena owned by the shape, links are indices into the arena. Node
identities (type NodeID) are stable: inserting nodes does not change the identity
of existing nodes, and deleting a node just marks it. Physical removal of deleted
nodes happens in a separate step (Shape.Compact), usually between the application
of two rules.

Clients may add annotations to shapes. An annotation covers a range of nodes and
carries a type and a feature bundle of its own.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shape

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphon.shape'.
func tracer() tracing.Trace {
	return tracing.Select("morphon.shape")
}
