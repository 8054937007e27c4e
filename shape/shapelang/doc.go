/*
Package shapelang implements a small notation for shapes.

A shape is written as a blank-separated list of segment symbols and boundaries:

    t a # a
    p a[+long] t
    [+cons -voice] a

Segment symbols are looked up in an inventory, which maps symbols to feature
bundles. Feature lists in brackets add to or override the features of the
inventory entry; a bracket list without a symbol denotes an unnamed segment.
Features are written as "+name" or "-name" for binary features, as "name=value"
for other values; a bare "name" is short for "+name". '#' denotes a boundary.

The notation is meant for test fixtures and command line tools. It does not
describe rules; patterns are built programmatically with package pattern.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shapelang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphon.shape'.
func tracer() tracing.Trace {
	return tracing.Select("morphon.shape")
}
