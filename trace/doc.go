/*
Package trace implements tracers for rule applications.

A tracer receives a notification at the end of every application of a rewrite
rule (see rule.Tracer). This package provides

    Recorder   keeps a log of events, e.g. for tests or later inspection
    Log        writes events to the 'morphon.trace' trace
    Display    renders a derivation as a tree on the terminal
    Tee        forwards events to several tracers

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package trace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphon.trace'.
func tracer() tracing.Trace {
	return tracing.Select("morphon.trace")
}
