/*
Command morphon applies a cascade of phonological rewrite rules to words.

Words are written in the notation of package shapelang, e.g.

    morphon apply "b e t o d" "k a b s"

prints the surface form of each word. Option --tree renders the derivation,
i.e. every rule applied to the word. Sub-command repl starts an interactive
session:

    morphon repl
    morphon> t a g
    t a g
    └── final-devoicing ⇒ t a k
        └── from t a g

The rule set is built in. It consists of intervocalic h-deletion, regressive
voicing assimilation, backness harmony, schwa epenthesis and final devoicing,
applied in this order.

A YAML configuration file may set the trace level, override the application
mode of all rules, disable rules by name and add segments to the inventory:

    trace: Debug
    mode: simultaneous
    disabled: [ schwa-epenthesis ]
    segments:
      x: "[-syl +cons -son -voice +cont place=dorsal]"
    show_failures: true

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphon.cli'
func tracer() tracing.Trace {
	return tracing.Select("morphon.cli")
}

// traceKeys are the trace keys of all morphon packages.
var traceKeys = []string{
	"morphon.cli",
	"morphon.feature",
	"morphon.shape",
	"morphon.pattern",
	"morphon.rule",
	"morphon.trace",
}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}
