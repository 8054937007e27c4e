/*
Package morphon is a toolbox for applying phonological rewrite rules to words.

Words are modelled as shapes: chains of segment, boundary and anchor nodes carrying
feature bundles. Rules consist of a left-hand pattern and a number of subrules,
each pairing a contextual environment with an output template. Package structure
is as follows:

■ feature: Package feature implements opaque, unifiable feature values, feature
bundles and variable bindings.

■ shape: Package shape implements the annotated node sequence rules operate on.
Sub-package shapelang provides a small notation for writing shapes down.

■ pattern: Package pattern implements pattern expressions and a backtracking
matcher with capturing groups, variables and context assertions.

■ rule: Package rule implements rewrite rules, the three kinds of output
construction and the iterative and simultaneous application strategies.

■ trace: Package trace implements collaborators receiving notifications about
rule applications.

■ cmd/morphon: Command morphon applies a built-in rule cascade to words, either
from the command line or in an interactive session.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package morphon
