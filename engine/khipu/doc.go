/*
Package khipu encodes text runs as lists of typesetting items.

A khipu is a string of knots, as in the knot records of the Inka: text
boxes, glue, kerns, penalties and discretionaries, in the tradition of
TeX's horizontal lists. Text boxes carry measured glyphs, glue carries the
natural width of inter-word spaces plus their capability to stretch or
shrink. Penalties and discretionaries mark the positions where a line may
be broken. Line breakers operate on khipus only and never look at the text
again.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package khipu

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.khipu'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.khipu")
}
