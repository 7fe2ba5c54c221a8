/*
Package html reads XHTML and HTML documents into trees of golang.org/x/net/html
nodes, ready to be styled.

Parse is more strict than the HTML5 parsing algorithm of x/net/html: elements
left open at a mismatched end tag or at the end of input are dropped together
with their content and reported as skipped subtrees, with the line and column
of their start tag. Elements whose end tag is optional in HTML (p, li, dt,
dd, table rows and cells, …) are closed implicitly. A document without html
or body elements gets them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.input'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.input")
}
