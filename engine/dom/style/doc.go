/*
Package style holds CSS property maps for styled document nodes.

A PropertyMap carries the computed properties of a node. The package knows
which properties the layout engine supports, which of them are inherited,
their initial values, and how shorthand properties expand into longhands:

    margin: 10px 20px    →  margin-top: 10px, margin-right: 20px, …

Clients should not rely on properties outside of the supported table; they
are dropped by the cascade with a diagnostic.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.style'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.style")
}
