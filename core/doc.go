/*
Package core holds types shared by all layout stages: error codes and the
diagnostics list which accompanies every layout result.

Layout never fails outright. Every stage returns its best-effort result
together with a list of diagnostics, which clients may inspect, log or
ignore. Diagnostics carry a kind, a severity and an optional location in the
input document.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package core

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.core'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.core")
}
