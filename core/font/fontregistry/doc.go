/*
Package fontregistry manages a registry for loaded fonts.

A Registry is the standard font metrics provider. Clients construct it,
share it between concurrent layout runs and close it when done:

    reg := fontregistry.NewRegistry(resources.Locator(conf))
    defer reg.Close()
    result := layout.Layout(doc, viewport, reg, opts)

Fonts are resolved on first use: fonts compiled into the binary first, then
through the locators given at construction time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'xtl.fonts'
func tracer() tracing.Trace {
	return tracing.Select("xtl.fonts")
}
