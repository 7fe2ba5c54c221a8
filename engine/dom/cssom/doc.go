/*
Package cssom implements a CSS object model and the CSS cascade.

A CSSOM collects style rules from a built-in user-agent stylesheet, from
<style> elements of a document, and from style attributes. It then computes
the styles of every element and text node, producing a styled tree:

    om := cssom.NewCSSOM(true)
    styled, diags := om.Style(doc)

Rules are applied by origin, importance, selector specificity and source
order; style attributes come last. Stylesheets are parsed with
github.com/aymerick/douceur, selectors are matched with
github.com/andybalholm/cascadia.

Properties the layout engine does not support are dropped, and an
UnsupportedProperty diagnostic carrying the element path is recorded once
per declaration.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.style'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.style")
}
