/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size. The name
is reminiscent of the wooden boxes of typesetters in the era of metal type.
An example is "Helvetica regular 11pt".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Layout does not talk to fonts directly, but to a MetricsProvider. Providers
are constructed by clients and shared between concurrent layout runs.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"os"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'xtl.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.fonts")
}

// ScalableFont is a parsed font file.
// The SFNT container is safe for concurrent reads, as long as every
// goroutine uses its own sfnt.Buffer.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a scalable font at a given size and resolution, ready for
// rasterization.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               dimen.Dimen
	dpi                int
}

// LoadOpenTypeFont loads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses font data in OpenType or TrueType format.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font data")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// PrepareCase creates a typecase for a font size and an output resolution.
func (sf *ScalableFont) PrepareCase(size dimen.Dimen, dpi int) (*TypeCase, error) {
	typecase := &TypeCase{scalableFontParent: sf, size: size, dpi: dpi}
	if size < dimen.BP || size > 1000*dimen.BP {
		tracer().Errorf("font size must be 1bp <= size <= 1000bp, is %s; set to 10bp", size)
		typecase.size = 10 * dimen.BP
	}
	if dpi <= 0 {
		typecase.dpi = 72
	}
	options := &opentype.FaceOptions{
		Size:    typecase.size.Points(),
		DPI:     float64(typecase.dpi),
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create face for %s", sf.Fontname)
	}
	typecase.face = f
	return typecase, nil
}

// ScalableFontParent returns the font a typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Face returns the Go font face of a typecase.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// Size returns the size of a typecase.
func (tc *TypeCase) Size() dimen.Dimen {
	return tc.size
}

// --- Packaged fonts --------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		var err error
		fallbackFont, err = ParseOpenTypeFont(goregular.TTF)
		if err != nil {
			panic("cannot load default font") // this cannot happen
		}
		fallbackFont.Fontname = "Go"
		fallbackFont.Filepath = "packaged"
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is immutable after loading.
var fallbackFont *ScalableFont

// PackagedFamily is the family name of the fonts which are compiled into
// every binary.
const PackagedFamily = "Go"

// PackagedFont returns the raw data of a font compiled into the binary, if
// any matches the family, style and weight. Generic CSS families
// ("sans-serif", "serif", "monospace", …) map to the Go fonts.
func PackagedFont(family string, style xfont.Style, weight xfont.Weight) ([]byte, string, bool) {
	mono := false
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "go", "go regular", "sans", "sans-serif", "serif", "system-ui", "cursive", "fantasy":
	case "go mono", "monospace":
		mono = true
	default:
		return nil, "", false
	}
	italic := style == xfont.StyleItalic || style == xfont.StyleOblique
	bold := weight >= xfont.WeightSemiBold
	switch {
	case mono && bold && italic:
		return gomonobolditalic.TTF, "Go Mono Bold Italic", true
	case mono && bold:
		return gomonobold.TTF, "Go Mono Bold", true
	case mono && italic:
		return gomonoitalic.TTF, "Go Mono Italic", true
	case mono:
		return gomono.TTF, "Go Mono", true
	case bold && italic:
		return gobolditalic.TTF, "Go Bold Italic", true
	case bold:
		return gobold.TTF, "Go Bold", true
	case italic:
		return goitalic.TTF, "Go Italic", true
	}
	return goregular.TTF, "Go Regular", true
}

// --- Names -----------------------------------------------------------------

// Descriptor describes a font family available from some source, e.g. the
// fontconfig list of the operating system.
type Descriptor struct {
	Family   string
	Path     string
	Variants []string
}

// NormalizeFontname creates a registry key from a font name, a style and
// a weight.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if ext := path.Ext(fname); ext == ".ttf" || ext == ".otf" {
		fname = fname[:len(fname)-len(ext)]
	}
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	switch weight {
	case xfont.WeightThin, xfont.WeightLight, xfont.WeightExtraLight:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold, xfont.WeightBlack:
		fname += "-bold"
	}
	return fname
}

// GuessStyleAndWeight tries to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := path.Base(fontfilename)
	basename = basename[:len(basename)-len(path.Ext(basename))]
	basename = strings.ToLower(basename)
	if !strings.Contains(basename, strings.ToLower(pattern)) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	return s == style && w == weight
}
