/*
Command xtlrender lays out an XHTML document and renders it to a PNG image.

Usage:

    xtlrender [flags] document.html

Flags select the output file, viewport width, stylesheets, fonts and layout
options. Problems found while reading, styling and laying out the document
are listed after rendering. With flag -dot the box tree is written in
GraphViz format. Flag -stream saves the drawing commands, which a later call
with flag -replay renders without laying out the document again.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/xtl/backend/gfx"
	"github.com/npillmayer/xtl/backend/gfx/paintstream"
	"github.com/npillmayer/xtl/backend/gfx/raster"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/config"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/core/font/fontregistry"
	"github.com/npillmayer/xtl/core/locate/resources"
	"github.com/npillmayer/xtl/engine/dom/cssom"
	"github.com/npillmayer/xtl/engine/frame/framedebug"
	"github.com/npillmayer/xtl/engine/frame/layout"
	"github.com/npillmayer/xtl/engine/glyphing"
	"github.com/npillmayer/xtl/input/html"
	"github.com/pterm/pterm"
)

// tracer traces with key 'xtl.cli'
func tracer() tracing.Trace {
	return tracing.Select("xtl.cli")
}

var traceKeys = []string{"xtl.cli", "xtl.core", "xtl.fonts", "xtl.style", "xtl.text",
	"xtl.khipu", "xtl.frame", "xtl.glyphing", "xtl.gfx", "xtl.input", "xtl.resources"}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	out := flag.String("o", "", "Output PNG file (default: document name with .png)")
	width := flag.Int("width", 800, "Viewport width in pixels")
	sheets := flag.String("css", "", "Comma separated list of additional stylesheets")
	fonts := flag.String("fonts", "", "Comma separated list of font files")
	justify := flag.String("justify", "greedy", "Line breaking [greedy|optimal]")
	gamma := flag.Float64("gamma", 1.0, "Display gamma")
	subpixel := flag.Int("subpixel", 4, "Subpixel positions per pixel")
	hyphenate := flag.Bool("hyphenate", false, "Hyphenate words")
	lang := flag.String("lang", "en", "Default language")
	dpi := flag.Int("dpi", 72, "Output resolution")
	fallback := flag.String("fallback", "", "Comma separated list of fallback font families")
	dot := flag.String("dot", "", "Write box tree in GraphViz format to file")
	stream := flag.String("stream", "", "Write drawing commands to file")
	replay := flag.Bool("replay", false, "Input is a file written with -stream")
	flag.Parse()
	if flag.NArg() != 1 {
		pterm.Error.Println("Usage: xtlrender [flags] document.html")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":           "go",
		"layout.justify-mode":       *justify,
		"layout.gamma":              strconv.FormatFloat(*gamma, 'f', -1, 64),
		"layout.subpixel-precision": strconv.Itoa(*subpixel),
		"layout.hyphenation":        strconv.FormatBool(*hyphenate),
		"layout.language":           *lang,
		"layout.dpi":                strconv.Itoa(*dpi),
		"layout.fallback-fonts":     *fallback,
	}
	for _, key := range traceKeys {
		conf["trace."+key] = *tlevel
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to xtlrender")
	tracer().Infof("Trace level is %s", *tlevel)

	opts, diags := config.FromConfiguration(conf)
	inpath := flag.Arg(0)
	if *out == "" {
		*out = strings.TrimSuffix(inpath, filepath.Ext(inpath)) + ".png"
	}
	r := &renderer{
		opts:   opts,
		conf:   conf,
		fonts:  splitList(*fonts),
		sheets: splitList(*sheets),
		width:  dimen.Dimen(*width) * dimen.PX,
		base:   filepath.Dir(inpath),
		stream: *stream,
	}
	if *replay {
		img, err := r.replay(inpath)
		if err == nil {
			err = resources.EncodePNG(img, *out)
		}
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			os.Exit(3)
		}
		pterm.Success.Printf("Wrote %s\n", *out)
		return
	}
	img, result, err := r.render(inpath, &diags)
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(3)
	}
	if err = resources.EncodePNG(img, *out); err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(4)
	}
	pterm.Success.Printf("Wrote %s (%dx%d px, %d boxes)\n", *out, img.Bounds().Dx(),
		img.Bounds().Dy(), result.Arena.Len())
	if *dot != "" {
		if err = writeDot(result, *dot); err != nil {
			pterm.Error.Println(core.UserMessage(err))
		}
	}
	printDiagnostics(diags)
	if diags.HasErrors() {
		os.Exit(5)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// renderer holds the settings for rendering a document.
type renderer struct {
	opts   config.Options
	conf   testconfig.Conf
	fonts  []string
	sheets []string
	width  dimen.Dimen
	base   string // directory of the document, for relative references
	stream string // file to save drawing commands to
}

func (r *renderer) render(inpath string, diags *core.Diagnostics) (image.Image, *layout.Result, error) {
	f, err := os.Open(inpath)
	if err != nil {
		return nil, nil, core.WrapError(err, core.EMISSING, "cannot open %s", inpath)
	}
	defer f.Close()
	doc, parseDiags, err := html.Parse(f)
	diags.Add(parseDiags...)
	if err != nil {
		return nil, nil, err
	}
	om := cssom.NewCSSOM(true)
	for _, sheet := range r.sheets {
		css, err := os.ReadFile(sheet)
		if err != nil {
			return nil, nil, core.WrapError(err, core.EMISSING, "cannot read stylesheet %s", sheet)
		}
		diags.Add(om.AddStylesFromString(string(css), cssom.Author)...)
	}
	styled, styleDiags := om.Style(doc)
	diags.Add(styleDiags...)
	if styled == nil {
		return nil, nil, core.Error(core.EINVALID, "document %s has no content", inpath)
	}
	registry := r.registry()
	defer registry.Close()
	r.preloadFallbacks(registry)
	vp := layout.Viewport{Width: r.width, Images: r.loadImage}
	result := layout.Layout(styled, vp, registry, r.opts)
	diags.Add(result.Diagnostics...)
	drv := raster.NewDriver(r.opts.DPI, registry)
	pos := glyphing.NewPositioner(registry, r.opts)
	if r.stream == "" {
		err = gfx.Render(result, pos, drv)
	} else {
		err = r.saveStream(result, pos, drv)
	}
	if err != nil {
		return nil, nil, err
	}
	return drv.Canvas, result, nil
}

func (r *renderer) registry() *fontregistry.Registry {
	locators := []fontregistry.Locator{resources.SystemFonts(r.conf)}
	if len(r.fonts) > 0 {
		locators = append([]fontregistry.Locator{resources.FontFiles(r.fonts...)}, locators...)
	}
	return fontregistry.NewRegistry(locators...)
}

// saveStream records the drawing commands for a layout result, writes them
// to r.stream and replays them to drv.
func (r *renderer) saveStream(result *layout.Result, pos *glyphing.Positioner, drv gfx.Driver) error {
	rec := paintstream.NewDriver()
	if err := gfx.Render(result, pos, rec); err != nil {
		return err
	}
	f, err := os.Create(r.stream)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", r.stream)
	}
	defer f.Close()
	if err = rec.Save(f); err != nil {
		return err
	}
	return rec.Replay(drv)
}

// replay rasterizes drawing commands saved with flag -stream.
func (r *renderer) replay(inpath string) (image.Image, error) {
	f, err := os.Open(inpath)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open %s", inpath)
	}
	defer f.Close()
	rec, err := paintstream.Load(f)
	if err != nil {
		return nil, err
	}
	registry := r.registry()
	defer registry.Close()
	drv := raster.NewDriver(r.opts.DPI, registry)
	if err = rec.Replay(drv); err != nil {
		return nil, err
	}
	return drv.Canvas, nil
}

// preloadFallbacks locates the fallback fonts concurrently, before layout
// asks for them one after the other.
func (r *renderer) preloadFallbacks(registry *fontregistry.Registry) {
	var promises []resources.TypeCasePromise
	for _, family := range r.opts.FallbackFonts {
		ref := font.Ref{Family: family}
		promises = append(promises, resources.ResolveTypeCase(registry, ref, 10*dimen.BP, r.opts.DPI))
	}
	for i, p := range promises {
		if _, err := p.TypeCase(); err != nil {
			pterm.Warning.Printf("fallback font %s: %s\n", r.opts.FallbackFonts[i], core.UserMessage(err))
		}
	}
}

func (r *renderer) loadImage(src string) (image.Image, error) {
	img, err := resources.ResolveImage(src, r.base).Image()
	if err != nil {
		return nil, err
	}
	return img, nil
}

func writeDot(result *layout.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", path)
	}
	defer f.Close()
	return framedebug.ToGraphViz(result.Arena, result.Root, f)
}

func printDiagnostics(diags core.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	data := pterm.TableData{{"Severity", "Kind", "Location", "Message"}}
	for _, d := range diags {
		var msg string
		if d.Err != nil {
			msg = core.UserMessage(d.Err)
		}
		data = append(data, []string{d.Severity.String(), d.Kind.String(), d.Location.String(), msg})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
