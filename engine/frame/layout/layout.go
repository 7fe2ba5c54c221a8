package layout

import (
	"image"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/config"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	params "github.com/npillmayer/xtl/core/parameters"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/dom/styledtree"
	"github.com/npillmayer/xtl/engine/frame"
)

// ImageLoader loads the image referenced by the src attribute of an
// `<img>` element.
type ImageLoader func(src string) (image.Image, error)

// Viewport is the initial containing block of a layout.
type Viewport struct {
	Width  dimen.Dimen
	Height dimen.Dimen // minimum height of the canvas
	Images ImageLoader // may be nil
}

// Result is the outcome of a layout run.
type Result struct {
	Arena       *frame.Arena
	Root        frame.BoxID
	DisplayList DisplayList
	Width       dimen.Dimen // of the canvas
	Height      dimen.Dimen // of the canvas
	Diagnostics core.Diagnostics
}

// layouter holds the state of a layout run.
type layouter struct {
	arena     *frame.Arena
	provider  font.MetricsProvider
	cfg       config.Options
	regs      *params.TypesettingRegisters
	vp        Viewport
	rootSize  dimen.Dimen // font size of the root element
	fallbacks []font.Ref  // configured fallback fonts
	images    map[string]image.Image
	quiet     int // > 0 while measuring content, suppresses diagnostics
	diags     core.Diagnostics
}

// Layout lays out a styled document for a viewport. Glyphs are measured with
// provider, which has to be supplied by the caller.
//
// Layout never fails. Problems like unsupported content, overflowing lines
// or missing glyphs are reported in the diagnostics of the result, and the
// layout is done on a best-effort basis.
func Layout(doc *styledtree.Node, vp Viewport, provider font.MetricsProvider, cfg config.Options) *Result {
	l := &layouter{
		arena:    frame.NewArena(256),
		provider: provider,
		cfg:      cfg,
		regs:     cfg.Registers(),
		vp:       vp,
		rootSize: css.DefaultFontSize,
		images:   make(map[string]image.Image),
	}
	for _, f := range cfg.FallbackFonts {
		l.fallbacks = append(l.fallbacks, font.Ref{Family: f})
	}
	res := &Result{Arena: l.arena, Root: frame.NoBox, Width: vp.Width, Height: vp.Height}
	if doc == nil || provider == nil {
		res.Diagnostics.Errorf(core.InvalidValue, core.Location{}, "layout needs a document and a metrics provider")
		return res
	}
	root := doc
	if root.IsText() || root.Tag() == "" {
		for _, ch := range root.Children() {
			if ch.Tag() != "" {
				root = ch
				break
			}
		}
	}
	if sz, ok := css.FontSize(root.Styles().Property("font-size"), css.DefaultFontSize, css.DefaultFontSize); ok {
		l.rootSize = sz
	}
	tracer().Infof("layout of <%s> for viewport width %v", root.Tag(), vp.Width)
	f := newFlow(0, vp.Width, 0, &frame.FloatList{})
	res.Root = l.layoutBlock(root, f, blockParams{root: true})
	f.flushMargins()
	h := dimen.Max(f.y, f.floats.Bottom())
	res.Height = dimen.Max(vp.Height, h)
	if rb := l.arena.Box(res.Root); rb != nil {
		res.Width = dimen.Max(vp.Width, rb.MarginBox().BotR.X)
	}
	res.DisplayList = Flatten(l.arena, res.Root)
	res.Diagnostics = l.diags
	tracer().Infof("layout created %d boxes, canvas is %v x %v, %d diagnostics",
		l.arena.Len(), res.Width, res.Height, len(res.Diagnostics))
	return res
}

func (l *layouter) addDiagnostics(path string, ds core.Diagnostics) {
	if l.quiet > 0 {
		return
	}
	for _, d := range ds {
		if d.Location.Path == "" {
			d.Location.Path = path
		}
		l.diags.Add(d)
	}
}
