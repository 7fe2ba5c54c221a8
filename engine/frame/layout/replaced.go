package layout

import (
	"image"
	"strconv"
	"strings"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/dom/styledtree"
	"github.com/npillmayer/xtl/engine/frame"
)

// layoutImage lays out an `<img>` element as a block-level replaced box.
// The size is taken from CSS, from the width and height attributes or from
// the image itself, in this order. A missing dimension is scaled to keep
// the aspect ratio of the image.
func (l *layouter) layoutImage(n *styledtree.Node, f *flow) frame.BoxID {
	styles := n.Styles()
	id := l.arena.New(frame.ReplacedBox, n.Path())
	box := l.arena.Box(id)
	box.Style = frame.BoxStyleFromStyles(styles, isRTL(styles))
	dims := frame.DimensionsFromStyles(styles, &l.diags, n.Path())
	basis := l.basis(styles)
	basis.Containing = f.x1 - f.x0
	iw, ih, img := l.intrinsicSize(n)
	box.Image = img
	w, wok := dims.W.Resolve(basis)
	h, hok := dims.H.Resolve(basis)
	hok = hok && !dims.H.IsPercent()
	switch {
	case wok && !hok && iw > 0:
		h = w.MulDiv(int64(ih), int64(iw))
	case hok && !wok && ih > 0:
		w = h.MulDiv(int64(iw), int64(ih))
	case !wok && !hok:
		w, h = iw, ih
	}
	dims.W, dims.H = css.SomeDimen(w), css.SomeDimen(h)
	if err := frame.FixDimensionsFromEnclosingWidth(box, dims, f.x1-f.x0, basis, nil); err != nil {
		l.warnf(core.InvalidValue, n.Path(), "%v", err)
	}
	f.margins = append(f.margins, box.Margins[frame.Top])
	l.placeTop(box, f)
	frame.FixHeight(box, dims, h, basis)
	l.placeBottom(box, f, nil)
	l.checkOverflow(box, f)
	return id
}

// intrinsicSize returns the size of an image element from its attributes
// and from the image, if it can be loaded.
func (l *layouter) intrinsicSize(n *styledtree.Node) (w, h dimen.Dimen, img image.Image) {
	src, _ := n.Attr("src")
	if img = l.loadImage(n.Path(), src); img != nil {
		b := img.Bounds()
		w, h = dimen.Dimen(b.Dx())*dimen.PX, dimen.Dimen(b.Dy())*dimen.PX
	}
	aw, wok := pixelAttr(n, "width")
	ah, hok := pixelAttr(n, "height")
	switch {
	case wok && hok:
		w, h = aw, ah
	case wok:
		if w > 0 {
			h = aw.MulDiv(int64(h), int64(w))
		}
		w = aw
	case hok:
		if h > 0 {
			w = ah.MulDiv(int64(w), int64(h))
		}
		h = ah
	}
	return w, h, img
}

func (l *layouter) loadImage(path, src string) image.Image {
	if img, ok := l.images[src]; ok {
		return img
	}
	var img image.Image
	if src == "" {
		l.warnf(core.InvalidValue, path, "image without source")
	} else if l.vp.Images == nil {
		l.warnf(core.InvalidValue, path, "no image loader for %q", src)
	} else {
		var err error
		if img, err = l.vp.Images(src); err != nil {
			l.warnf(core.InvalidValue, path, "cannot load image %q: %v", src, err)
			img = nil
		}
	}
	if img != nil || l.quiet == 0 {
		l.images[src] = img
	}
	return img
}

func pixelAttr(n *styledtree.Node, key string) (dimen.Dimen, bool) {
	s, ok := n.Attr(key)
	if !ok {
		return 0, false
	}
	k, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if err != nil || k < 0 {
		return 0, false
	}
	return dimen.Dimen(k) * dimen.PX, true
}
