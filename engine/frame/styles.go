package frame

import (
	"image/color"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/engine/dom/style"
	"github.com/npillmayer/xtl/engine/dom/style/css"
)

var sides = [4]string{"top", "right", "bottom", "left"}

// DimensionsFromStyles collects the specified dimensions of a box from its
// computed styles. Values which are not valid dimensions are reported to
// diags and replaced by their initial value.
func DimensionsFromStyles(styles *style.PropertyMap, diags *core.Diagnostics, path string) *Dimensions {
	dims := InitEmptyDimensions(nil)
	loc := core.Location{Path: path}
	dimension := func(key string, dflt css.DimenT) css.DimenT {
		p := styles.Property(key)
		if p.IsEmpty() {
			return dflt
		}
		d := css.DimenOption(p)
		if d.IsNone() {
			if diags != nil {
				diags.Warnf(core.InvalidValue, loc, "%s: invalid dimension %q", key, p)
			}
			return dflt
		}
		return d
	}
	dims.W = dimension("width", css.AutoDimen())
	dims.H = dimension("height", css.AutoDimen())
	dims.MinW = dimension("min-width", css.SomeDimen(0))
	dims.MaxW = dimension("max-width", css.DimenOption("none"))
	for dir, side := range sides {
		dims.Padding[dir] = dimension("padding-"+side, css.SomeDimen(0))
		dims.Margins[dir] = dimension("margin-"+side, css.SomeDimen(0))
		if css.BorderStyleOf(styles.Property("border-"+side+"-style")) == css.BorderNone {
			dims.BorderWidth[dir] = css.SomeDimen(0)
			continue
		}
		bw := css.BorderWidth(styles.Property("border-" + side + "-width"))
		if bw.IsNone() {
			if diags != nil {
				diags.Warnf(core.InvalidValue, loc, "border-%s-width: invalid dimension", side)
			}
			bw = css.BorderWidth("medium")
		}
		dims.BorderWidth[dir] = bw
	}
	dims.RTL = styles.Property("direction") == "rtl"
	return dims
}

// BoxStyleFromStyles collects the visual styling of a box from its
// computed styles. Border colors default to the text color.
func BoxStyleFromStyles(styles *style.PropertyMap, rtl bool) BoxStyle {
	var bs BoxStyle
	bs.Display, _ = css.DisplayOf(styles.Property("display"))
	bs.Float = css.FloatOf(styles.Property("float"), rtl)
	bs.Clear = css.ClearOf(styles.Property("clear"))
	fg, ok := styles.Property("color").Color()
	if !ok {
		fg = color.RGBA{A: 0xff}
	}
	bs.Background, _ = styles.Property("background-color").Color()
	for dir, side := range sides {
		bs.BorderStyle[dir] = css.BorderStyleOf(styles.Property("border-" + side + "-style"))
		c, ok := styles.Property("border-" + side + "-color").Color()
		if !ok {
			c = fg
		}
		bs.BorderColor[dir] = c
	}
	return bs
}
