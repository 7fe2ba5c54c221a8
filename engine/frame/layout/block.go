package layout

import (
	"strconv"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/dom/styledtree"
	"github.com/npillmayer/xtl/engine/frame"
)

// flow is the state of vertical stacking within a block box.
type flow struct {
	x0, x1  dimen.Dimen      // edges of the content box of the containing block
	y       dimen.Dimen      // bottom edge of the last in-flow box
	margins []dimen.Dimen    // adjoining vertical margins not yet applied
	floats  *frame.FloatList // floats of the block formatting context
}

func newFlow(x0, x1, y dimen.Dimen, floats *frame.FloatList) *flow {
	return &flow{x0: x0, x1: x1, y: y, floats: floats}
}

// peek returns the position the next in-flow box would start at.
func (f *flow) peek() dimen.Dimen {
	return f.y + frame.CollapseMargins(f.margins...)
}

// flushMargins applies the collapsed pending margins.
func (f *flow) flushMargins() {
	f.y = f.peek()
	f.margins = f.margins[:0]
}

// blockParams control the layout of a single block-level box.
type blockParams struct {
	absorbed bool // top margin has been collapsed into the parent's
	floating bool
	root     bool
	ordinal  int // number of an item of an ordered list
}

// establishesContext is true for boxes which establish a new block
// formatting context.
func (bp blockParams) establishesContext(kind frame.BoxKind) bool {
	return bp.floating || bp.root || kind == frame.InlineBlockBox
}

// layoutBlock lays out a block-level element and its descendants. The box is
// placed at the current position of flow f, which is advanced past it.
func (l *layouter) layoutBlock(n *styledtree.Node, f *flow, bp blockParams) frame.BoxID {
	styles := n.Styles()
	disp, _ := css.DisplayOf(styles.Property("display"))
	if disp == css.DisplayNone {
		return frame.NoBox
	}
	l.regs.Begingroup()
	defer l.regs.Endgroup()
	l.enterElement(n)
	kind := frame.BoxKindFor(disp)
	if kind == frame.InlineBox || kind == frame.NoKind {
		kind = frame.BlockBox // blockified
	}
	id := l.arena.New(kind, n.Path())
	box := l.arena.Box(id)
	rtl := isRTL(styles)
	box.Style = frame.BoxStyleFromStyles(styles, rtl)
	dims := frame.DimensionsFromStyles(styles, &l.diags, n.Path())
	basis := l.basis(styles)
	newContext := bp.establishesContext(kind)
	var shrink func(dimen.Dimen) dimen.Dimen
	if bp.floating || kind == frame.InlineBlockBox {
		shrink = func(avail dimen.Dimen) dimen.Dimen {
			return l.preferredWidth(n, avail)
		}
	}
	if err := frame.FixDimensionsFromEnclosingWidth(box, dims, f.x1-f.x0, basis, shrink); err != nil {
		l.diags.Warnf(core.InvalidValue, core.Location{Path: n.Path()}, "%v", err)
	}
	var leading []dimen.Dimen
	if !newContext && box.CanCollapseTop() {
		leading = l.leadingMargins(n, box.W)
	}
	if !bp.absorbed {
		f.margins = append(f.margins, box.Margins[frame.Top])
		f.margins = append(f.margins, leading...)
	}
	l.placeTop(box, f)
	inner := newFlow(box.TopL.X, box.TopL.X+box.W, box.TopL.Y, f.floats)
	if newContext {
		inner.floats = &frame.FloatList{}
	}
	l.layoutChildren(id, n, inner, len(leading) > 0)
	collapseBottom := !newContext && box.CanCollapseBottom(dims)
	if !collapseBottom {
		inner.flushMargins()
	}
	contentH := inner.y - box.TopL.Y
	if newContext {
		contentH = dimen.Max(contentH, inner.floats.Bottom()-box.TopL.Y)
	}
	frame.FixHeight(box, dims, contentH, basis)
	if collapseBottom {
		l.placeBottom(box, f, inner.margins)
	} else {
		l.placeBottom(box, f, nil)
	}
	if kind == frame.ListItemBox {
		l.setMarker(id, n, bp.ordinal)
	}
	l.checkOverflow(box, f)
	tracer().Debugf("%s", box.DebugString())
	return id
}

// placeTop positions the top edge of a box. All pending margins, including
// the box's own top margin, have to be added to f.
func (l *layouter) placeTop(box *frame.Box, f *flow) {
	if box.Style.Clear != css.ClearNone {
		y := f.peek()
		if cy := f.floats.ClearY(box.Style.Clear, y); cy > y {
			f.y = cy // clearance replaces the collapsed margins
			f.margins = f.margins[:0]
		}
	}
	f.flushMargins()
	box.TopL = dimen.Point{
		X: f.x0 + box.Margins[frame.Left] + box.BorderWidth[frame.Left] + box.Padding[frame.Left],
		Y: f.y + box.BorderWidth[frame.Top] + box.Padding[frame.Top],
	}
}

// placeBottom advances f past the bottom border edge of box. Margins
// of the box's last child passing through its bottom edge are given as
// through.
func (l *layouter) placeBottom(box *frame.Box, f *flow, through []dimen.Dimen) {
	f.y = box.TopL.Y + box.H + box.Padding[frame.Bottom] + box.BorderWidth[frame.Bottom]
	f.margins = append(f.margins[:0], through...)
	f.margins = append(f.margins, box.Margins[frame.Bottom])
}

// leadingMargins returns the top margins of the first in-flow block-level
// descendants of n adjoining n's top margin. w is the width of n's content
// box.
func (l *layouter) leadingMargins(n *styledtree.Node, w dimen.Dimen) []dimen.Dimen {
	ch := l.firstInFlow(n)
	if ch == nil {
		return nil
	}
	dims := frame.DimensionsFromStyles(ch.Styles(), nil, "")
	basis := l.basis(ch.Styles())
	basis.Containing = w
	margins := []dimen.Dimen{dims.Margins[frame.Top].ResolveOr(basis, 0)}
	if dims.BorderWidth[frame.Top].ResolveOr(basis, 0) == 0 && dims.Padding[frame.Top].ResolveOr(basis, 0) == 0 {
		margins = append(margins, l.leadingMargins(ch, w)...)
	}
	return margins
}

// firstInFlow returns the first child of n if it is an in-flow block-level
// element, skipping floats and collapsible white space.
func (l *layouter) firstInFlow(n *styledtree.Node) *styledtree.Node {
	for _, ch := range n.Children() {
		switch c := classify(ch); c {
		case skipLevel, floatLevel:
			continue
		case inlineLevel:
			if ch.IsText() && isCollapsibleSpace(ch) {
				continue
			}
			return nil
		case blockLevel:
			if disp, _ := css.DisplayOf(ch.Styles().Property("display")); disp == css.DisplayInlineBlock {
				return nil
			}
			return ch
		default:
			return nil
		}
	}
	return nil
}

// layoutChildren lays out the children of element n into box parent.
// If absorbFirst is set, the top margin of the first in-flow block child
// has already been collapsed into the parent's top margin.
func (l *layouter) layoutChildren(parent frame.BoxID, n *styledtree.Node, f *flow, absorbFirst bool) {
	children := n.Children()
	onlyInline := true
	for _, ch := range children {
		if c := classify(ch); c == blockLevel || c == replacedLevel {
			onlyInline = false
			break
		}
	}
	var run, floats []*styledtree.Node
	// Floats within a run of inline content are placed at the top of the
	// run, even if inline content precedes them, and narrow all of its lines.
	flush := func() {
		for _, fl := range floats {
			l.layoutFloat(parent, fl, f)
		}
		floats = floats[:0]
		if len(run) == 0 {
			return
		}
		if onlyInline {
			l.layoutInlineContent(parent, n, run, f)
		} else if l.layoutAnonymous(parent, n, run, f) {
			absorbFirst = false
		}
		run = run[:0]
	}
	ordinal := 0
	if n.Tag() == "ol" {
		ordinal = 1
		if s, ok := n.Attr("start"); ok {
			if k, err := strconv.Atoi(s); err == nil {
				ordinal = k
			}
		}
	}
	for _, ch := range children {
		switch classify(ch) {
		case inlineLevel:
			run = append(run, ch)
		case floatLevel:
			floats = append(floats, ch)
		case blockLevel:
			flush()
			bp := blockParams{absorbed: absorbFirst}
			if disp, _ := css.DisplayOf(ch.Styles().Property("display")); disp == css.DisplayListItem && ordinal > 0 {
				bp.ordinal = ordinal
				ordinal++
			}
			if id := l.layoutBlock(ch, f, bp); id != frame.NoBox {
				l.arena.AppendChild(parent, id)
			}
			absorbFirst = false
		case replacedLevel:
			flush()
			if id := l.layoutImage(ch, f); id != frame.NoBox {
				l.arena.AppendChild(parent, id)
			}
			absorbFirst = false
		}
	}
	flush()
}

// layoutFloat lays out a floating element as a block formatting context and
// moves it to the left or right edge of the containing block, below
// earlier floats if necessary.
func (l *layouter) layoutFloat(parent frame.BoxID, n *styledtree.Node, f *flow) {
	side := css.FloatOf(n.Styles().Property("float"), isRTL(n.Styles()))
	y := f.peek()
	tmp := newFlow(f.x0, f.x1, y, &frame.FloatList{})
	id := l.layoutBlock(n, tmp, blockParams{floating: true})
	box := l.arena.Box(id)
	if box == nil {
		return
	}
	y = f.floats.ClearY(box.Style.Clear, y)
	mb := box.MarginBox()
	p := f.floats.Place(side, mb.Width(), mb.Height(), y, f.x0, f.x1)
	l.shift(id, p.X-mb.TopL.X, p.Y-mb.TopL.Y)
	f.floats.Add(side, box.MarginBox())
	l.arena.AppendChild(parent, id)
	tracer().Debugf("float %s placed at %v", n.Path(), p)
}

// shift moves a box and its descendants.
func (l *layouter) shift(id frame.BoxID, dx, dy dimen.Dimen) {
	if dx == 0 && dy == 0 {
		return
	}
	l.arena.Walk(id, func(_ frame.BoxID, box *frame.Box, _ int) bool {
		box.TopL.X += dx
		box.TopL.Y += dy
		if box.Marker != nil {
			box.MarkerAt.X += dx
			box.MarkerAt.Y += dy
		}
		return true
	})
}

// checkOverflow flags boxes exceeding their containing block horizontally.
func (l *layouter) checkOverflow(box *frame.Box, f *flow) {
	bb := box.BorderBox()
	if bb.TopL.X < f.x0 || bb.BotR.X > f.x1 {
		box.Overflow = true
		l.diags.Warnf(core.Overflow, core.Location{Path: box.Path},
			"box of width %v exceeds its containing block of width %v", bb.Width(), f.x1-f.x0)
	}
}

// preferredWidth returns the width of the content box of n if no lines
// were broken except at mandatory breaks, but not wider than avail.
func (l *layouter) preferredWidth(n *styledtree.Node, avail dimen.Dimen) dimen.Dimen {
	var w dimen.Dimen
	var run []*styledtree.Node
	measure := func() {
		if len(run) > 0 {
			if para := l.setParagraph(n, run, nil); para != nil {
				w = dimen.Max(w, para.Width())
			}
			run = run[:0]
		}
	}
	for _, ch := range n.Children() {
		switch classify(ch) {
		case inlineLevel:
			run = append(run, ch)
		case blockLevel, floatLevel:
			measure()
			dims := frame.DimensionsFromStyles(ch.Styles(), nil, "")
			basis := l.basis(ch.Styles())
			basis.Containing = avail
			chw, ok := dims.W.Resolve(basis)
			if !ok || dims.W.IsPercent() {
				chw = l.preferredWidth(ch, avail)
			}
			for _, side := range []int{frame.Left, frame.Right} {
				chw += dims.Margins[side].ResolveOr(basis, 0) + dims.Padding[side].ResolveOr(basis, 0) +
					dims.BorderWidth[side].ResolveOr(basis, 0)
			}
			w = dimen.Max(w, chw)
		case replacedLevel:
			measure()
			iw, _, _ := l.intrinsicSize(ch)
			w = dimen.Max(w, iw)
		}
	}
	measure()
	return dimen.Min(w, avail)
}
