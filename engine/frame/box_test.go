package frame

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/dom/style"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/stretchr/testify/assert"
)

func TestBoxEmptyDimensions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	dims := InitEmptyDimensions(nil)
	assert.Equal(t, css.SomeDimen(0), dims.Padding[Top])
	assert.Equal(t, css.SomeDimen(0), dims.BorderWidth[Right])
	assert.Equal(t, css.SomeDimen(0), dims.Margins[Left])
	assert.True(t, dims.W.IsAuto())
}

func TestFixAutoWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	dims := InitEmptyDimensions(nil)
	dims.Padding[Left] = css.SomeDimen(10 * dimen.PX)
	dims.Margins[Right] = css.SomeDimen(20 * dimen.PX)
	box := &Box{}
	err := FixDimensionsFromEnclosingWidth(box, dims, 200*dimen.PX, css.Basis{}, nil)
	assert.NoError(t, err)
	if box.W != 170*dimen.PX {
		t.Errorf("expected auto width to be 170px, is %v", box.W)
	}
	assert.Equal(t, 200*dimen.PX, box.TotalWidth())
}

func TestFixPercentWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	dims := InitEmptyDimensions(nil)
	dims.W = css.DimenOption("50%")
	box := &Box{}
	FixDimensionsFromEnclosingWidth(box, dims, 300*dimen.PX, css.Basis{}, nil)
	assert.Equal(t, 150*dimen.PX, box.W)
	if box.Margins[Right] != 150*dimen.PX {
		t.Errorf("expected over-constrained right margin to take the rest, is %v", box.Margins[Right])
	}
	dims.RTL = true
	FixDimensionsFromEnclosingWidth(box, dims, 300*dimen.PX, css.Basis{}, nil)
	assert.Equal(t, 150*dimen.PX, box.Margins[Left])
	assert.Equal(t, dimen.Zero, box.Margins[Right])
}

func TestFixCenteredWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	dims := InitEmptyDimensions(nil)
	dims.W = css.SomeDimen(100 * dimen.PX)
	dims.Margins[Left] = css.AutoDimen()
	dims.Margins[Right] = css.AutoDimen()
	box := &Box{}
	FixDimensionsFromEnclosingWidth(box, dims, 300*dimen.PX, css.Basis{}, nil)
	if box.Margins[Left] != 100*dimen.PX || box.Margins[Right] != 100*dimen.PX {
		t.Errorf("expected box to be centered, margins are %v and %v",
			box.Margins[Left], box.Margins[Right])
	}
}

func TestFixMaxWidthAndNegativePadding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	dims := InitEmptyDimensions(nil)
	dims.MaxW = css.SomeDimen(50 * dimen.PX)
	dims.Padding[Left] = css.SomeDimen(-5 * dimen.PX)
	box := &Box{}
	err := FixDimensionsFromEnclosingWidth(box, dims, 300*dimen.PX, css.Basis{}, nil)
	assert.ErrorIs(t, err, ErrIllegalDimension)
	assert.Equal(t, dimen.Zero, box.Padding[Left])
	assert.Equal(t, 50*dimen.PX, box.W)
}

func TestFixShrinkToFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	dims := InitEmptyDimensions(nil)
	box := &Box{}
	preferred := func(dimen.Dimen) dimen.Dimen { return 80 * dimen.PX }
	FixDimensionsFromEnclosingWidth(box, dims, 300*dimen.PX, css.Basis{}, preferred)
	assert.Equal(t, 80*dimen.PX, box.W)
	wide := func(dimen.Dimen) dimen.Dimen { return 800 * dimen.PX }
	FixDimensionsFromEnclosingWidth(box, dims, 300*dimen.PX, css.Basis{}, wide)
	assert.Equal(t, 300*dimen.PX, box.W)
}

func TestFixFloatWidthKeepsMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	dims := InitEmptyDimensions(nil)
	dims.W = css.SomeDimen(50 * dimen.PX)
	dims.Margins[Left] = css.SomeDimen(5 * dimen.PX)
	dims.Margins[Right] = css.AutoDimen()
	box := &Box{}
	preferred := func(dimen.Dimen) dimen.Dimen { return 120 * dimen.PX }
	FixDimensionsFromEnclosingWidth(box, dims, 300*dimen.PX, css.Basis{}, preferred)
	assert.Equal(t, 50*dimen.PX, box.W)
	assert.Equal(t, 5*dimen.PX, box.Margins[Left])
	if box.Margins[Right] != 0 {
		t.Errorf("expected auto margin of a floating box to be 0, is %v", box.Margins[Right])
	}
	assert.Equal(t, 55*dimen.PX, box.TotalWidth())
}

func TestCollapseMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	if m := CollapseMargins(10*dimen.PX, 20*dimen.PX); m != 20*dimen.PX {
		t.Errorf("expected margins 10px and 20px to collapse to 20px, have %v", m)
	}
	assert.Equal(t, 5*dimen.PX, CollapseMargins(20*dimen.PX, -15*dimen.PX))
	assert.Equal(t, -15*dimen.PX, CollapseMargins(-5*dimen.PX, -15*dimen.PX))
	assert.Equal(t, dimen.Zero, CollapseMargins())
}

func TestBoxRects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	box := &Box{TopL: dimen.Point{X: 20, Y: 20}, W: 100, H: 50}
	for dir := Top; dir <= Left; dir++ {
		box.Padding[dir] = 5
		box.BorderWidth[dir] = 1
		box.Margins[dir] = 10
	}
	assert.Equal(t, dimen.Dimen(110), box.PaddingBox().Width())
	assert.Equal(t, dimen.Dimen(112), box.BorderBox().Width())
	assert.Equal(t, dimen.Dimen(4), box.MarginBox().TopL.X)
	assert.Equal(t, dimen.Dimen(82), box.TotalHeight())
}

func TestDimensionsFromStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	styles := style.NewPropertyMap(8)
	styles.Set("width", "auto")
	styles.Set("margin-top", "1em")
	styles.Set("padding-left", "wide")
	styles.Set("border-left-style", "solid")
	styles.Set("border-left-width", "thin")
	styles.Set("border-right-width", "thick") // style is none
	var diags core.Diagnostics
	dims := DimensionsFromStyles(styles, &diags, "html/body/div")
	assert.True(t, dims.W.IsAuto())
	assert.True(t, dims.Margins[Top].IsRelative())
	assert.Equal(t, css.SomeDimen(dimen.PX), dims.BorderWidth[Left])
	assert.Equal(t, css.SomeDimen(0), dims.BorderWidth[Right])
	if diags.Count(core.InvalidValue) != 1 {
		t.Errorf("expected 1 diagnostic for padding, have %d", len(diags))
	}
}

func TestArenaWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	arena := NewArena(4)
	root := arena.New(BlockBox, "html")
	a := arena.New(BlockBox, "html/body")
	b := arena.New(AnonymousBox, "")
	c := arena.New(BlockBox, "html/body/p")
	arena.AppendChild(root, a)
	arena.AppendChild(a, b)
	arena.AppendChild(a, c)
	var order []BoxID
	arena.Walk(root, func(id BoxID, box *Box, depth int) bool {
		order = append(order, id)
		return true
	})
	assert.Equal(t, []BoxID{root, a, b, c}, order)
	assert.Nil(t, arena.Box(NoBox))
	assert.Equal(t, 4, arena.Len())
}

func TestFloatPlacement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	floats := &FloatList{}
	p := floats.Place(css.FloatLeft, 100, 50, 0, 0, 300)
	assert.Equal(t, dimen.Point{X: 0, Y: 0}, p)
	floats.Add(css.FloatLeft, dimen.RectWH(p.X, p.Y, 100, 50))
	p = floats.Place(css.FloatRight, 100, 30, 0, 0, 300)
	assert.Equal(t, dimen.Point{X: 200, Y: 0}, p)
	floats.Add(css.FloatRight, dimen.RectWH(p.X, p.Y, 100, 30))
	// does not fit beside the first two
	p = floats.Place(css.FloatLeft, 150, 10, 0, 0, 300)
	if p.Y != 30 || p.X != 100 {
		t.Errorf("expected float to move down to y=30 beside the left float, is at %v", p)
	}
	assert.Equal(t, dimen.Dimen(50), floats.ClearY(css.ClearBoth, 0))
	assert.Equal(t, dimen.Dimen(30), floats.ClearY(css.ClearRight, 0))
	l, r := floats.Band(60, 10, 0, 300)
	assert.Equal(t, dimen.Dimen(0), l)
	assert.Equal(t, dimen.Dimen(300), r)
}
