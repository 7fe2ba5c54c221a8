package inline

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core/dimen"
)

func TestBoxIntersection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	box1 := makeIsoBox(0, 0, 20, 30)
	box2 := makeIsoBox(10, 10, 50, 50)
	intersec := intersection(box1, box2)
	if intersec.TopL.X != 10 || intersec.TopL.Y != 10 {
		t.Logf("intersection box = %v", intersec)
		t.Errorf("expected intersection to have upper left corner of (10,10), have %v", intersec.TopL)
	}
	if intersec.BotR.X != 20 || intersec.BotR.Y != 30 {
		t.Logf("intersection box = %v", intersec)
		t.Errorf("expected intersection to have lower right corner of (20,30), have %v", intersec.BotR)
	}
	box1 = makeIsoBox(0, 0, 100, 20)
	box2 = makeIsoBox(200, 20, 500, 50)
	x := intersect(box1, box2)
	if x {
		t.Errorf("boxes do not intersect, but are reported to do so")
	}
}

func TestVaryingParShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := VaryingParShape([]dimen.Dimen{100, 200}, []dimen.Dimen{10})
	if shape.LineLength(0) != 100 || shape.LineLength(5) != 200 {
		t.Errorf("expected line lengths 100/200, have %d/%d", shape.LineLength(0), shape.LineLength(5))
	}
	if shape.LineIndent(3) != 10 {
		t.Errorf("expected last indent to repeat, have %d", shape.LineIndent(3))
	}
}

func TestFloatParShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	area := dimen.RectWH(0, 0, 500*dimen.BP, 800*dimen.BP)
	left := []dimen.Rect{dimen.RectWH(0, 0, 100*dimen.BP, 30*dimen.BP)}
	right := []dimen.Rect{dimen.RectWH(400*dimen.BP, 20*dimen.BP, 100*dimen.BP, 20*dimen.BP)}
	shape := FloatParShape(area, 10*dimen.BP, left, right)
	expect := []struct{ indent, length dimen.Dimen }{
		{100 * dimen.BP, 400 * dimen.BP}, // left float only
		{100 * dimen.BP, 400 * dimen.BP},
		{100 * dimen.BP, 300 * dimen.BP}, // both floats
		{0, 400 * dimen.BP},              // right float only
		{0, 500 * dimen.BP},              // below floats
	}
	for l, e := range expect {
		if shape.LineIndent(l) != e.indent || shape.LineLength(l) != e.length {
			t.Errorf("expected line %d to be %s+%s, is %s+%s", l, e.indent, e.length,
				shape.LineIndent(l), shape.LineLength(l))
		}
	}
}

// --- Helpers ----------------------------------------------------------

func makeIsoBox(a, b, c, d dimen.Dimen) isoBox {
	return isoBox{
		TopL: dimen.Point{X: a, Y: b},
		BotR: dimen.Point{X: c, Y: d},
	}
}
