package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/math/fixed"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*BP {
		t.Errorf("(1) expected d to be 12bp (%d), is %d", 12*BP, d)
	}
	//
	d, _, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %d", d)
	}
	//
	d, ispcnt, err := ParseDimen("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true || d != 20 {
		t.Errorf("(3) expected percentage 20, is %d/%v", d, ispcnt)
	}
	//
	d, _, err = ParseDimen("1.5PT")
	if err != nil {
		t.Errorf("(4) %s", err.Error())
	} else if d != PT+PT/2+1 && d != PT+PT/2 {
		t.Errorf("(4) expected d to be 1.5pt, is %d", d)
	}
	//
	if _, _, err = ParseDimen("12furlong"); err == nil {
		t.Errorf("(5) expected error for unknown unit")
	}
}

func TestFixedConversion(t *testing.T) {
	if f := (10 * BP).Fixed(72); f != fixed.I(10) {
		t.Errorf("expected 10bp at 72dpi to be 10px, is %v", f)
	}
	if f := (BP / 2).Fixed(144); f != fixed.I(1) {
		t.Errorf("expected 0.5bp at 144dpi to be 1px, is %v", f)
	}
	if f := (BP / 4).Fixed(72); f != 16 {
		t.Errorf("expected 0.25bp to be 16/64 px, is %d", f)
	}
	d := 17*BP + BP/3
	back := FromFixed(d.Fixed(72), 72)
	if Abs(back-d) > BP/64 {
		t.Errorf("expected round trip within 1/64 px, have %d vs %d", back, d)
	}
}

func TestMulDiv(t *testing.T) {
	if x := (10 * BP).MulDiv(1, 3); x != 218453 {
		t.Errorf("expected 10bp/3 = 218453sp, is %d", x)
	}
	if x := (-10 * BP).MulDiv(1, 3); x != -218453 {
		t.Errorf("expected -10bp/3 = -218453sp, is %d", x)
	}
}
