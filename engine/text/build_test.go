package text

import (
	"image/color"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/engine/text/hyphen"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestBuildMergesSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	st := DefaultStyle(language.English)
	red := st
	red.Color = color.RGBA{R: 0xff, A: 0xff}
	run, diags := Build([]Item{
		{Text: "The quick ", Style: st},
		{Text: "brown fox ", Style: st},
		{Text: "jumps", Style: red},
	}, Options{})
	assert.Equal(t, "The quick brown fox jumps", run.Text)
	assert.Empty(t, diags)
	if len(run.Spans) != 2 {
		t.Fatalf("expected 2 spans, have %d: %v", len(run.Spans), run.Spans)
	}
	if run.Spans[0].End != 20 || run.Spans[1].Style.Color != red.Color {
		t.Errorf("expected span boundary at 20, is %v", run.Spans)
	}
	for _, pos := range []int{4, 10, 16, 20} {
		if run.BreakAt(pos) != BreakOptional {
			t.Errorf("expected optional break at %d, is %s", pos, run.BreakAt(pos))
		}
	}
	if run.BreakAt(5) != BreakForbidden {
		t.Errorf("expected no break within 'quick'")
	}
	assert.Equal(t, 1, run.SpanAt(22))
	assert.Equal(t, -1, run.SpanAt(99))
}

func TestWhiteSpaceCollapse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	st := DefaultStyle(language.English)
	run, _ := Build([]Item{{Text: "  Hello \n\t World  ", Style: st}}, Options{})
	assert.Equal(t, "Hello World", run.Text)
	run, _ = Build([]Item{{Text: "foo ", Style: st}, {Text: "\u2028", Style: st},
		{Text: " bar", Style: st}}, Options{})
	assert.Equal(t, "foo\u2028bar", run.Text)
	assert.Equal(t, 1, len(run.Spans))
	pre := st
	pre.WhiteSpace = WhiteSpacePre
	run, _ = Build([]Item{{Text: "a  b\nc", Style: pre}}, Options{})
	assert.Equal(t, "a  b\nc", run.Text)
	if run.BreakAt(5) != BreakMandatory {
		t.Errorf("expected mandatory break after newline, is %s", run.BreakAt(5))
	}
	if run.BreakAt(3) != BreakForbidden {
		t.Errorf("expected no optional breaks for white-space: pre")
	}
}

func TestForcedBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	st := DefaultStyle(language.English)
	run, _ := Build([]Item{{Text: "foo \u2028bar", Style: st}}, Options{})
	assert.Equal(t, "foo\u2028bar", run.Text)
	if run.BreakAt(6) != BreakMandatory {
		t.Errorf("expected mandatory break after line separator: %s", run)
	}
}

func TestSoftHyphen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	run, _ := Build([]Item{{Text: "hyph\u00ADenation", Style: DefaultStyle(language.English)}}, Options{})
	if run.BreakAt(6) != BreakHyphen {
		t.Errorf("expected hyphen break after soft hyphen, breaks are %v", run.Breaks)
	}
}

func TestNoWrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	st := DefaultStyle(language.English)
	st.WhiteSpace = WhiteSpaceNoWrap
	run, _ := Build([]Item{{Text: "a b  c", Style: st}}, Options{})
	assert.Equal(t, "a b c", run.Text)
	assert.Empty(t, run.Breaks)
}

func TestHyphenation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	dict, err := hyphen.LoadPatterns("test", strings.NewReader(
		`\patterns{ hy3ph he2n hena4 hen5at 1na n2at 1tio 2io o2n }`))
	if err != nil {
		t.Fatal(err)
	}
	st := DefaultStyle(language.English)
	run, _ := Build([]Item{{Text: "on hyphenation", Style: st}},
		Options{Hyphenate: true, Dictionary: dict})
	if run.BreakAt(3+2) != BreakHyphen || run.BreakAt(3+6) != BreakHyphen {
		t.Errorf("expected hy-phen-ation, breaks are %v", run.Breaks)
	}
	if run.BreakAt(3) != BreakOptional {
		t.Errorf("expected optional break after first word")
	}
	run, _ = Build([]Item{{Text: "on hyphenation", Style: st}}, Options{Dictionary: dict})
	if run.BreakAt(5) != BreakForbidden {
		t.Errorf("expected no hyphenation if switched off")
	}
}

func TestDegradedAndBidiSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	st := DefaultStyle(language.English)
	run, diags := Build([]Item{{Text: "abc مرحبا def", Style: st}}, Options{})
	if len(run.Spans) != 3 {
		t.Fatalf("expected 3 spans, have %d: %s", len(run.Spans), run)
	}
	sp := run.Spans[1]
	if !sp.Degraded || sp.Direction() != RightToLeft || sp.Start != 4 || sp.End != 15 {
		t.Errorf("expected Arabic span to be degraded and right-to-left, is %s", sp)
	}
	if sp.Script.String() != "Arab" {
		t.Errorf("expected script to be Arab, is %s", sp.Script)
	}
	if run.Spans[2].Degraded || run.Spans[2].Level != 0 {
		t.Errorf("expected Latin span after Arabic to be plain left-to-right, is %s", run.Spans[2])
	}
	if diags.Count(core.DegradedShaping) != 1 {
		t.Errorf("expected one degraded shaping diagnostic, have %d", diags.Count(core.DegradedShaping))
	}
	run, _ = Build([]Item{{Text: "abc", Style: st}}, Options{Direction: RightToLeft})
	if run.Spans[0].Level != 2 {
		t.Errorf("expected embedded LTR text in RTL paragraph at level 2, is %d", run.Spans[0].Level)
	}
}

func TestEmptyRun(t *testing.T) {
	run, diags := Build(nil, Options{})
	if run == nil || len(run.Spans) != 0 || len(diags) != 0 {
		t.Errorf("expected empty run for empty input")
	}
}
