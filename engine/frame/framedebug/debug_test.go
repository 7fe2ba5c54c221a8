package framedebug

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/frame"
)

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	arena := frame.NewArena(3)
	root := arena.New(frame.BlockBox, "html")
	body := arena.New(frame.BlockBox, "html/body")
	arena.Box(body).W = 100 * dimen.BP
	arena.Box(body).Style.Background = color.RGBA{R: 0xff, A: 0xff}
	anon := arena.New(frame.AnonymousBox, "")
	arena.AppendChild(root, body)
	arena.AppendChild(body, anon)
	var buf bytes.Buffer
	if err := ToGraphViz(arena, root, &buf); err != nil {
		t.Fatal(err)
	}
	dot := buf.String()
	if !strings.HasPrefix(dot, "digraph g {") {
		t.Errorf("expected DOT output, have %q", dot)
	}
	if !strings.Contains(dot, "node00001 -> node00002") {
		t.Errorf("expected edge from body to anonymous box")
	}
	if !strings.Contains(dot, `fillcolor="#ff0000"`) {
		t.Errorf("expected body to be filled red")
	}
	if !strings.Contains(dot, "body\\n100.0") {
		t.Logf("%s", dot)
		t.Errorf("expected label of body to contain its width")
	}
}
