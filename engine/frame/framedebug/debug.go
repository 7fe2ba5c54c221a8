/*
Package framedebug writes box trees in GraphViz DOT format, for debugging
layouts.
*/
package framedebug

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/xtl/engine/frame"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	BoxTmpl  *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz creates a graphical representation of a box tree.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
func ToGraphViz(arena *frame.Arena, root frame.BoxID, w io.Writer) error {
	header, err := template.New("boxTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.BoxTmpl = template.Must(template.New("box").Funcs(
		template.FuncMap{
			"label": label,
			"fill":  fill,
		}).Parse(boxTmpl))
	gparams.EdgeTmpl = template.Must(template.New("boxedge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	arena.Walk(root, func(id frame.BoxID, box *frame.Box, depth int) bool {
		if err != nil {
			return false
		}
		err = gparams.BoxTmpl.Execute(w, &cbox{Box: box, Name: nodeName(id)})
		for _, ch := range box.Children {
			if err == nil {
				err = gparams.EdgeTmpl.Execute(w, cedge{N1: nodeName(id), N2: nodeName(ch)})
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Helper structs
type cbox struct {
	Box  *frame.Box
	Name string
}

type cedge struct {
	N1, N2 string
}

func nodeName(id frame.BoxID) string {
	return fmt.Sprintf("node%05d", id)
}

func label(box *frame.Box) string {
	name := box.Path
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	s := fmt.Sprintf("%s %s\n%.1f\u00d7%.1f", box.Kind.Symbol(), name,
		box.W.Points(), box.H.Points())
	if box.Text != nil && box.Text.Run != nil {
		s += "\n" + shortText(box.Text.Run.Text)
	}
	return fmt.Sprintf("%q", s)
}

func shortText(txt string) string {
	r := []rune(txt)
	if len(r) > 12 {
		txt = string(r[:12]) + "\u2026"
	}
	txt = strings.ReplaceAll(txt, "\n", " ")
	txt = strings.ReplaceAll(txt, " ", "\u2423")
	return "\u201c" + txt + "\u201d"
}

func fill(box *frame.Box) string {
	c := box.Style.Background
	if c.A == 0 {
		switch box.Kind {
		case frame.AnonymousBox:
			return "grey95"
		case frame.InlineBlockBox, frame.ReplacedBox:
			return "lightyellow"
		}
		return "lightblue3"
	}
	return colorString(c)
}

func colorString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`
const boxTmpl = `{{ .Name }}	[ label={{ label .Box }} shape=box style=filled fillcolor="{{ fill .Box }}" {{ if .Box.Overflow }}color=red{{ end }} ] ;
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`
