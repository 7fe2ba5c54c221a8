package paintstream

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"io"

	"github.com/npillmayer/xtl/backend/gfx"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/engine/dom/style"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/glyphing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"gopkg.in/yaml.v3"
)

// Version is the format version written to streams. Load rejects streams
// of other versions.
const Version = 1

// Driver records drawing commands for saving them.
type Driver struct {
	gfx.Recorder
}

var _ gfx.Driver = &Driver{}

// NewDriver creates an empty paint stream.
func NewDriver() *Driver {
	return &Driver{}
}

// Save writes the recorded commands to w.
func (d *Driver) Save(w io.Writer) error {
	return Save(&d.Recorder, w)
}

// Save writes the commands of a recorder to w.
func Save(rec *gfx.Recorder, w io.Writer) error {
	doc := document{
		Version: Version,
		Width:   int32(rec.W),
		Height:  int32(rec.H),
	}
	for i, c := range rec.Commands {
		cmd, err := encodeCommand(c)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "cannot save drawing command #%d", i)
		}
		doc.Commands = append(doc.Commands, cmd)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write paint stream")
	}
	tracer().Debugf("saved paint stream with %d commands", len(doc.Commands))
	return enc.Close()
}

// Load reads a paint stream. The commands are returned in a recorder,
// ready to be replayed.
func Load(r io.Reader) (*gfx.Recorder, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, core.WrapError(err, core.EPARSE, "cannot read paint stream")
	}
	if doc.Version != Version {
		return nil, core.Error(core.EUNSUPPORTED, "paint stream version %d not supported", doc.Version)
	}
	rec := &gfx.Recorder{W: dimen.Dimen(doc.Width), H: dimen.Dimen(doc.Height)}
	for i, cmd := range doc.Commands {
		c, err := cmd.decode()
		if err != nil {
			return nil, core.WrapError(err, core.EPARSE, "paint stream command #%d", i)
		}
		rec.Commands = append(rec.Commands, c)
	}
	return rec, nil
}

// --- Document structure ----------------------------------------------------

type document struct {
	Version  int       `yaml:"version"`
	Width    int32     `yaml:"width"`
	Height   int32     `yaml:"height"`
	Commands []command `yaml:"commands"`
}

// command has the field for its kind set.
type command struct {
	Kind   string     `yaml:"kind"`
	Rect   *rectCmd   `yaml:"rect,omitempty"`
	Glyphs []glyphRun `yaml:"glyphs,omitempty"`
	Image  *imageCmd  `yaml:"image,omitempty"`
}

type box [4]int32 // x0, y0, x1, y1

type rgba [4]uint8 // premultiplied, as color.RGBA

type rectCmd struct {
	Box     box    `yaml:"box,flow"`
	Fill    rgba   `yaml:"fill,flow"`
	Pattern string `yaml:"pattern,omitempty"`
	Side    int    `yaml:"side,omitempty"`
}

type imageCmd struct {
	Box box    `yaml:"box,flow"`
	PNG string `yaml:"png,omitempty"` // base64, empty for missing images
}

type fontRef struct {
	Family string `yaml:"family"`
	Style  int    `yaml:"style,omitempty"`
	Weight int    `yaml:"weight,omitempty"`
}

type glyphRun struct {
	Font     fontRef `yaml:"font"`
	Size     int32   `yaml:"size"`
	Color    rgba    `yaml:"color,flow"`
	Baseline int     `yaml:"baseline"`
	Gamma    float64 `yaml:"gamma"`
	Glyphs   []glyph `yaml:"glyphs"`
}

// glyph stores the outline's font, size and glyph index only if they differ
// from the run's and the glyph's, which happens for fallback fonts and
// .notdef boxes.
type glyph struct {
	Index    uint16   `yaml:"index"`
	Rune     rune     `yaml:"rune"`
	X        int      `yaml:"x"`
	Subpixel int32    `yaml:"subpixel,omitempty"`
	Notdef   bool     `yaml:"notdef,omitempty"`
	Font     *fontRef `yaml:"font,omitempty"`
	Size     int32    `yaml:"size,omitempty"`
	Outline  *uint16  `yaml:"outline,omitempty"`
}

// --- Encoding --------------------------------------------------------------

func encodeCommand(c gfx.Command) (command, error) {
	switch c.Kind {
	case gfx.RectCommand:
		rc := &rectCmd{Box: encodeRect(c.Rect), Fill: rgba{c.Style.Fill.R, c.Style.Fill.G,
			c.Style.Fill.B, c.Style.Fill.A}, Side: c.Style.Side}
		if c.Style.Pattern != css.BorderNone {
			rc.Pattern = c.Style.Pattern.String()
		}
		return command{Kind: "rect", Rect: rc}, nil
	case gfx.GlyphsCommand:
		runs := make([]glyphRun, len(c.Runs))
		for i, run := range c.Runs {
			runs[i] = encodeRun(run)
		}
		return command{Kind: "glyphs", Glyphs: runs}, nil
	case gfx.ImageCommand:
		ic := &imageCmd{Box: encodeRect(c.Rect)}
		if c.Image != nil {
			var buf bytes.Buffer
			if err := png.Encode(&buf, c.Image); err != nil {
				return command{}, err
			}
			ic.PNG = base64.StdEncoding.EncodeToString(buf.Bytes())
		}
		return command{Kind: "image", Image: ic}, nil
	}
	return command{}, core.Error(core.EINTERNAL, "unknown drawing command %d", c.Kind)
}

func encodeRun(run glyphing.GlyphRun) glyphRun {
	gr := glyphRun{
		Font:     encodeFont(run.Font),
		Size:     int32(run.Size),
		Color:    rgba{run.Color.R, run.Color.G, run.Color.B, run.Color.A},
		Baseline: run.Baseline,
		Gamma:    run.Gamma,
		Glyphs:   make([]glyph, len(run.Glyphs)),
	}
	for i, g := range run.Glyphs {
		gg := glyph{
			Index:    uint16(g.Index),
			Rune:     g.Rune,
			X:        g.X,
			Subpixel: int32(g.Subpixel),
			Notdef:   g.Outline.Notdef,
		}
		if g.Outline.Font != run.Font {
			ref := encodeFont(g.Outline.Font)
			gg.Font = &ref
		}
		if g.Outline.Size != run.Size {
			gg.Size = int32(g.Outline.Size)
		}
		if g.Outline.Glyph != g.Index {
			index := uint16(g.Outline.Glyph)
			gg.Outline = &index
		}
		gr.Glyphs[i] = gg
	}
	return gr
}

func encodeRect(r dimen.Rect) box {
	return box{int32(r.TopL.X), int32(r.TopL.Y), int32(r.BotR.X), int32(r.BotR.Y)}
}

func encodeFont(ref font.Ref) fontRef {
	return fontRef{Family: ref.Family, Style: int(ref.Style), Weight: int(ref.Weight)}
}

// --- Decoding --------------------------------------------------------------

func (cmd command) decode() (gfx.Command, error) {
	switch {
	case cmd.Kind == "rect" && cmd.Rect != nil:
		c := gfx.Command{Kind: gfx.RectCommand, Rect: cmd.Rect.Box.rect()}
		c.Style.Fill = cmd.Rect.Fill.color()
		c.Style.Side = cmd.Rect.Side
		if cmd.Rect.Pattern != "" {
			c.Style.Pattern = css.BorderStyleOf(style.Property(cmd.Rect.Pattern))
		}
		return c, nil
	case cmd.Kind == "image" && cmd.Image != nil:
		c := gfx.Command{Kind: gfx.ImageCommand, Rect: cmd.Image.Box.rect()}
		if cmd.Image.PNG != "" {
			data, err := base64.StdEncoding.DecodeString(cmd.Image.PNG)
			if err != nil {
				return c, err
			}
			if c.Image, err = png.Decode(bytes.NewReader(data)); err != nil {
				return c, err
			}
		}
		return c, nil
	case cmd.Kind == "glyphs":
		c := gfx.Command{Kind: gfx.GlyphsCommand, Runs: make([]glyphing.GlyphRun, len(cmd.Glyphs))}
		for i, gr := range cmd.Glyphs {
			c.Runs[i] = gr.decode()
		}
		return c, nil
	}
	return gfx.Command{}, core.Error(core.EPARSE, "malformed drawing command of kind %q", cmd.Kind)
}

func (gr glyphRun) decode() glyphing.GlyphRun {
	run := glyphing.GlyphRun{
		Font:     gr.Font.ref(),
		Size:     dimen.Dimen(gr.Size),
		Color:    gr.Color.color(),
		Baseline: gr.Baseline,
		Gamma:    gr.Gamma,
		Glyphs:   make([]glyphing.Glyph, len(gr.Glyphs)),
	}
	for i, g := range gr.Glyphs {
		outline := font.Outline{
			Font:     run.Font,
			Glyph:    font.GlyphIndex(g.Index),
			Size:     run.Size,
			Subpixel: fixed.Int26_6(g.Subpixel),
			Notdef:   g.Notdef,
		}
		if g.Font != nil {
			outline.Font = g.Font.ref()
		}
		if g.Size != 0 {
			outline.Size = dimen.Dimen(g.Size)
		}
		if g.Outline != nil {
			outline.Glyph = font.GlyphIndex(*g.Outline)
		}
		run.Glyphs[i] = glyphing.Glyph{
			Index:    font.GlyphIndex(g.Index),
			Rune:     g.Rune,
			X:        g.X,
			Subpixel: fixed.Int26_6(g.Subpixel),
			Outline:  outline,
		}
	}
	return run
}

func (b box) rect() dimen.Rect {
	return dimen.Rect{
		TopL: dimen.Point{X: dimen.Dimen(b[0]), Y: dimen.Dimen(b[1])},
		BotR: dimen.Point{X: dimen.Dimen(b[2]), Y: dimen.Dimen(b[3])},
	}
}

func (c rgba) color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func (ref fontRef) ref() font.Ref {
	return font.Ref{Family: ref.Family, Style: xfont.Style(ref.Style), Weight: xfont.Weight(ref.Weight)}
}
