package gfx

import (
	"fmt"
	"image"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/glyphing"
)

// CommandKind is the type of a recorded drawing command.
type CommandKind uint8

// Kinds of commands.
const (
	RectCommand CommandKind = iota
	GlyphsCommand
	ImageCommand
)

// Command is a drawing command captured by a Recorder.
type Command struct {
	Kind  CommandKind
	Rect  dimen.Rect
	Style RectStyle
	Runs  []glyphing.GlyphRun
	Image image.Image
}

func (c Command) String() string {
	switch c.Kind {
	case RectCommand:
		return fmt.Sprintf("rect %v %s", c.Rect, c.Style.Pattern)
	case GlyphsCommand:
		return fmt.Sprintf("glyphs %v", c.Runs)
	}
	return fmt.Sprintf("image %v", c.Rect)
}

// Recorder is a driver which records commands instead of drawing.
type Recorder struct {
	W, H     dimen.Dimen
	Commands []Command
}

var _ Driver = &Recorder{}

// SetCanvasSize is part of interface Driver.
func (rec *Recorder) SetCanvasSize(w, h dimen.Dimen) {
	rec.W, rec.H = w, h
}

// DrawGlyphRun is part of interface Driver.
func (rec *Recorder) DrawGlyphRun(runs []glyphing.GlyphRun) error {
	rec.Commands = append(rec.Commands, Command{Kind: GlyphsCommand, Runs: runs})
	return nil
}

// DrawRect is part of interface Driver.
func (rec *Recorder) DrawRect(r dimen.Rect, style RectStyle) error {
	rec.Commands = append(rec.Commands, Command{Kind: RectCommand, Rect: r, Style: style})
	return nil
}

// DrawImage is part of interface Driver.
func (rec *Recorder) DrawImage(r dimen.Rect, img image.Image) error {
	rec.Commands = append(rec.Commands, Command{Kind: ImageCommand, Rect: r, Image: img})
	return nil
}

// Glyphs returns the text of all recorded glyph runs, one string per
// command.
func (rec *Recorder) Glyphs() []string {
	var texts []string
	for _, c := range rec.Commands {
		if c.Kind != GlyphsCommand {
			continue
		}
		var rs []rune
		for _, run := range c.Runs {
			for _, g := range run.Glyphs {
				rs = append(rs, g.Rune)
			}
		}
		texts = append(texts, string(rs))
	}
	return texts
}

// Replay sends the recorded commands to another driver, in the order they
// were recorded. Like Render, Replay continues after a driver error and
// returns the first one.
func (rec *Recorder) Replay(drv Driver) error {
	drv.SetCanvasSize(rec.W, rec.H)
	var first error
	for _, c := range rec.Commands {
		var err error
		switch c.Kind {
		case RectCommand:
			err = drv.DrawRect(c.Rect, c.Style)
		case GlyphsCommand:
			err = drv.DrawGlyphRun(c.Runs)
		case ImageCommand:
			err = drv.DrawImage(c.Rect, c.Image)
		}
		if err != nil && first == nil {
			first = core.WrapError(err, core.EINTERNAL, "driver cannot replay %s", c)
		}
	}
	return first
}
