package layout

import (
	"fmt"
	"image"
	"image/color"

	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/frame"
	"github.com/npillmayer/xtl/engine/frame/inline"
)

// ItemKind is the type of a display list item.
type ItemKind uint8

// Kinds of display list items.
const (
	BackgroundItem ItemKind = iota // filled rectangle
	BorderItem                     // one side of a border
	TextItem                       // a line of text
	ImageItem                      // content of a replaced box
)

func (k ItemKind) String() string {
	switch k {
	case BackgroundItem:
		return "background"
	case BorderItem:
		return "border"
	case TextItem:
		return "text"
	}
	return "image"
}

// Item is a paint command of a display list.
//
// For text items, Origin is the point on the line's baseline where the
// paragraph's left edge is. Glyph positions and decorations of Line are
// relative to it.
type Item struct {
	Kind        ItemKind
	Box         frame.BoxID
	Rect        dimen.Rect      // background, border side or image
	Color       color.RGBA      // fill or border color
	BorderStyle css.BorderStyle // for border items
	Side        int             // for border items, frame.Top … frame.Left
	Line        *inline.Line    // for text items
	Origin      dimen.Point     // for text items
	Image       image.Image     // for image items
}

func (it Item) String() string {
	switch it.Kind {
	case TextItem:
		return fmt.Sprintf("text @%v %s", it.Origin, it.Line)
	case BorderItem:
		return fmt.Sprintf("border[%d] %s %v", it.Side, it.BorderStyle, it.Rect)
	}
	return fmt.Sprintf("%s %v", it.Kind, it.Rect)
}

// DisplayList is a list of paint commands in paint order.
type DisplayList []Item

// Flatten produces the display list for a box tree. Items are emitted in
// document order: for every box its background, its border, its text and
// list marker, its image, and then its children. Floats are emitted at their
// place in the document.
func Flatten(arena *frame.Arena, root frame.BoxID) DisplayList {
	var dl DisplayList
	arena.Walk(root, func(id frame.BoxID, box *frame.Box, _ int) bool {
		if box.Style.Background.A != 0 {
			dl = append(dl, Item{
				Kind:  BackgroundItem,
				Box:   id,
				Rect:  box.PaddingBox(),
				Color: box.Style.Background,
			})
		}
		dl = appendBorders(dl, id, box)
		if box.Text != nil {
			for _, line := range box.Text.Lines {
				dl = append(dl, Item{
					Kind:   TextItem,
					Box:    id,
					Line:   line,
					Origin: dimen.Point{X: box.TopL.X, Y: box.TopL.Y + line.Baseline},
				})
			}
		}
		if box.Marker != nil {
			dl = append(dl, Item{
				Kind:   TextItem,
				Box:    id,
				Line:   box.Marker,
				Origin: box.MarkerAt,
			})
		}
		if box.Image != nil {
			dl = append(dl, Item{
				Kind:  ImageItem,
				Box:   id,
				Rect:  box.ContentBox(),
				Image: box.Image,
			})
		}
		return true
	})
	tracer().Debugf("display list has %d items", len(dl))
	return dl
}

func appendBorders(dl DisplayList, id frame.BoxID, box *frame.Box) DisplayList {
	outer, inner := box.BorderBox(), box.PaddingBox()
	for side := frame.Top; side <= frame.Left; side++ {
		if box.BorderWidth[side] == 0 || box.Style.BorderStyle[side] == css.BorderNone {
			continue
		}
		r := outer
		switch side {
		case frame.Top:
			r.BotR.Y = inner.TopL.Y
		case frame.Right:
			r.TopL.X = inner.BotR.X
		case frame.Bottom:
			r.TopL.Y = inner.BotR.Y
		case frame.Left:
			r.BotR.X = inner.TopL.X
		}
		dl = append(dl, Item{
			Kind:        BorderItem,
			Box:         id,
			Rect:        r,
			Color:       box.Style.BorderColor[side],
			BorderStyle: box.Style.BorderStyle[side],
			Side:        side,
		})
	}
	return dl
}
