package frame

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// BoxID is a handle for a box within an arena.
type BoxID int32

// NoBox is the invalid box handle.
const NoBox BoxID = -1

// Arena owns all the boxes of a layout. Boxes reference their children by
// handle, never by pointer, which keeps the box tree free of back-references.
type Arena struct {
	boxes []*Box
}

// NewArena creates an empty arena, pre-allocating space for capacity boxes.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{boxes: make([]*Box, 0, capacity)}
}

// New allocates a new box of kind k and returns its handle.
func (a *Arena) New(k BoxKind, path string) BoxID {
	a.boxes = append(a.boxes, &Box{Kind: k, Path: path})
	return BoxID(len(a.boxes) - 1)
}

// Box returns the box for a handle, or nil for an invalid handle.
func (a *Arena) Box(id BoxID) *Box {
	if a == nil || id < 0 || int(id) >= len(a.boxes) {
		return nil
	}
	return a.boxes[id]
}

// AppendChild appends child to the children of parent.
func (a *Arena) AppendChild(parent, child BoxID) {
	if p := a.Box(parent); p != nil && a.Box(child) != nil {
		p.Children = append(p.Children, child)
	}
}

// Len returns the number of boxes in the arena.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.boxes)
}

// Walk visits the box tree starting at root in document order (pre-order).
// If f returns false, the children of a box are skipped.
func (a *Arena) Walk(root BoxID, f func(id BoxID, box *Box, depth int) bool) {
	type entry struct {
		id    BoxID
		depth int
	}
	if a.Box(root) == nil {
		return
	}
	stack := arraystack.New()
	stack.Push(entry{root, 0})
	for !stack.Empty() {
		v, _ := stack.Pop()
		e := v.(entry)
		box := a.boxes[e.id]
		if !f(e.id, box, e.depth) {
			continue
		}
		for i := len(box.Children) - 1; i >= 0; i-- {
			stack.Push(entry{box.Children[i], e.depth + 1})
		}
	}
}
