package tree

import (
	"maps"
	"slices"

	"github.com/go-drift/hierarchy/pkg/data"
	"github.com/go-drift/hierarchy/pkg/errors"
	"github.com/go-drift/hierarchy/pkg/layout"
)

type node struct {
	name          string // display name, fixed at creation
	depth         int    // root = 0
	path          string // parent display path at creation
	focus         bool
	visible       bool
	parentVisible bool

	container *layout.Container
	data      *data.Data

	permanent []nodeID
	removable map[int]nodeID
	slots     slotAllocator
	register  map[string]Segment
}

func newNode(depth int, parentVisible bool, name, path string, l layout.PositionLayout) *node {
	return &node{
		name:          name,
		depth:         depth,
		path:          path,
		visible:       true,
		parentVisible: parentVisible,
		container:     layout.NewContainer(l),
		removable:     make(map[int]nodeID),
		register:      make(map[string]Segment),
	}
}

func (n *node) displayPath() string {
	switch {
	case n.depth == 0:
		return ""
	case n.path != "":
		return n.path + "/" + n.name
	default:
		return n.name
	}
}

func (n *node) isVisible() bool {
	return n.visible && n.parentVisible
}

// removableSlots returns occupied slot ids in ascending order.
func (n *node) removableSlots() []int {
	return slices.Sorted(maps.Keys(n.removable))
}

// children returns child ids in cascade order: permanent by index, then
// removable by ascending slot.
func (n *node) children() []nodeID {
	ids := make([]nodeID, 0, len(n.permanent)+len(n.removable))
	ids = append(ids, n.permanent...)
	for _, slot := range n.removableSlots() {
		ids = append(ids, n.removable[slot])
	}
	return ids
}

// childID returns the id stored under seg, if any.
func (n *node) childID(seg Segment) (nodeID, bool) {
	switch seg.Class {
	case Permanent:
		if seg.Index < 0 || seg.Index >= len(n.permanent) {
			return nodeID{}, false
		}
		return n.permanent[seg.Index], true
	case Removable:
		id, ok := n.removable[seg.Index]
		return id, ok
	}
	return nodeID{}, false
}

// Branch is a handle to one node of a Hierarchy.
//
// Handles are cheap and may be copied. All handles to a node share its
// state; once the node is destroyed every handle to it becomes invalid.
type Branch struct {
	arena *arena
	id    nodeID
}

func (b *Branch) node() *node {
	if b == nil || b.arena == nil {
		return nil
	}
	return b.arena.get(b.id)
}

// live returns the node or a detached error for op.
func (b *Branch) live(op string) (*node, error) {
	n := b.node()
	if n == nil {
		return nil, errors.New(op, errors.KindDetached, "", errors.ErrDetached, "the branch handle refers to a destroyed node")
	}
	return n, nil
}

func (b *Branch) handle(id nodeID) *Branch {
	return &Branch{arena: b.arena, id: id}
}

// Valid reports whether the branch still exists.
func (b *Branch) Valid() bool {
	return b.node() != nil
}

// Same reports whether two handles refer to the same live node.
func (b *Branch) Same(other *Branch) bool {
	return b.Valid() && other.Valid() && b.arena == other.arena && b.id == other.id
}

// Name returns the display name given at creation.
func (b *Branch) Name() string {
	if n := b.node(); n != nil {
		return n.name
	}
	return ""
}

// Depth returns the distance from the root.
func (b *Branch) Depth() int {
	if n := b.node(); n != nil {
		return n.depth
	}
	return 0
}

// LayerDepth returns the depth used for draw ordering. A focused branch is
// lifted half a level above its siblings.
func (b *Branch) LayerDepth() float64 {
	n := b.node()
	if n == nil {
		return 0
	}
	if n.focus {
		return float64(n.depth) + 0.5
	}
	return float64(n.depth)
}

// Path returns the display path, built from names. The root has an empty path.
func (b *Branch) Path() string {
	if n := b.node(); n != nil {
		return n.displayPath()
	}
	return ""
}

// Focus reports the focus flag.
func (b *Branch) Focus() bool {
	n := b.node()
	return n != nil && n.focus
}

// SetFocus sets the focus flag.
func (b *Branch) SetFocus(focus bool) {
	if n := b.node(); n != nil {
		n.focus = focus
	}
}

// Visible returns the branch's own visibility flag.
func (b *Branch) Visible() bool {
	n := b.node()
	return n != nil && n.visible
}

// ParentVisible returns the visibility last pushed down by the parent.
func (b *Branch) ParentVisible() bool {
	n := b.node()
	return n != nil && n.parentVisible
}

// IsVisible reports effective visibility: own flag and parent flag together.
func (b *Branch) IsVisible() bool {
	n := b.node()
	return n != nil && n.isVisible()
}

// SetVisible sets the own visibility flag. Descendants are only updated when
// the effective visibility of this branch changes.
func (b *Branch) SetVisible(visible bool) {
	n := b.node()
	if n == nil {
		return
	}
	old := n.isVisible()
	n.visible = visible
	if n.isVisible() != old {
		b.arena.pushVisibility(n)
	}
}

// Data returns the payload, or nil if none is attached.
func (b *Branch) Data() *data.Data {
	if n := b.node(); n != nil {
		return n.data
	}
	return nil
}

// SetData attaches d as the payload. Passing nil detaches it.
func (b *Branch) SetData(d *data.Data) {
	if n := b.node(); n != nil {
		n.data = d
	}
}

// EnsureData returns the payload, attaching an empty one first if needed.
func (b *Branch) EnsureData() *data.Data {
	n := b.node()
	if n == nil {
		return nil
	}
	if n.data == nil {
		n.data = data.New()
	}
	return n.data
}

// Container returns the layout container.
func (b *Branch) Container() *layout.Container {
	if n := b.node(); n != nil {
		return n.container
	}
	return nil
}

// Layout returns the branch's position layout.
func (b *Branch) Layout() layout.PositionLayout {
	if n := b.node(); n != nil {
		return n.container.Layout()
	}
	return nil
}

// SetLayout replaces the position layout. It applies on the next layout pass.
func (b *Branch) SetLayout(l layout.PositionLayout) {
	if n := b.node(); n != nil {
		n.container.SetLayout(l)
	}
}
