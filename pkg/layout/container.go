package layout

import "github.com/go-drift/hierarchy/pkg/graphics"

// PositionLayout computes a node's rectangle from the rectangle its parent
// hands down during a layout pass.
type PositionLayout interface {
	Compute(parent graphics.Rect) graphics.Rect
}

// Container holds a node's layout and the result of the most recent pass.
type Container struct {
	layout   PositionLayout
	parent   graphics.Rect
	position graphics.Rect
}

// NewContainer creates a container using the given layout.
// A nil layout makes the container fill its parent.
func NewContainer(layout PositionLayout) *Container {
	return &Container{layout: layout}
}

// Update recomputes the container's position from the incoming parent rectangle.
func (c *Container) Update(origin graphics.Offset, width, height float64) {
	c.parent = graphics.RectFromLTWH(origin.X, origin.Y, width, height)
	if c.layout == nil {
		c.position = c.parent
		return
	}
	c.position = c.layout.Compute(c.parent)
}

// Position returns the rectangle computed by the last Update.
func (c *Container) Position() graphics.Rect {
	return c.position
}

// Parent returns the incoming rectangle of the last Update.
func (c *Container) Parent() graphics.Rect {
	return c.parent
}

// Layout returns the container's layout.
func (c *Container) Layout() PositionLayout {
	return c.layout
}

// SetLayout replaces the container's layout. The new layout takes effect on
// the next Update.
func (c *Container) SetLayout(layout PositionLayout) {
	c.layout = layout
}
