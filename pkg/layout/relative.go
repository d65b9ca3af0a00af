package layout

import "github.com/go-drift/hierarchy/pkg/graphics"

// Relative places a node by its two corners, each given as a percentage of
// the parent (0-100) plus a pixel offset.
type Relative struct {
	// Absolute1 is added to the top-left corner, in pixels.
	Absolute1 graphics.Offset
	// Absolute2 is added to the bottom-right corner, in pixels.
	Absolute2 graphics.Offset
	// Relative1 is the top-left corner in percent of the parent.
	Relative1 graphics.Offset
	// Relative2 is the bottom-right corner in percent of the parent.
	Relative2 graphics.Offset
}

// Fill returns a Relative layout spanning the whole parent.
func Fill() Relative {
	return Relative{Relative2: graphics.Offset{X: 100, Y: 100}}
}

// Compute implements PositionLayout.
func (r Relative) Compute(parent graphics.Rect) graphics.Rect {
	w, h := parent.Width(), parent.Height()
	return graphics.Rect{
		Left:   parent.Left + w*r.Relative1.X/100 + r.Absolute1.X,
		Top:    parent.Top + h*r.Relative1.Y/100 + r.Absolute1.Y,
		Right:  parent.Left + w*r.Relative2.X/100 + r.Absolute2.X,
		Bottom: parent.Top + h*r.Relative2.Y/100 + r.Absolute2.Y,
	}
}
