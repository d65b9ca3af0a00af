package layout

import "github.com/go-drift/hierarchy/pkg/graphics"

// Window places a node by its top-left corner and size. Every quantity has
// a pixel part and a percent-of-parent part that are summed.
type Window struct {
	Absolute graphics.Offset
	Relative graphics.Offset

	WidthAbsolute  float64
	WidthRelative  float64
	HeightAbsolute float64
	HeightRelative float64
}

// Compute implements PositionLayout.
func (l Window) Compute(parent graphics.Rect) graphics.Rect {
	w, h := parent.Width(), parent.Height()
	return graphics.RectFromLTWH(
		parent.Left+l.Absolute.X+w*l.Relative.X/100,
		parent.Top+l.Absolute.Y+h*l.Relative.Y/100,
		l.WidthAbsolute+w*l.WidthRelative/100,
		l.HeightAbsolute+h*l.HeightRelative/100,
	)
}
