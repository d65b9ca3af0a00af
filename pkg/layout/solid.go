package layout

import (
	"log"
	"math"

	"github.com/go-drift/hierarchy/pkg/graphics"
)

// SolidScale selects how a Solid box is scaled into its parent.
type SolidScale int

const (
	// SolidFit scales the box to the largest size contained by the parent.
	SolidFit SolidScale = iota
	// SolidFill scales the box to the smallest size covering the parent.
	SolidFill
)

func (s SolidScale) String() string {
	switch s {
	case SolidFill:
		return "fill"
	default:
		return "fit"
	}
}

// Solid keeps a fixed aspect ratio inside the parent rectangle.
//
// Width and Height only define the ratio. The anchors place the box within
// the leftover space: -1 aligns to the left/top edge, 0 centers, 1 aligns to
// the right/bottom edge.
type Solid struct {
	Width            float64
	Height           float64
	HorizontalAnchor float64
	VerticalAnchor   float64
	Scaling          SolidScale

	warned bool
}

// Compute implements PositionLayout.
func (s *Solid) Compute(parent graphics.Rect) graphics.Rect {
	if s.Width <= 0 || s.Height <= 0 {
		if !s.warned {
			log.Printf("WARNING: Solid layout with non-positive ratio %vx%v. "+
				"The node falls back to its parent rectangle.", s.Width, s.Height)
			s.warned = true
		}
		return parent
	}

	// A collapsed parent has no room to scale into.
	if parent.IsEmpty() {
		return graphics.RectFromLTWH(parent.Left, parent.Top, 0, 0)
	}

	pw, ph := parent.Width(), parent.Height()
	sx, sy := pw/s.Width, ph/s.Height
	scale := math.Min(sx, sy)
	if s.Scaling == SolidFill {
		scale = math.Max(sx, sy)
	}
	w, h := s.Width*scale, s.Height*scale

	left := parent.Left + (pw-w)*(clampAnchor(s.HorizontalAnchor)+1)/2
	top := parent.Top + (ph-h)*(clampAnchor(s.VerticalAnchor)+1)/2
	return graphics.RectFromLTWH(left, top, w, h)
}

func clampAnchor(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
