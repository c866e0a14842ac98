package spatial

import "github.com/milk9111/tilewalker/common"

// Rect is an axis-aligned rectangle in world space.
type Rect struct {
	Min, Max common.Vec2
}

func RectFromCenter(center common.Vec2, w, h float64) Rect {
	return Rect{
		Min: common.Vec2{X: center.X - w/2, Y: center.Y - h/2},
		Max: common.Vec2{X: center.X + w/2, Y: center.Y + h/2},
	}
}

// Overlaps reports whether r and o share any point, including shared edges.
// Containment in either direction is a special case of overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}
