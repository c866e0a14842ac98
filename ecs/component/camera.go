package component

import "github.com/milk9111/tilewalker/common"

// Camera describes the viewport in screen pixels. Zoom scales world units to
// pixels.
type Camera struct {
	Zoom      float64
	ViewportW float64
	ViewportH float64
}

// WorldViewport returns the viewport size in world units.
func (c Camera) WorldViewport() (float64, float64) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return c.ViewportW / zoom, c.ViewportH / zoom
}

var CameraComponent = NewComponent[Camera]()

// VisibleBounds is the world-space rectangle currently on screen. It stays
// zero until the bounds system first runs.
type VisibleBounds struct {
	Min common.Vec2
	Max common.Vec2
}

func (v VisibleBounds) Empty() bool {
	return v.Max.X <= v.Min.X || v.Max.Y <= v.Min.Y
}

var VisibleBoundsComponent = NewComponent[VisibleBounds]()
