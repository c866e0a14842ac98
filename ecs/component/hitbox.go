package component

// Hitbox is the world-space size of the rectangle used for occupancy checks,
// centered on the actor.
type Hitbox struct {
	Width  float64
	Height float64
}

const (
	DefaultHitboxWidth  = 10.0
	DefaultHitboxHeight = 10.0
)

// Size returns the hitbox dimensions, falling back to the defaults for unset
// axes.
func (h Hitbox) Size() (float64, float64) {
	w, ht := h.Width, h.Height
	if w <= 0 {
		w = DefaultHitboxWidth
	}
	if ht <= 0 {
		ht = DefaultHitboxHeight
	}
	return w, ht
}

var HitboxComponent = NewComponent[Hitbox]()
