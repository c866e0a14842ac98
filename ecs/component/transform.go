package component

import "github.com/milk9111/tilewalker/common"

// Transform is the world-space placement handed to the renderer. Y grows
// upward; Z orders drawing.
type Transform struct {
	X      float64
	Y      float64
	Z      float64
	ScaleX float64
	ScaleY float64
}

func (t Transform) Position() common.Vec3 {
	return common.Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

func (t *Transform) SetPosition(p common.Vec3) {
	t.X, t.Y, t.Z = p.X, p.Y, p.Z
}

var TransformComponent = NewComponent[Transform]()
