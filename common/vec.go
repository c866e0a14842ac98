package common

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Vec3 is a world-space point. Z is the draw layer and does not take part in
// tile addressing.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Lerp3 interpolates each axis independently.
func Lerp3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}
