package component

import "github.com/milk9111/tilewalker/common"

// Move exists only while an actor animates between two tiles. Progress runs
// from 0 to 1; Speed is progress per second.
type Move struct {
	Origin      common.Vec3
	Destination common.Vec3
	Progress    float64
	Speed       float64
}

var MoveComponent = NewComponent[Move]()

// MoveSpeed is the orthogonal movement rate in tiles per second.
type MoveSpeed struct {
	TilesPerSecond float64
}

var MoveSpeedComponent = NewComponent[MoveSpeed]()
