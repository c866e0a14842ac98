package component

import "github.com/milk9111/tilewalker/grid"

// ActorPosition is the logical tile an actor stands on. Only the movement
// system writes it, once per completed move.
type ActorPosition struct {
	Tile grid.Tile
	Z    float64
}

var ActorPositionComponent = NewComponent[ActorPosition]()
