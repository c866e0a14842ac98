package component

import "github.com/milk9111/tilewalker/spatial"

// Occupant links an entity to the rectangle it owns in the spatial index.
type Occupant struct {
	Handle spatial.Handle
}

var OccupantComponent = NewComponent[Occupant]()
