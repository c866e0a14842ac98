package system

import (
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/grid"
)

const (
	EventMoveStarted   = "move_started"
	EventMoveBlocked   = "move_blocked"
	EventMoveCompleted = "move_completed"
)

// MoveEvent is the payload of every movement event. Floor is the floor kind
// of To, empty when the map has no metadata for it.
type MoveEvent struct {
	Entity ecs.Entity
	From   grid.Tile
	To     grid.Tile
	Floor  string
}

func pushMoveEvent(w *ecs.World, typ string, evt MoveEvent) {
	w.Events().Push(ecs.Event{Type: typ, Data: evt})
}
