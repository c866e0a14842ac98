package entity

import (
	"fmt"

	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
)

const PlayerPrefab = "player.yaml"

// NewPlayer builds the player from its prefab. When a level is loaded the
// player starts on the level spawn and occupies its hitbox in the level index.
func NewPlayer(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if prefabPath == "" {
		prefabPath = PlayerPrefab
	}
	e, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if !ecs.Has(w, e, component.PlayerTagComponent) {
		DestroyEntity(w, e)
		return 0, fmt.Errorf("player: prefab %q has no player_tag", prefabPath)
	}
	return e, nil
}
