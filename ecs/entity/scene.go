package entity

import (
	"fmt"

	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/grid"
	"github.com/milk9111/tilewalker/levels"
	"github.com/milk9111/tilewalker/prefabs"
)

// Scene holds the entities every frontend starts with.
type Scene struct {
	Level  ecs.Entity
	Player ecs.Entity
	Camera ecs.Entity
}

// LoadScene builds the level named by levelName (or spec.Level), the player
// and the camera. The map minimum is the window origin for a viewport of
// viewW x viewH world units; the camera viewport is set to the same size.
func LoadScene(w *ecs.World, spec prefabs.GameSpec, levelName string, viewW, viewH float64) (Scene, error) {
	if levelName == "" {
		levelName = spec.Level
	}
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}

	var s Scene
	if s.Level, err = LoadLevelToWorld(w, lvl, grid.WindowOrigin(viewW, viewH)); err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	if s.Player, err = NewPlayer(w, spec.Player); err != nil {
		w.DestroyEntity(s.Level)
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	if s.Camera, err = NewCamera(w, spec.Camera); err != nil {
		DestroyEntity(w, s.Player)
		w.DestroyEntity(s.Level)
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	SetCameraViewport(w, viewW, viewH)
	return s, nil
}
