package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/grid"
	"github.com/milk9111/tilewalker/prefabs"
	"github.com/milk9111/tilewalker/spatial"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":            addPlayerTag,
	"camera_tag":            addCameraTag,
	"input":                 addInput,
	"actor":                 addActor,
	"transform":             addTransform,
	"move_speed":            addMoveSpeed,
	"hitbox":                addHitbox,
	"sprite":                addSprite,
	"directional_animation": addDirectionalAnimation,
	"occupant":              addOccupant,
	"camera":                addCamera,
	"visible_bounds":        addVisibleBounds,
}

// actor must precede transform and occupant: it places the entity on its
// spawn tile, which the others read.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"actor",
	"transform",
	"move_speed",
	"hitbox",
	"sprite",
	"directional_animation",
	"occupant",
	"camera",
	"visible_bounds",
}

// reloadable lists the components re-applied to a live entity when its prefab
// changes on disk.
var reloadable = []string{"move_speed", "hitbox", "sprite", "directional_animation"}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := w.CreateEntity()
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	extra := make([]string, 0, len(remaining))
	for name := range remaining {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// ReloadEntity re-applies the tunable components of prefabPath to a live
// entity, leaving its position and motion untouched.
func ReloadEntity(w *ecs.World, e ecs.Entity, prefabPath string) error {
	if !w.IsAlive(e) {
		return fmt.Errorf("reload entity: %v: %w", e, component.ErrEntityNotAlive)
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return fmt.Errorf("reload entity: load %q: %w", prefabPath, err)
	}

	ctx := &buildContext{PrefabPath: prefabPath}
	for _, name := range reloadable {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			return fmt.Errorf("reload entity: %q: %q: %w", prefabPath, name, err)
		}
	}

	if occ, ok := ecs.Get(w, e, component.OccupantComponent); ok {
		if index := levelIndex(w); index != nil {
			index.Move(occ.Handle, occupantRect(w, e))
		}
	}
	ecs.Remove(w, e, component.AnimationStateComponent)
	return nil
}

// DestroyEntity removes e and releases its rectangle in the level index.
func DestroyEntity(w *ecs.World, e ecs.Entity) bool {
	if occ, ok := ecs.Get(w, e, component.OccupantComponent); ok {
		if index := levelIndex(w); index != nil {
			index.Remove(occ.Handle)
		}
	}
	return w.DestroyEntity(e)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent, component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent, component.Input{})
}

func addActor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ActorSpec](raw)
	if err != nil {
		return err
	}

	tile := grid.Tile{X: spec.Spawn.X, Y: spec.Spawn.Y}
	mapper := grid.NewMapper(common.DefaultTileSize, common.Vec2{})
	if level, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent)
		mapper = bounds.Mapper()
		if spawn, ok := ecs.Get(w, level, component.LevelSpawnComponent); ok {
			tile = spawn.Tile
		}
	}

	if err := ecs.Add(w, e, component.ActorPositionComponent, component.ActorPosition{Tile: tile, Z: spec.Z}); err != nil {
		return err
	}
	p := mapper.TileToWorld(tile)
	return ecs.Add(w, e, component.TransformComponent, component.Transform{X: p.X, Y: p.Y, Z: spec.Z, ScaleX: 1, ScaleY: 1})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformSpec](raw)
	if err != nil {
		return err
	}
	t, _ := ecs.Get(w, e, component.TransformComponent)
	t.ScaleX = spec.ScaleX
	t.ScaleY = spec.ScaleY
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addMoveSpeed(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MoveSpeedSpec](raw)
	if err != nil {
		return err
	}
	if spec.TilesPerSecond < 0 {
		return fmt.Errorf("negative speed %v", spec.TilesPerSecond)
	}
	return ecs.Add(w, e, component.MoveSpeedComponent, component.MoveSpeed{TilesPerSecond: spec.TilesPerSecond})
}

func addHitbox(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HitboxSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HitboxComponent, component.Hitbox{Width: spec.Width, Height: spec.Height})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteSpec](raw)
	if err != nil {
		return err
	}
	sprite := component.Sprite{
		Sheet:   spec.Sheet,
		Frame:   spec.Frame,
		FrameW:  spec.FrameW,
		FrameH:  spec.FrameH,
		Columns: spec.Columns,
	}
	// keep the current frame when re-applied mid-animation
	if cur, ok := ecs.Get(w, e, component.SpriteComponent); ok {
		sprite.Frame = cur.Frame
	}
	return ecs.Add(w, e, component.SpriteComponent, sprite)
}

func addDirectionalAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DirectionalAnimationSpec](raw)
	if err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	clips := make(map[component.Direction]component.Clip, len(spec.Clips))
	for name, c := range spec.Clips {
		dir, ok := component.ParseDirection(name)
		if !ok {
			return fmt.Errorf("%w: unknown direction %q", prefabs.ErrInvalidAnimation, name)
		}
		clips[dir] = component.Clip{First: c.First, Last: c.Last, FPS: uint8(c.FPS)}
	}
	return ecs.Add(w, e, component.DirectionalAnimationsComponent, component.DirectionalAnimations{Clips: clips})
}

// addOccupant registers the entity's hitbox as a dynamic rectangle in the
// level index. Without a loaded level there is nothing to register with.
func addOccupant(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	index := levelIndex(w)
	if index == nil {
		return nil
	}
	h := index.Insert(occupantRect(w, e), spatial.Dynamic, uint64(e))
	return ecs.Add(w, e, component.OccupantComponent, component.Occupant{Handle: h})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraSpec](raw)
	if err != nil {
		return err
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent, component.Camera{Zoom: zoom})
}

func addVisibleBounds(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VisibleBoundsComponent, component.VisibleBounds{})
}

func levelIndex(w *ecs.World) spatial.Index {
	level, ok := w.First(component.LevelIndexComponent.Kind())
	if !ok {
		return nil
	}
	idx, _ := ecs.Get(w, level, component.LevelIndexComponent)
	return idx.Index
}

// occupantRect centers the hitbox on the entity's logical tile, which lags the
// transform while a move is in flight.
func occupantRect(w *ecs.World, e ecs.Entity) spatial.Rect {
	hb, _ := ecs.Get(w, e, component.HitboxComponent)
	hw, hh := hb.Size()

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	center := common.Vec2{X: tr.X, Y: tr.Y}
	if pos, ok := ecs.Get(w, e, component.ActorPositionComponent); ok {
		if level, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
			bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent)
			center = bounds.Mapper().TileToWorld(pos.Tile)
		}
	}
	return spatial.RectFromCenter(center, hw, hh)
}
