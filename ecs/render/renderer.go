package render

import (
	"image"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/grid"
	"golang.org/x/image/colornames"
)

var defaultFloorColors = map[string]color.Color{
	"grass": colornames.Forestgreen,
	"stone": colornames.Slategray,
	"sand":  colornames.Khaki,
	"water": colornames.Steelblue,
	"wall":  colornames.Dimgray,
}

var unknownFloorColor color.Color = colornames.Magenta

// View projects y-up world coordinates onto a y-down screen centered on the
// camera.
type View struct {
	Center common.Vec2
	Zoom   float64
	Width  float64
	Height float64
}

// ToScreen maps a world point to screen pixels.
func (v View) ToScreen(p common.Vec2) (float64, float64) {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (p.X-v.Center.X)*zoom + v.Width/2, v.Height/2 - (p.Y-v.Center.Y)*zoom
}

// Renderer draws the tile map and every sprite through the camera.
type Renderer struct {
	Debug bool

	floors map[string]color.Color
	failed map[string]bool
}

func NewRenderer() *Renderer {
	return &Renderer{floors: defaultFloorColors, failed: make(map[string]bool)}
}

// SetFloorColor overrides the fill used for a floor kind.
func (r *Renderer) SetFloorColor(floor string, c color.Color) {
	merged := make(map[string]color.Color, len(r.floors)+1)
	for k, v := range r.floors {
		merged[k] = v
	}
	merged[floor] = c
	r.floors = merged
}

// CameraView returns the projection of the first camera, or false until the
// camera has a viewport.
func CameraView(w *ecs.World) (View, bool) {
	camEntity, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return View{}, false
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent)
	if cam.ViewportW <= 0 || cam.ViewportH <= 0 {
		return View{}, false
	}
	tr, _ := ecs.Get(w, camEntity, component.TransformComponent)
	return View{
		Center: common.Vec2{X: tr.X, Y: tr.Y},
		Zoom:   cam.Zoom,
		Width:  cam.ViewportW,
		Height: cam.ViewportH,
	}, true
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	view, ok := CameraView(w)
	if !ok {
		return
	}

	r.drawTiles(w, screen, view)
	r.drawSprites(w, screen, view)
	if r.Debug {
		r.drawDebug(w, screen, view)
	}
}

func (r *Renderer) drawTiles(w *ecs.World, screen *ebiten.Image, view View) {
	level, ok := w.First(component.LevelBoundsComponent.Kind(), component.TileMapComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent)
	tiles, _ := ecs.Get(w, level, component.TileMapComponent)
	mapper := bounds.Mapper()

	lo, hi := grid.Tile{}, grid.Tile{X: bounds.Width - 1, Y: bounds.Height - 1}
	if camEntity, ok := w.First(component.VisibleBoundsComponent.Kind()); ok {
		if vis, _ := ecs.Get(w, camEntity, component.VisibleBoundsComponent); !vis.Empty() {
			lo = bounds.ClampTile(mapper.WorldToTile(vis.Min))
			hi = bounds.ClampTile(mapper.WorldToTile(vis.Max))
		}
	}

	size := float32(bounds.TileSize * view.Zoom)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			t := grid.Tile{X: x, Y: y}
			cell, ok := tiles.At(t)
			if !ok {
				continue
			}
			c, ok := r.floors[cell.Floor]
			if !ok {
				c = unknownFloorColor
			}
			min, max := mapper.CellRect(t)
			sx, sy := view.ToScreen(common.Vec2{X: min.X, Y: max.Y})
			vector.FillRect(screen, float32(sx), float32(sy), size, size, c, false)
		}
	}
}

func (r *Renderer) drawSprites(w *ecs.World, screen *ebiten.Image, view View) {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		ti, _ := ecs.Get(w, entities[i], component.TransformComponent)
		tj, _ := ecs.Get(w, entities[j], component.TransformComponent)
		if ti.Z != tj.Z {
			return ti.Z < tj.Z
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		s, _ := ecs.Get(w, e, component.SpriteComponent)
		if s.FrameW <= 0 || s.FrameH <= 0 {
			continue
		}

		sheet := r.sheet(s.Sheet)
		sx, sy := view.ToScreen(common.Vec2{X: t.X, Y: t.Y})
		scaleX := t.ScaleX
		if scaleX == 0 {
			scaleX = 1
		}
		scaleY := t.ScaleY
		if scaleY == 0 {
			scaleY = 1
		}

		if sheet == nil {
			fw := float32(float64(s.FrameW) * scaleX * view.Zoom)
			fh := float32(float64(s.FrameH) * scaleY * view.Zoom)
			vector.FillRect(screen, float32(sx)-fw/2, float32(sy)-fh/2, fw, fh, colornames.Orange, false)
			continue
		}

		fx, fy := s.FrameOrigin()
		img, ok := sheet.SubImage(image.Rect(fx, fy, fx+s.FrameW, fy+s.FrameH)).(*ebiten.Image)
		if !ok {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(s.FrameW)/2, -float64(s.FrameH)/2)
		op.GeoM.Scale(scaleX*view.Zoom, scaleY*view.Zoom)
		op.GeoM.Translate(sx, sy)
		screen.DrawImage(img, op)
	}
}

func (r *Renderer) drawDebug(w *ecs.World, screen *ebiten.Image, view View) {
	for _, e := range w.Query(component.TransformComponent.Kind(), component.HitboxComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		hb, _ := ecs.Get(w, e, component.HitboxComponent)
		hw, hh := hb.Size()
		sx, sy := view.ToScreen(common.Vec2{X: t.X - hw/2, Y: t.Y + hh/2})
		vector.StrokeRect(screen, float32(sx), float32(sy), float32(hw*view.Zoom), float32(hh*view.Zoom), 1, colornames.Red, false)

		mv, ok := ecs.Get(w, e, component.MoveComponent)
		if !ok {
			continue
		}
		dx, dy := view.ToScreen(common.Vec2{X: mv.Destination.X - hw/2, Y: mv.Destination.Y + hh/2})
		vector.StrokeRect(screen, float32(dx), float32(dy), float32(hw*view.Zoom), float32(hh*view.Zoom), 1, colornames.Yellow, false)
	}
}

func (r *Renderer) sheet(name string) *ebiten.Image {
	if name == "" || r.failed[name] {
		return nil
	}
	img, err := LoadSheet(name)
	if err != nil {
		log.Printf("render: %v", err)
		r.failed[name] = true
		return nil
	}
	return img
}
