package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

// RenderSystem draws sprites in layer order. World sprites go through the
// camera; ScreenSpace sprites are drawn as-is on top.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}

	if e, ok := w.First(component.CameraComponent.Kind()); ok {
		if c, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			screen.Fill(c.Background)
		}
	}

	camX, camY, zoom := cameraCenter(w)
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	halfW, halfH := float64(sw)/2, float64(sh)/2

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layers := make(map[ecs.Entity]int, len(entities))
	for _, e := range entities {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layers[e] = layer.Index
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layers[entities[i]], layers[entities[j]]
		if li != lj {
			return li < lj
		}
		return entities[i] < entities[j]
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Image == nil || s.Hidden {
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		if s.FacingLeft {
			sx = -sx
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		if ecs.Has(w, e, component.ScreenSpaceComponent.Kind()) {
			op.GeoM.Translate(t.X, t.Y)
		} else {
			op.GeoM.Translate(t.X-camX, t.Y-camY)
			op.GeoM.Scale(zoom, zoom)
			op.GeoM.Translate(halfW, halfH)
		}

		if p, ok := ecs.Get(w, e, component.ParticleComponent.Kind()); ok {
			op.ColorScale.ScaleAlpha(float32(p.Alpha))
		}
		if s.Additive {
			op.Blend = ebiten.BlendLighter
		}

		screen.DrawImage(img, op)
	}

	DrawHUD(w, screen)
}
