package system

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		if anim.Requested != "" && anim.Requested != anim.Current {
			if _, ok := anim.Defs[anim.Requested]; ok {
				anim.Current = anim.Requested
				anim.Frame = 0
				anim.FrameTimer = 0
				anim.Playing = true
			}
		}
		anim.Requested = ""

		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		if anim.Playing {
			ticksPerFrame := 1
			if def.FPS > 0 {
				ticksPerFrame = max(1, int(common.TPS/def.FPS))
			}
			anim.FrameTimer++
			if anim.FrameTimer >= ticksPerFrame {
				anim.FrameTimer = 0
				anim.Frame++
				if anim.Frame >= def.FrameCount {
					if def.Loop {
						anim.Frame = 0
					} else {
						anim.Frame = def.FrameCount - 1
						anim.Playing = false
					}
				}
			}
		}

		if anim.Sheet == nil {
			return
		}
		x := def.ColStart*def.FrameW + anim.Frame*def.FrameW
		y := def.Row * def.FrameH
		sprite.Image = anim.Sheet.SubImage(image.Rect(x, y, x+def.FrameW, y+def.FrameH)).(*ebiten.Image)
		sprite.UseSource = false
	})
}
