package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
)

const hudTextScale = 2

var (
	hudFace  = ebtext.NewGoXFace(basicfont.Face7x13)
	hudColor = color.White
)

// HUDSystem keeps the score label in step with the session.
type HUDSystem struct{}

func NewHUDSystem() *HUDSystem {
	return &HUDSystem{}
}

func (h *HUDSystem) Update(w *ecs.World) {
	_, st, ok := levelState(w)
	if !ok {
		return
	}
	ecs.ForEach(w, component.ScoreHUDComponent.Kind(), func(_ ecs.Entity, hud *component.ScoreHUD) {
		if hud.Text != "" && hud.Score == st.Session.Score {
			return
		}
		hud.Score = st.Session.Score
		hud.Text = gameplay.ScoreText(hud.Score)
	})
}

// DrawHUD draws every score label in screen space.
func DrawHUD(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach(w, component.ScoreHUDComponent.Kind(), func(_ ecs.Entity, hud *component.ScoreHUD) {
		if hud.Text == "" {
			return
		}
		op := &ebtext.DrawOptions{}
		op.GeoM.Scale(hudTextScale, hudTextScale)
		op.GeoM.Translate(hud.X, hud.Y)
		op.ColorScale.ScaleWithColor(hudColor)
		ebtext.Draw(screen, hud.Text, hudFace, op)
	})
}
