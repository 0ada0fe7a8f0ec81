package entity

import (
	"fmt"

	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
)

const hudLayer = 1000

// NewLevelState creates the per-attempt session entity and the screen-space
// score label. It returns the session entity.
func NewLevelState(w *ecs.World, scoring gameplay.Scoring, hudX, hudY float64, debug bool) (ecs.Entity, error) {
	stateEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, stateEntity, component.LevelStateComponent.Kind(), &component.LevelState{
		Session: gameplay.NewSession(scoring),
	}); err != nil {
		return 0, fmt.Errorf("level state: add state component: %w", err)
	}
	if err := ecs.Add(w, stateEntity, component.DebugOverlayComponent.Kind(), &component.DebugOverlay{Enabled: debug}); err != nil {
		return 0, fmt.Errorf("level state: add debug overlay: %w", err)
	}

	textEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, textEntity, component.ScoreHUDComponent.Kind(), &component.ScoreHUD{X: hudX, Y: hudY}); err != nil {
		return 0, fmt.Errorf("level state: add score hud: %w", err)
	}
	if err := ecs.Add(w, textEntity, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{}); err != nil {
		return 0, fmt.Errorf("level state: add hud screen-space: %w", err)
	}
	if err := ecs.Add(w, textEntity, component.TransformComponent.Kind(), &component.Transform{X: hudX, Y: hudY, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("level state: add hud transform: %w", err)
	}
	if err := ecs.Add(w, textEntity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: hudLayer}); err != nil {
		return 0, fmt.Errorf("level state: add hud layer: %w", err)
	}

	return stateEntity, nil
}
