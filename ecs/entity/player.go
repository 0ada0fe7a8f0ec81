package entity

import (
	"fmt"

	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
)

// NewPlayerAt builds the player prefab at a spawn point. flag is the goal
// cell handed to the controller and may be nil.
func NewPlayerAt(w *ecs.World, x, y float64, flag *gameplay.Cell, opts Options) (ecs.Entity, error) {
	ent, err := BuildEntityWithOptions(w, "player.yaml", opts)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, ent, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}

	player, ok := ecs.Get(w, ent, component.PlayerComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("player: prefab has no player component")
	}
	player.SpawnX = x
	player.SpawnY = y

	if err := ecs.Add(w, ent, component.PlayerControllerComponent.Kind(), &component.PlayerController{
		Controller: gameplay.NewController(player.Tuning, flag),
	}); err != nil {
		return 0, fmt.Errorf("player: add controller: %w", err)
	}
	return ent, nil
}
