package entity

import (
	"fmt"

	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/gameplay"
)

// NewCollectible builds the prefab named after kind, centered on x, y.
func NewCollectible(w *ecs.World, kind gameplay.CollectibleKind, x, y float64, opts Options) (ecs.Entity, error) {
	ent, err := BuildEntityWithOptions(w, string(kind)+".yaml", opts)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", kind, err)
	}
	if err := SetEntityTransform(w, ent, x, y, 0); err != nil {
		return 0, fmt.Errorf("%s: override transform: %w", kind, err)
	}
	return ent, nil
}
