package entity

import (
	"fmt"

	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

func NewCamera(w *ecs.World, opts Options) (ecs.Entity, error) {
	ent, err := BuildEntityWithOptions(w, "camera.yaml", opts)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return ent, nil
}

// NewCameraAt builds the camera already centered on x, y so the first frame
// does not sweep in from the origin.
func NewCameraAt(w *ecs.World, x, y float64, opts Options) (ecs.Entity, error) {
	camera, err := NewCamera(w, opts)
	if err != nil {
		return 0, err
	}
	transform, ok := ecs.Get(w, camera, component.TransformComponent.Kind())
	if !ok {
		transform = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	transform.X = x
	transform.Y = y
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), transform); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}
