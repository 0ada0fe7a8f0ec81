package system

import (
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
)

func findEmitter(w *ecs.World, name string) (ecs.Entity, *component.Emitter, bool) {
	var (
		found ecs.Entity
		em    *component.Emitter
	)
	ecs.ForEach(w, component.EmitterComponent.Kind(), func(e ecs.Entity, c *component.Emitter) {
		if em == nil && c.Config.Name == name {
			found, em = e, c
		}
	})
	return found, em, em != nil
}

// Burst queues an explode of the named emitter at x, y. count <= 0 uses
// the emitter's configured quantity.
func Burst(w *ecs.World, name string, x, y float64, count int) bool {
	_, em, ok := findEmitter(w, name)
	if !ok {
		return false
	}
	if count <= 0 {
		count = em.Config.Quantity
	}
	em.Pending = append(em.Pending, component.Burst{X: x, Y: y, Count: count})
	return true
}

func levelState(w *ecs.World) (ecs.Entity, *component.LevelState, bool) {
	e, ok := w.First(component.LevelStateComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	st, ok := ecs.Get(w, e, component.LevelStateComponent.Kind())
	if !ok || st.Session == nil {
		return 0, nil, false
	}
	return e, st, true
}

func tilemap(w *ecs.World) (*component.Tilemap, bool) {
	e, ok := w.First(component.TilemapComponent.Kind())
	if !ok {
		return nil, false
	}
	tm, ok := ecs.Get(w, e, component.TilemapComponent.Kind())
	if !ok || tm.Level == nil {
		return nil, false
	}
	return tm, true
}

func levelComplete(w *ecs.World) bool {
	_, ok := w.First(component.LevelCompleteComponent.Kind())
	return ok
}

func playSound(w *ecs.World, name string) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if au, ok := ecs.Get(w, player, component.AudioComponent.Kind()); ok {
		au.Request(name)
	}
}

// RequestRestart marks the scene for a rebuild. Only the first request of
// a tick is kept.
func RequestRestart(w *ecs.World, reason gameplay.Outcome) {
	if _, ok := w.First(component.RestartRequestComponent.Kind()); ok {
		return
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.RestartRequestComponent.Kind(), &component.RestartRequest{Reason: reason})
}
