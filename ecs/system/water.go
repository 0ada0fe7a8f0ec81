package system

import (
	"math/rand/v2"

	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

// WaterAmbienceSystem releases smoke over a random water tile every
// interval.
type WaterAmbienceSystem struct {
	rng *rand.Rand
}

func NewWaterAmbienceSystem(seed uint64) *WaterAmbienceSystem {
	return &WaterAmbienceSystem{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

func (s *WaterAmbienceSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	tm, ok := tilemap(w)
	if !ok || len(tm.Water) == 0 {
		return
	}

	ecs.ForEach(w, component.WaterAmbienceComponent.Kind(), func(_ ecs.Entity, amb *component.WaterAmbience) {
		em, ok := ecs.Get(w, ecs.Entity(amb.Emitter), component.EmitterComponent.Kind())
		if !ok || amb.Interval <= 0 {
			return
		}
		amb.Timer += tickMS
		for amb.Timer >= amb.Interval {
			amb.Timer -= amb.Interval
			tile := tm.Water[s.rng.IntN(len(tm.Water))]
			x, y := tm.Level.TileCenter(tile.X, tile.Y)
			em.Pending = append(em.Pending, component.Burst{X: x, Y: y, Count: em.Config.Quantity})
		}
	})
}
