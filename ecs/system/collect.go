package system

import (
	"log"

	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
)

// CollectSystem applies the session's collectible rules to the overlaps the
// physics step reported.
type CollectSystem struct{}

func NewCollectSystem() *CollectSystem {
	return &CollectSystem{}
}

func (c *CollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, st, ok := levelState(w)
	if !ok {
		return
	}
	st.Tick++

	for _, evt := range w.Events().DrainType(ecs.EventOverlap) {
		item, ok := ecs.Get(w, evt.Other, component.CollectibleComponent.Kind())
		if !ok {
			continue
		}
		item.TouchedTick = st.Tick

		eff := st.Session.Collect(&item.Item)
		if eff.Locked {
			if !item.LockedContact {
				log.Printf("level: %s is locked", item.Item.Kind)
			}
			item.LockedContact = true
			continue
		}
		if !eff.Applied {
			continue
		}
		c.apply(w, evt.Other, item, eff)
	}

	// a locked contact ends once the player stops touching the chest
	ecs.ForEach(w, component.CollectibleComponent.Kind(), func(_ ecs.Entity, item *component.Collectible) {
		if item.LockedContact && item.TouchedTick != st.Tick {
			item.LockedContact = false
		}
	})
}

func (c *CollectSystem) apply(w *ecs.World, e ecs.Entity, item *component.Collectible, eff gameplay.Effect) {
	x, y := 0.0, 0.0
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x, y = tr.X, tr.Y
	}
	if eff.Burst {
		Burst(w, string(item.Item.Kind), x, y, 0)
	}
	if eff.Sound != "" {
		playSound(w, eff.Sound)
	}
	if eff.Destroy {
		ecs.DestroyEntity(w, e)
	}
	log.Printf("level: collected %s at (%.0f, %.0f)", item.Item.Kind, x, y)
}
