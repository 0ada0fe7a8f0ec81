package component

import "github.com/milk9111/treasurerun/gameplay"

// Collectible is an object-layer pickup. LockedContact stays set while the
// player keeps touching a locked chest so the notice is logged once.
type Collectible struct {
	Item          gameplay.Collectible
	Width         float64
	Height        float64
	LockedContact bool
	TouchedTick   uint64
}

var CollectibleComponent = NewComponent[Collectible]()
