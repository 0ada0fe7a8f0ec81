package component

import "github.com/milk9111/treasurerun/gameplay"

type Player struct {
	Tuning gameplay.Tuning
	SpawnX float64
	SpawnY float64
}

var PlayerComponent = NewComponent[Player]()
