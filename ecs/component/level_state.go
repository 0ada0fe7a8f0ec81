package component

import "github.com/milk9111/treasurerun/gameplay"

// LevelState is the per-attempt session shared by the scene's systems.
type LevelState struct {
	Session *gameplay.Session
	Tick    uint64
}

var LevelStateComponent = NewComponent[LevelState]()
