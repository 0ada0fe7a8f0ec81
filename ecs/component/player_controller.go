package component

import "github.com/milk9111/treasurerun/gameplay"

// PlayerController carries the level controller for the player entity and
// the last motion it resolved.
type PlayerController struct {
	Controller *gameplay.Controller
	Last       gameplay.Motion
	Outcome    gameplay.Outcome
}

var PlayerControllerComponent = NewComponent[PlayerController]()
