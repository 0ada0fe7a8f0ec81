package component

import "github.com/milk9111/treasurerun/gameplay"

// RestartRequest is a marker telling the game shell to rebuild the scene.
type RestartRequest struct {
	Reason gameplay.Outcome
}

var RestartRequestComponent = NewComponent[RestartRequest]()
