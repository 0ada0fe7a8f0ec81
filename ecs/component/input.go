package component

import "github.com/milk9111/treasurerun/gameplay"

// Input stores the polled control state and the edges derived from it.
type Input struct {
	Raw     gameplay.RawInput
	Current gameplay.Input
	Edges   gameplay.EdgeDetector
}

var InputComponent = NewComponent[Input]()
