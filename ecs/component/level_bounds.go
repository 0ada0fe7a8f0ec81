package component

// LevelBounds stores the world-space size of the current level. Physics
// fences it with static segments and the camera clamps to it.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
