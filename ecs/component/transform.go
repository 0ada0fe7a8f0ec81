package component

// Transform is a world-space position. Bodies and sprites treat X/Y as the
// entity's center unless they say otherwise.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
