package component

import "image/color"

// Camera follows a target with linear interpolation. X/Y on the camera's
// Transform is the world point at the center of the view.
type Camera struct {
	TargetName string
	Zoom       float64
	Lerp       float64
	DeadzoneW  float64
	DeadzoneH  float64
	Background color.RGBA
	// ViewW and ViewH are the unzoomed screen size used for clamping.
	ViewW float64
	ViewH float64
}

var CameraComponent = NewComponent[Camera]()
