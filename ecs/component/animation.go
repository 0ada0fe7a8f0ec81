package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

type AnimationDef struct {
	Name       string
	Row        int
	ColStart   int
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

// Animation plays rows of a sprite sheet. Setting Requested switches clips
// on the next animation tick without restarting the current one.
type Animation struct {
	Sheet      *ebiten.Image
	Defs       map[string]AnimationDef
	Current    string
	Requested  string
	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()
