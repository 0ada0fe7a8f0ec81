package common

import "math"

const (
	// Gravity is the downward acceleration in pixels per second squared.
	Gravity = 1500.0
	// TPS is the fixed update rate; physics steps 1/TPS seconds per tick.
	TPS = 60
	// BaseWidth and BaseHeight are the logical screen size before zoom.
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// FollowAxis moves a camera coordinate toward target. The target may drift
// up to deadzone/2 from the camera before the camera starts following, and
// the remaining distance is closed by the lerp factor each call.
func FollowAxis(cam, target, deadzone, lerp float64) float64 {
	half := deadzone / 2
	goal := cam
	switch {
	case target > cam+half:
		goal = target - half
	case target < cam-half:
		goal = target + half
	}
	if lerp <= 0 || lerp > 1 {
		lerp = 1
	}
	return Lerp(cam, goal, lerp)
}

// ClampView keeps a view of size view centered at center inside [0, world].
// A world smaller than the view is centered.
func ClampView(center, view, world float64) float64 {
	if world <= view {
		return world / 2
	}
	return Clamp(center, view/2, world-view/2)
}

// Ranged returns lo + f*(hi-lo) for f in [0,1).
func Ranged(lo, hi, f float64) float64 {
	return lo + f*(hi-lo)
}
