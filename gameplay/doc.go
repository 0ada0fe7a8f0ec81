// Package gameplay holds the level rules without any engine dependency:
// input edge detection, the Idle/Walk/Jump motion state machine, the
// per-tick controller and the collectible rules that drive score.
//
// ECS systems feed it frames and apply the returned decisions to physics
// bodies, sprites, particles and audio.
package gameplay
