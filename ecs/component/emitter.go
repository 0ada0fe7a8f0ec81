package component

import "github.com/hajimehoshi/ebiten/v2"

// EmitterConfig describes how particles are spawned. Durations are in
// milliseconds, speeds in pixels per second.
type EmitterConfig struct {
	Name       string
	Image      string
	Quantity   int
	MaxAlive   int
	Frequency  float64
	Lifespan   float64
	SpeedXMin  float64
	SpeedXMax  float64
	SpeedYMin  float64
	SpeedYMax  float64
	Speed      float64
	SpeedMax   float64
	GravityY   float64
	AlphaStart float64
	AlphaEnd   float64
	ScaleStart float64
	ScaleEnd   float64
	Additive   bool
	Layer      int
}

// Emitter spawns particles at its Transform, or at an offset from Follow
// when Follow is set.
type Emitter struct {
	Config EmitterConfig
	// Texture is nil when the scene runs without graphics.
	Texture  *ebiten.Image
	Emitting bool
	Follow   uint64
	OffsetX  float64
	OffsetY  float64
	// SpeedX overrides the horizontal range while non-zero.
	SpeedX  float64
	Elapsed float64
	Alive   int
	// Pending holds bursts queued for the next particle tick.
	Pending []Burst
}

// Burst is a one-shot explode request.
type Burst struct {
	X     float64
	Y     float64
	Count int
}

var EmitterComponent = NewComponent[Emitter]()

type Particle struct {
	Emitter  uint64
	VX       float64
	VY       float64
	GravityY float64
	Age      float64
	Lifespan float64
	AlphaA   float64
	AlphaB   float64
	ScaleA   float64
	ScaleB   float64
	Alpha    float64
	Scale    float64
}

var ParticleComponent = NewComponent[Particle]()

// WaterAmbience periodically emits smoke over a random water tile.
type WaterAmbience struct {
	Emitter  uint64
	Interval float64
	Timer    float64
}

var WaterAmbienceComponent = NewComponent[WaterAmbience]()
