package gameplay

// MotionState is the player's movement state resolved for a single tick.
type MotionState int

const (
	StateIdle MotionState = iota
	StateWalk
	StateJump
)

func (s MotionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalk:
		return "walk"
	case StateJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Animation names the controller asks the sprite to play.
const (
	AnimIdle = "idle"
	AnimWalk = "walk"
	AnimJump = "jump"
)

// Facing is the sprite orientation requested for a tick.
type Facing int

const (
	FacingUnchanged Facing = iota
	FacingLeft
	FacingRight
)

// ParticleCommand tells the walking emitter what to do this tick.
type ParticleCommand int

const (
	ParticlesKeep ParticleCommand = iota
	ParticlesStart
	ParticlesStop
)

// Tuning holds the movement constants for the player.
type Tuning struct {
	Acceleration     float64
	Drag             float64
	JumpVelocity     float64
	ParticleVelocity float64
	// MaxSpeed bounds |vx|. Zero means unbounded.
	MaxSpeed         float64
}

// DefaultTuning matches the values shipped in prefabs/player.yaml.
func DefaultTuning() Tuning {
	return Tuning{
		Acceleration:     400,
		Drag:             2000,
		JumpVelocity:     -600,
		ParticleVelocity: 50,
		MaxSpeed:         10000,
	}
}

// Motion is the side-effect free result of resolving input against
// groundedness. Systems translate it into body velocity, sprite state and
// particles.
type Motion struct {
	State         MotionState
	AccelX        float64
	ApplyDrag     bool
	Facing        Facing
	Animation     string
	WalkParticles ParticleCommand
	Jump          bool
	VelocityY     float64
}

// ResolveMotion applies the per-tick movement rules in order: horizontal
// input (left wins over right), airborne animation override, then the jump
// impulse which only fires from the ground on a fresh press.
func ResolveMotion(in Input, grounded bool, t Tuning) Motion {
	var m Motion

	switch {
	case in.Left:
		m.State = StateWalk
		m.AccelX = -t.Acceleration
		m.Facing = FacingLeft
		m.Animation = AnimWalk
		if grounded {
			m.WalkParticles = ParticlesStart
		}
	case in.Right:
		m.State = StateWalk
		m.AccelX = t.Acceleration
		m.Facing = FacingRight
		m.Animation = AnimWalk
		if grounded {
			m.WalkParticles = ParticlesStart
		}
	default:
		m.State = StateIdle
		m.ApplyDrag = true
		m.Animation = AnimIdle
		m.WalkParticles = ParticlesStop
	}

	if !grounded {
		m.State = StateJump
		m.Animation = AnimJump
	}

	if grounded && in.JumpPressed {
		m.State = StateJump
		m.Jump = true
		m.VelocityY = t.JumpVelocity
	}

	return m
}

// IntegrateVelocityX advances horizontal velocity by one step of dt seconds.
// Acceleration wins over drag; drag only slows toward zero and never flips
// the direction of travel.
func IntegrateVelocityX(vx float64, m Motion, t Tuning, dt float64) float64 {
	switch {
	case m.AccelX != 0:
		vx += m.AccelX * dt
	case m.ApplyDrag && t.Drag > 0:
		d := t.Drag * dt
		switch {
		case vx-d > 0:
			vx -= d
		case vx+d < 0:
			vx += d
		default:
			vx = 0
		}
	}

	if t.MaxSpeed > 0 {
		if vx > t.MaxSpeed {
			vx = t.MaxSpeed
		} else if vx < -t.MaxSpeed {
			vx = -t.MaxSpeed
		}
	}
	return vx
}
