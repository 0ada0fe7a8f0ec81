package gameplay

// Outcome is the scene-level result of a tick.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	// OutcomeRestart is a manual restart request.
	OutcomeRestart
	// OutcomeDeath is hazard contact. It resets the scene exactly like a
	// manual restart.
	OutcomeDeath
	// OutcomeComplete is reported once, on the tick the flag is reached.
	OutcomeComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeRestart:
		return "restart"
	case OutcomeDeath:
		return "death"
	case OutcomeComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Resets reports whether the outcome tears the scene down.
func (o Outcome) Resets() bool {
	return o == OutcomeRestart || o == OutcomeDeath
}

// Cell is a tile coordinate.
type Cell struct {
	X int
	Y int
}

// Frame is everything the controller needs to know about one tick.
type Frame struct {
	Input    Input
	Grounded bool
	// OnHazard is true when the tile under the player's feet is dangerous.
	OnHazard bool
	// Cell is the tile containing the player's center.
	Cell Cell
}

// Tick is the controller's decision for a frame.
type Tick struct {
	Motion  Motion
	Outcome Outcome
	// Frozen is set once the level is complete; callers must not move the
	// player or step physics.
	Frozen bool
}

// Controller resolves frames in a fixed order: movement, jump, restart,
// hazard, flag. After the flag is reached it only honours restart.
type Controller struct {
	tuning   Tuning
	flag     Cell
	hasFlag  bool
	complete bool
}

// NewController creates a controller. flag may be nil for levels without a
// goal tile.
func NewController(t Tuning, flag *Cell) *Controller {
	c := &Controller{tuning: t}
	if flag != nil {
		c.flag = *flag
		c.hasFlag = true
	}
	return c
}

func (c *Controller) Tuning() Tuning {
	return c.tuning
}

// Flag returns the goal cell, if any.
func (c *Controller) Flag() (Cell, bool) {
	return c.flag, c.hasFlag
}

func (c *Controller) Complete() bool {
	return c.complete
}

func (c *Controller) Step(f Frame) Tick {
	if c.complete {
		if f.Input.RestartPressed {
			return Tick{Outcome: OutcomeRestart, Frozen: true}
		}
		return Tick{Frozen: true}
	}

	t := Tick{Motion: ResolveMotion(f.Input, f.Grounded, c.tuning)}

	if f.Input.RestartPressed {
		t.Outcome = OutcomeRestart
		return t
	}
	if f.OnHazard {
		t.Outcome = OutcomeDeath
		return t
	}
	if c.hasFlag && f.Cell == c.flag {
		c.complete = true
		t.Outcome = OutcomeComplete
		return t
	}
	return t
}

const (
	MessageWin        = "You Win!"
	MessageSpecialWin = "Special Winner!"
	RestartHint       = "Press R to Restart (collect chest for special win)"
)

// WinMessage picks the end-game title. Scores strictly above the threshold
// earn the special message.
func WinMessage(score, threshold int) string {
	if score > threshold {
		return MessageSpecialWin
	}
	return MessageWin
}
