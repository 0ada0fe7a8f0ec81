package component

// ScoreHUD is the screen-space score label. Text is re-rendered only when
// Score differs from the session score.
type ScoreHUD struct {
	Score int
	Text  string
	X     float64
	Y     float64
}

var ScoreHUDComponent = NewComponent[ScoreHUD]()

// DebugOverlay toggles physics shape drawing and controller state text.
type DebugOverlay struct {
	Enabled bool
}

var DebugOverlayComponent = NewComponent[DebugOverlay]()
