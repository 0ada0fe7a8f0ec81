package component

// LevelComplete is added once the goal is reached. Physics stops stepping
// while it exists.
type LevelComplete struct {
	Message string
	Hint    string
	Score   int
}

var LevelCompleteComponent = NewComponent[LevelComplete]()
