package gameplay

// RawInput is the level state of the controls as polled this frame.
type RawInput struct {
	Left    bool
	Right   bool
	Jump    bool
	Restart bool
	Debug   bool
}

// Input is what the controller consumes: held directions plus
// pressed-this-tick edges for the one-shot actions.
type Input struct {
	Left           bool
	Right          bool
	JumpPressed    bool
	RestartPressed bool
	DebugPressed   bool
}

// EdgeDetector turns successive RawInput samples into Input by diffing
// against the previous sample. The first sample only primes the detector,
// so a key still held across a scene restart does not fire again.
type EdgeDetector struct {
	prev   RawInput
	primed bool
}

func (d *EdgeDetector) Next(cur RawInput) Input {
	in := Input{Left: cur.Left, Right: cur.Right}
	if d.primed {
		in.JumpPressed = cur.Jump && !d.prev.Jump
		in.RestartPressed = cur.Restart && !d.prev.Restart
		in.DebugPressed = cur.Debug && !d.prev.Debug
	}
	d.prev = cur
	d.primed = true
	return in
}

// Reset forgets the previous sample.
func (d *EdgeDetector) Reset() {
	d.prev = RawInput{}
	d.primed = false
}
