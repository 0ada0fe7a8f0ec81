package component

// MusicRequest is a one-shot request for global music playback. An empty
// Track fades the current song out and leaves silence.
type MusicRequest struct {
	Track         string
	Volume        float64
	Loop          bool
	FadeOutFrames int
}

var MusicRequestComponent = NewComponent[MusicRequest]()
