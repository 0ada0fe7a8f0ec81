package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// MusicPlayer is the scene's background music state. Players are loaded
// lazily per track; a Muted player accepts requests but never opens audio.
type MusicPlayer struct {
	Players      map[string]*audio.Player
	TrackVolumes map[string]float64
	Muted        bool

	CurrentTrack  string
	CurrentVolume float64
	CurrentLoop   bool

	PendingTrack  string
	PendingVolume float64
	PendingLoop   bool
	PendingActive bool

	FadeStep float64
}

var MusicPlayerComponent = NewComponent[MusicPlayer]()
