package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds one-shot sound effects for an entity. Play and Stop are
// per-slot requests cleared by the audio system.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Request marks the named slot for playback. Unknown names are ignored.
func (a *Audio) Request(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
