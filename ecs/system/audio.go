package system

import (
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

// AudioSystem starts and stops the requested sound slots. Requests on slots
// without a player (muted builds) are cleared without effect.
type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		for i := range audioComp.Play {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false
			if i >= len(audioComp.Players) || audioComp.Players[i] == nil {
				continue
			}
			player := audioComp.Players[i]
			player.SetVolume(audioComp.Volume[i])
			player.Rewind()
			player.Play()
		}

		for i := range audioComp.Stop {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false
			if i < len(audioComp.Players) && audioComp.Players[i] != nil && audioComp.Players[i].IsPlaying() {
				audioComp.Players[i].Pause()
			}
		}
	})
}
