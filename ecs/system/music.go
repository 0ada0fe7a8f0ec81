package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/treasurerun/assets"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

const (
	defaultMusicVolume     = 0.5
	defaultMusicFadeFrames = 30
)

// MusicSystem owns background music playback. Requests are one-shot
// entities; the newest request of a tick wins and older ones are dropped.
type MusicSystem struct{}

func NewMusicSystem() *MusicSystem {
	return &MusicSystem{}
}

func RequestMusic(w *ecs.World, track string) {
	RequestMusicWithOptions(w, &component.MusicRequest{Track: track, Loop: true, FadeOutFrames: defaultMusicFadeFrames})
}

func RequestMusicWithOptions(w *ecs.World, req *component.MusicRequest) {
	if w == nil || req == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.MusicRequestComponent.Kind(), req)
}

// StopMusic fades the current track out.
func StopMusic(w *ecs.World) {
	RequestMusicWithOptions(w, &component.MusicRequest{FadeOutFrames: defaultMusicFadeFrames})
}

// HaltMusic pauses every loaded track immediately. The scene calls it when
// its world is discarded, since no further ticks will finish a fade.
func HaltMusic(w *ecs.World) {
	ecs.ForEach(w, component.MusicPlayerComponent.Kind(), func(_ ecs.Entity, mp *component.MusicPlayer) {
		for _, p := range mp.Players {
			if p != nil && p.IsPlaying() {
				p.Pause()
			}
		}
		mp.CurrentTrack = ""
		mp.PendingActive = false
	})
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	latest, requests := m.consumeLatestRequest(w)
	for _, ent := range requests {
		ecs.DestroyEntity(w, ent)
	}

	ent, ok := w.First(component.MusicPlayerComponent.Kind())
	if !ok {
		return
	}
	mp, ok := ecs.Get(w, ent, component.MusicPlayerComponent.Kind())
	if !ok {
		return
	}
	if mp.Players == nil {
		mp.Players = make(map[string]*audio.Player)
	}
	if mp.TrackVolumes == nil {
		mp.TrackVolumes = make(map[string]float64)
	}

	if latest != nil {
		m.applyRequest(mp, *latest)
	}

	if mp.PendingActive {
		m.updateTransition(mp)
	}
}

func (m *MusicSystem) consumeLatestRequest(w *ecs.World) (*component.MusicRequest, []ecs.Entity) {
	var (
		latest   *component.MusicRequest
		requests []ecs.Entity
	)
	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(ent ecs.Entity, req *component.MusicRequest) {
		requests = append(requests, ent)
		r := *req
		latest = &r
	})
	return latest, requests
}

func (m *MusicSystem) applyRequest(mp *component.MusicPlayer, req component.MusicRequest) {
	track := strings.TrimSpace(req.Track)
	volume := req.Volume
	if volume <= 0 {
		if v, ok := mp.TrackVolumes[track]; ok && v > 0 {
			volume = v
		} else {
			volume = defaultMusicVolume
		}
	}
	volume = min(volume, 1)
	fadeFrames := req.FadeOutFrames
	if fadeFrames <= 0 {
		fadeFrames = defaultMusicFadeFrames
	}

	current := m.currentPlayer(mp)
	if track != "" && !mp.PendingActive && mp.CurrentTrack == track {
		mp.CurrentVolume = volume
		if current != nil {
			current.SetVolume(volume)
			if !current.IsPlaying() {
				current.Play()
			}
		}
		return
	}

	mp.PendingTrack = track
	mp.PendingVolume = volume
	mp.PendingLoop = req.Loop
	mp.PendingActive = true
	if current == nil {
		m.switchToPending(mp)
		return
	}
	mp.FadeStep = mp.CurrentVolume / float64(fadeFrames)
	if mp.FadeStep <= 0 {
		mp.FadeStep = 1
	}
}

func (m *MusicSystem) updateTransition(mp *component.MusicPlayer) {
	current := m.currentPlayer(mp)
	if current == nil {
		m.switchToPending(mp)
		return
	}

	mp.CurrentVolume -= mp.FadeStep
	if mp.CurrentVolume > 0 {
		current.SetVolume(mp.CurrentVolume)
		return
	}

	mp.CurrentVolume = 0
	current.Pause()
	_ = current.Rewind()
	mp.CurrentTrack = ""
	mp.CurrentLoop = false
	m.switchToPending(mp)
}

func (m *MusicSystem) switchToPending(mp *component.MusicPlayer) {
	if !mp.PendingActive {
		return
	}

	track := mp.PendingTrack
	volume := mp.PendingVolume
	loop := mp.PendingLoop
	mp.PendingTrack = ""
	mp.PendingVolume = 0
	mp.PendingLoop = false
	mp.PendingActive = false
	mp.FadeStep = 0

	mp.CurrentTrack = track
	mp.CurrentVolume = volume
	mp.CurrentLoop = loop
	if track == "" {
		mp.CurrentVolume = 0
		mp.CurrentLoop = false
		return
	}
	if mp.Muted {
		return
	}

	p, err := m.playerForTrack(mp, track, loop)
	if err != nil {
		log.Printf("music: load %q: %v", track, err)
		mp.CurrentTrack = ""
		return
	}
	_ = p.Rewind()
	p.SetVolume(volume)
	p.Play()
}

func (m *MusicSystem) currentPlayer(mp *component.MusicPlayer) *audio.Player {
	if mp.Muted || mp.CurrentTrack == "" {
		return nil
	}
	return mp.Players[mp.CurrentTrack]
}

func (m *MusicSystem) playerForTrack(mp *component.MusicPlayer, track string, loop bool) (*audio.Player, error) {
	if existing, ok := mp.Players[track]; ok && existing != nil {
		return existing, nil
	}

	load := assets.LoadAudioPlayer
	if loop {
		load = assets.LoadLoopingPlayer
	}
	p, err := load(track)
	if err != nil {
		return nil, fmt.Errorf("music player %q: %w", track, err)
	}
	mp.Players[track] = p
	return p, nil
}
