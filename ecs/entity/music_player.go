package entity

import (
	"fmt"

	"github.com/milk9111/treasurerun/ecs"
)

// NewMusicPlayer builds the music entity. The prefab's autoplay track is
// queued as a request for the music system's first tick.
func NewMusicPlayer(w *ecs.World, opts Options) (ecs.Entity, error) {
	ent, err := BuildEntityWithOptions(w, "music_player.yaml", opts)
	if err != nil {
		return 0, fmt.Errorf("music player: %w", err)
	}
	return ent, nil
}
