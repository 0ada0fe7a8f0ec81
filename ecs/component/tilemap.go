package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/levels"
)

// Tilemap is the loaded level. Image is the pre-rendered ground layer and
// stays nil when the scene runs without graphics.
type Tilemap struct {
	Level *levels.Level
	Image *ebiten.Image
	Flag  levels.Tile
	// HasFlag is false for levels without a goal tile.
	HasFlag bool
	Water   []levels.Tile
}

var TilemapComponent = NewComponent[Tilemap]()
