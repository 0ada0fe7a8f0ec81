package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/assets"
)

// LoadImage returns the sprite for key. A PNG under assets/ in the working
// directory replaces the generated placeholder of the same name.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := loadImageFromFSOrAssets(key)
	if err != nil {
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

func loadImageFromFSOrAssets(key string) (*ebiten.Image, error) {
	if src, err := decodeOverride(key); err == nil {
		return ebiten.NewImageFromImage(src), nil
	}
	img, err := assets.LoadImage(key)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return img, nil
}

// decodeOverride reads assets/<key>.png from disk.
func decodeOverride(key string) (image.Image, error) {
	name := filepath.Base(key)
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	b, err := os.ReadFile(filepath.Join("assets", strings.ToLower(name)))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", name, err)
	}
	return img, nil
}
