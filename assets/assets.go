// Package assets produces the game's placeholder art and sound at runtime.
// Nothing is loaded from disk: sprites are drawn into RGBA images and sound
// effects are synthesized and rendered to PCM.
package assets

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	imageMu    sync.Mutex
	imageCache = map[string]*ebiten.Image{}
)

// LoadImage returns the named sprite, building and caching it on first use.
// Names may carry a directory or extension ("assets/coin.png" == "coin").
func LoadImage(name string) (*ebiten.Image, error) {
	key := cleanAssetName(name)
	imageMu.Lock()
	defer imageMu.Unlock()

	if img, ok := imageCache[key]; ok {
		return img, nil
	}
	src, err := Picture(key)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	imageCache[key] = img
	return img, nil
}

func cleanAssetName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "assets/")
	s = path.Base(s)
	return strings.TrimSuffix(s, path.Ext(s))
}

func unknownAsset(kind, name string) error {
	return fmt.Errorf("assets: unknown %s %q", kind, name)
}
