package main

import (
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/ecs/render"
	"github.com/milk9111/treasurerun/prefabs"
	"github.com/milk9111/treasurerun/scene"
)

type Game struct {
	scenes  *scene.Manager
	watcher *prefabs.Watcher

	// overlay belongs to the scene it was built for.
	overlay      *ebitenui.UI
	overlayScene string
}

func NewGame(cfg scene.Config, watch bool) (*Game, error) {
	scenes, err := scene.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	g := &Game{scenes: scenes}

	if watch {
		dirs := prefabs.DiskDirs()
		if len(dirs) == 0 {
			log.Printf("watch: no prefabs directory under the working directory")
			return g, nil
		}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			return nil, err
		}
		g.watcher = w
		log.Printf("watch: reloading on changes in %v", dirs)
	}
	return g, nil
}

func (g *Game) Update() error {
	if err := g.pollWatcher(); err != nil {
		return err
	}
	if err := g.scenes.Update(); err != nil {
		return err
	}

	lc, done := g.scenes.Complete()
	current := g.scenes.Current().RunID.String()
	switch {
	case !done:
		g.overlay = nil
	case g.overlay == nil || g.overlayScene != current:
		g.overlay = NewCompleteUI(lc.Message, lc.Hint)
		g.overlayScene = current
	}
	if g.overlay != nil {
		g.overlay.Update()
	}
	return nil
}

func (g *Game) pollWatcher() error {
	changed, err := g.watcher.Poll()
	if err != nil {
		log.Printf("watch: %v", err)
	}
	if len(changed) == 0 {
		return nil
	}
	names := make([]string, 0, len(changed))
	for _, name := range changed {
		names = append(names, filepath.Base(name))
	}
	log.Printf("watch: %v changed, rebuilding scene", names)
	render.ForgetImages()
	if err := g.scenes.Reload("hot reload"); err != nil {
		// keep playing the old scene until the file is fixed
		log.Printf("watch: %v", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scenes.Draw(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if s := g.scenes.Current(); s != nil {
		s.Close()
	}
}
