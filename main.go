package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/scene"
)

func main() {
	debug := flag.Bool("debug", false, "start with physics debug drawing on (toggle with D)")
	mute := flag.Bool("mute", false, "disable sound effects and music")
	watch := flag.Bool("watch", false, "rebuild the scene when files under prefabs/ change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("treasure run")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(scene.Config{
		LevelName: *levelName,
		Debug:     *debug,
		Mute:      *mute,
	}, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
