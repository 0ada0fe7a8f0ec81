package entity

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/assets"
	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
	"github.com/milk9111/treasurerun/levels"
	"golang.org/x/image/colornames"
)

const groundLayer = 0

// LevelEntities are the handles LoadLevelToWorld created.
type LevelEntities struct {
	Tilemap      ecs.Entity
	Bounds       ecs.Entity
	Solids       []ecs.Entity
	Collectibles []ecs.Entity
}

// LoadLevelToWorld adds the tilemap, merged tile colliders, world bounds and
// the object-layer collectibles. Only the first key and the first chest are
// placed; coins are placed as listed.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, opts Options) (LevelEntities, error) {
	var out LevelEntities
	if w == nil || lvl == nil {
		return out, fmt.Errorf("load level: world and level are required")
	}
	ts := float64(lvl.TileSize)

	out.Bounds = ecs.CreateEntity(w)
	if err := ecs.Add(w, out.Bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.PixelWidth(),
		Height: lvl.PixelHeight(),
	}); err != nil {
		return out, fmt.Errorf("load level: add bounds: %w", err)
	}

	tm := &component.Tilemap{
		Level: lvl,
		Water: lvl.FilterTiles(func(p levels.TileProps) bool { return p.Water }),
	}
	if flag, ok := lvl.FindTile(func(p levels.TileProps) bool { return p.IsFlag }); ok {
		tm.Flag = flag
		tm.HasFlag = true
	} else {
		log.Printf("level %s: no flag tile", lvl.Name)
	}
	if !opts.Headless {
		img, err := renderGround(lvl)
		if err != nil {
			return out, fmt.Errorf("load level: %w", err)
		}
		tm.Image = img
	}

	out.Tilemap = ecs.CreateEntity(w)
	if err := ecs.Add(w, out.Tilemap, component.TilemapComponent.Kind(), tm); err != nil {
		return out, fmt.Errorf("load level: add tilemap: %w", err)
	}
	if err := ecs.Add(w, out.Tilemap, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return out, fmt.Errorf("load level: add tilemap transform: %w", err)
	}
	if err := ecs.Add(w, out.Tilemap, component.SpriteComponent.Kind(), &component.Sprite{Image: tm.Image}); err != nil {
		return out, fmt.Errorf("load level: add tilemap sprite: %w", err)
	}
	if err := ecs.Add(w, out.Tilemap, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: groundLayer}); err != nil {
		return out, fmt.Errorf("load level: add tilemap layer: %w", err)
	}

	for _, r := range lvl.SolidRects() {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X:      float64(r.X) * ts,
			Y:      float64(r.Y) * ts,
			ScaleX: 1,
			ScaleY: 1,
		}); err != nil {
			return out, err
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:         component.BodySolid,
			Width:        float64(r.W) * ts,
			Height:       float64(r.H) * ts,
			Friction:     0.9,
			Static:       true,
			AlignTopLeft: true,
		}); err != nil {
			return out, err
		}
		out.Solids = append(out.Solids, e)
	}

	placed := map[gameplay.CollectibleKind]int{}
	for _, obj := range lvl.Objects {
		kind, ok := gameplay.ParseCollectibleKind(obj.Name)
		if !ok {
			log.Printf("level %s: skipping unknown object %q", lvl.Name, obj.Name)
			continue
		}
		if kind != gameplay.KindCoin && placed[kind] > 0 {
			continue
		}
		e, err := NewCollectible(w, kind, obj.X, obj.Y, opts)
		if err != nil {
			return out, fmt.Errorf("load level: %w", err)
		}
		placed[kind]++
		out.Collectibles = append(out.Collectibles, e)
	}
	for _, kind := range []gameplay.CollectibleKind{gameplay.KindKey, gameplay.KindChest} {
		if placed[kind] == 0 {
			log.Printf("level %s: no %s object", lvl.Name, kind)
		}
	}
	log.Printf("level %s: %d coins, %d solids, %d water tiles", lvl.Name, placed[gameplay.KindCoin], len(out.Solids), len(tm.Water))

	return out, nil
}

// FlagCell returns the tilemap's goal cell for the player controller.
func FlagCell(tm *component.Tilemap) *gameplay.Cell {
	if tm == nil || !tm.HasFlag {
		return nil
	}
	return &gameplay.Cell{X: tm.Flag.X, Y: tm.Flag.Y}
}

func renderGround(lvl *levels.Level) (*ebiten.Image, error) {
	ts := lvl.TileSize
	ground := ebiten.NewImage(lvl.Width*ts, lvl.Height*ts)
	tiles := make(map[int]*ebiten.Image, len(lvl.Tiles))

	for ty := 0; ty < lvl.Height; ty++ {
		for tx := 0; tx < lvl.Width; tx++ {
			t, ok := lvl.TileAt(tx, ty)
			if !ok {
				continue
			}
			img, ok := tiles[t.ID]
			if !ok {
				c, err := tileColor(t.Props)
				if err != nil {
					return nil, fmt.Errorf("tile %d: %w", t.ID, err)
				}
				img = ebiten.NewImageFromImage(assets.TileImage(ts, c))
				tiles[t.ID] = img
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(tx*ts), float64(ty*ts))
			ground.DrawImage(img, op)
		}
	}
	return ground, nil
}

func tileColor(p levels.TileProps) (color.RGBA, error) {
	if p.Color != "" {
		return common.ParseHexColor(p.Color)
	}
	switch {
	case p.Dangerous:
		return colornames.Red, nil
	case p.Water:
		return colornames.Dodgerblue, nil
	case p.IsFlag:
		return colornames.Gold, nil
	default:
		return colornames.Saddlebrown, nil
	}
}
