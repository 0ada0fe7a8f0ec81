package levels

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrInvalidLevel = errors.New("levels: invalid level")

// TileProps are the per-tile-id properties of the ground layer.
type TileProps struct {
	Collides  bool   `json:"collides"`
	Dangerous bool   `json:"dangerous"`
	Water     bool   `json:"water"`
	IsFlag    bool   `json:"isflag"`
	Color     string `json:"color,omitempty"`
}

// Object is an object-layer entry. X and Y are the object's center in
// world pixels.
type Object struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Level is a single tilemap: one ground layer of tile ids (0 = empty) in
// row-major order plus an object layer.
type Level struct {
	Name     string            `json:"name"`
	TileSize int               `json:"tile_size"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Spawn    Point             `json:"spawn"`
	Tiles    map[int]TileProps `json:"tiles"`
	Ground   []int             `json:"ground"`
	Objects  []Object          `json:"objects"`
}

// Tile is a resolved ground-layer cell.
type Tile struct {
	X     int
	Y     int
	ID    int
	Props TileProps
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	if l.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrInvalidLevel, l.TileSize)
	}
	if len(l.Ground) != l.Width*l.Height {
		return fmt.Errorf("%w: ground has %d cells, want %d", ErrInvalidLevel, len(l.Ground), l.Width*l.Height)
	}
	for i, id := range l.Ground {
		if id == 0 {
			continue
		}
		if _, ok := l.Tiles[id]; !ok {
			return fmt.Errorf("%w: unknown tile id %d at cell %d", ErrInvalidLevel, id, i)
		}
	}
	return nil
}

func (l *Level) PixelWidth() float64 {
	return float64(l.Width * l.TileSize)
}

func (l *Level) PixelHeight() float64 {
	return float64(l.Height * l.TileSize)
}

// WorldToTile converts a world position to the containing tile cell.
func (l *Level) WorldToTile(x, y float64) (int, int) {
	ts := float64(l.TileSize)
	return int(math.Floor(x / ts)), int(math.Floor(y / ts))
}

// TileCenter returns the world-space center of a cell.
func (l *Level) TileCenter(tx, ty int) (float64, float64) {
	ts := float64(l.TileSize)
	return float64(tx)*ts + ts/2, float64(ty)*ts + ts/2
}

func (l *Level) InBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && tx < l.Width && ty < l.Height
}

// TileAt returns the ground tile at a cell. Empty and out-of-range cells
// report false.
func (l *Level) TileAt(tx, ty int) (Tile, bool) {
	if !l.InBounds(tx, ty) {
		return Tile{}, false
	}
	id := l.Ground[ty*l.Width+tx]
	if id == 0 {
		return Tile{}, false
	}
	return Tile{X: tx, Y: ty, ID: id, Props: l.Props(id)}, true
}

func (l *Level) TileAtWorld(x, y float64) (Tile, bool) {
	tx, ty := l.WorldToTile(x, y)
	return l.TileAt(tx, ty)
}

func (l *Level) Props(id int) TileProps {
	return l.Tiles[id]
}

// FilterTiles returns every non-empty tile matching pred in row-major order.
func (l *Level) FilterTiles(pred func(TileProps) bool) []Tile {
	var out []Tile
	for ty := 0; ty < l.Height; ty++ {
		for tx := 0; tx < l.Width; tx++ {
			t, ok := l.TileAt(tx, ty)
			if ok && pred(t.Props) {
				out = append(out, t)
			}
		}
	}
	return out
}

// FindTile returns the first tile matching pred in row-major order.
func (l *Level) FindTile(pred func(TileProps) bool) (Tile, bool) {
	for ty := 0; ty < l.Height; ty++ {
		for tx := 0; tx < l.Width; tx++ {
			t, ok := l.TileAt(tx, ty)
			if ok && pred(t.Props) {
				return t, true
			}
		}
	}
	return Tile{}, false
}

// ObjectsNamed returns the objects with the given name in file order.
func (l *Level) ObjectsNamed(name string) []Object {
	var out []Object
	for _, o := range l.Objects {
		if o.Name == name {
			out = append(out, o)
		}
	}
	return out
}

// Solid reports whether a cell blocks movement.
func (l *Level) Solid(tx, ty int) bool {
	t, ok := l.TileAt(tx, ty)
	return ok && t.Props.Collides
}

// Rect is an axis-aligned block of cells in tile units.
type Rect struct {
	X, Y, W, H int
}

// SolidRects merges colliding cells into rectangles: runs along each row
// first, then identical runs stacked on consecutive rows.
func (l *Level) SolidRects() []Rect {
	type run struct{ x, w int }
	open := map[run]*Rect{}
	var out []*Rect

	for ty := 0; ty < l.Height; ty++ {
		next := map[run]*Rect{}
		for tx := 0; tx < l.Width; {
			if !l.Solid(tx, ty) {
				tx++
				continue
			}
			start := tx
			for tx < l.Width && l.Solid(tx, ty) {
				tx++
			}
			r := run{x: start, w: tx - start}
			if rect, ok := open[r]; ok {
				rect.H++
				next[r] = rect
				continue
			}
			rect := &Rect{X: start, Y: ty, W: r.w, H: 1}
			out = append(out, rect)
			next[r] = rect
		}
		open = next
	}

	rects := make([]Rect, 0, len(out))
	for _, r := range out {
		rects = append(rects, *r)
	}
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].Y != rects[j].Y {
			return rects[i].Y < rects[j].Y
		}
		return rects[i].X < rects[j].X
	})
	return rects
}
