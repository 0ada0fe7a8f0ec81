package levels

import (
	"errors"
	"testing"
)

func TestLoadDefaultLevel(t *testing.T) {
	lvl, err := Load("")
	if err != nil {
		t.Fatalf("load default level: %v", err)
	}
	if lvl.Width != 45 || lvl.Height != 25 || lvl.TileSize != 18 {
		t.Fatalf("unexpected dimensions %dx%d tile %d", lvl.Width, lvl.Height, lvl.TileSize)
	}
	if lvl.Spawn.X != 30 || lvl.Spawn.Y != 345 {
		t.Fatalf("unexpected spawn %+v", lvl.Spawn)
	}

	flag, ok := lvl.FindTile(func(p TileProps) bool { return p.IsFlag })
	if !ok {
		t.Fatalf("expected a flag tile")
	}
	if flag.X != 43 || flag.Y != 20 {
		t.Fatalf("unexpected flag cell (%d,%d)", flag.X, flag.Y)
	}
	if len(lvl.ObjectsNamed("key")) != 1 || len(lvl.ObjectsNamed("chest")) != 1 {
		t.Fatalf("expected one key and one chest")
	}
	if len(lvl.FilterTiles(func(p TileProps) bool { return p.Water })) == 0 {
		t.Fatalf("expected water tiles")
	}
}

func TestLoadNames(t *testing.T) {
	for _, name := range []string{"level1", "level1.json", "levels/level1.json"} {
		if _, err := Load(name); err != nil {
			t.Fatalf("load %q: %v", name, err)
		}
	}
	if _, err := Load("missing"); err == nil {
		t.Fatalf("expected error for missing level")
	}
}

func testLevel() *Level {
	return &Level{
		TileSize: 10,
		Width:    4,
		Height:   3,
		Tiles: map[int]TileProps{
			1: {Collides: true},
			2: {Collides: true, Dangerous: true},
			3: {IsFlag: true},
		},
		Ground: []int{
			0, 0, 0, 3,
			1, 1, 0, 0,
			1, 1, 2, 2,
		},
	}
}

func TestTileQueries(t *testing.T) {
	lvl := testLevel()
	if err := lvl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cases := []struct {
		name   string
		x, y   float64
		ok     bool
		id     int
		danger bool
	}{
		{"empty", 5, 5, false, 0, false},
		{"flag", 35, 5, true, 3, false},
		{"solid_edge", 10, 10, true, 1, false},
		{"hazard", 29.9, 25, true, 2, true},
		{"negative", -1, 5, false, 0, false},
		{"beyond_bottom", 5, 30, false, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tile, ok := lvl.TileAtWorld(c.x, c.y)
			if ok != c.ok {
				t.Fatalf("expected ok=%v, got %v", c.ok, ok)
			}
			if tile.ID != c.id || tile.Props.Dangerous != c.danger {
				t.Fatalf("unexpected tile %+v", tile)
			}
		})
	}

	if tx, ty := lvl.WorldToTile(-0.5, 19.99); tx != -1 || ty != 1 {
		t.Fatalf("unexpected cell (%d,%d)", tx, ty)
	}
	if cx, cy := lvl.TileCenter(2, 1); cx != 25 || cy != 15 {
		t.Fatalf("unexpected center (%v,%v)", cx, cy)
	}
}

func TestSolidRects(t *testing.T) {
	stacked := testLevel()
	stacked.Ground = []int{
		1, 1, 0, 0,
		1, 1, 0, 2,
		1, 1, 0, 2,
	}
	cases := []struct {
		name string
		lvl  *Level
		want []Rect
	}{
		{"row_runs", testLevel(), []Rect{
			{X: 0, Y: 1, W: 2, H: 1},
			{X: 0, Y: 2, W: 4, H: 1},
		}},
		{"stacked_runs", stacked, []Rect{
			{X: 0, Y: 0, W: 2, H: 3},
			{X: 3, Y: 1, W: 1, H: 2},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rects := c.lvl.SolidRects()
			if len(rects) != len(c.want) {
				t.Fatalf("expected %d rects, got %v", len(c.want), rects)
			}
			for i := range c.want {
				if rects[i] != c.want[i] {
					t.Fatalf("rect %d: expected %+v, got %+v", i, c.want[i], rects[i])
				}
			}
		})
	}
}

func TestSolidRectsCoverEachCellOnce(t *testing.T) {
	lvl, err := Load("")
	if err != nil {
		t.Fatalf("load default level: %v", err)
	}
	for _, l := range []*Level{testLevel(), lvl} {
		hits := make([]int, l.Width*l.Height)
		for _, r := range l.SolidRects() {
			for ty := r.Y; ty < r.Y+r.H; ty++ {
				for tx := r.X; tx < r.X+r.W; tx++ {
					hits[ty*l.Width+tx]++
				}
			}
		}
		for ty := 0; ty < l.Height; ty++ {
			for tx := 0; tx < l.Width; tx++ {
				want := 0
				if l.Solid(tx, ty) {
					want = 1
				}
				if got := hits[ty*l.Width+tx]; got != want {
					t.Fatalf("%s cell (%d,%d): covered %d times, expected %d", l.Name, tx, ty, got, want)
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(l *Level)
	}{
		{"zero_width", func(l *Level) { l.Width = 0 }},
		{"zero_tile", func(l *Level) { l.TileSize = 0 }},
		{"short_ground", func(l *Level) { l.Ground = l.Ground[:3] }},
		{"unknown_tile", func(l *Level) { l.Ground[0] = 9 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := testLevel()
			c.mutate(l)
			if err := l.Validate(); !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}
}
