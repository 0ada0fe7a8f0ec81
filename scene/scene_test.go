package scene

import (
	"fmt"
	"strings"
	"testing"

	"github.com/milk9111/treasurerun/ecs/system"
	"github.com/milk9111/treasurerun/gameplay"
	"github.com/milk9111/treasurerun/levels"
)

const (
	spawnX = 45.0
	spawnY = 60.0
)

const (
	groundPlain = `0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,0,0,0,0, 1,1,1,1,1,1`
	groundFlag  = `0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,2,0,0,0, 1,1,1,1,1,1`
	groundSpike = `0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,0,0,0,0, 0,0,0,0,0,0, 1,1,3,1,1,1`
)

// testLevel is a 6x6 room with 18px tiles and the player spawning in cell
// (2, 3). Every object is placed on the spawn point.
func testLevel(t *testing.T, ground string, objects ...string) *levels.Level {
	t.Helper()
	objs := make([]string, 0, len(objects))
	for _, name := range objects {
		objs = append(objs, fmt.Sprintf(`{"name": %q, "x": %v, "y": %v}`, name, spawnX, spawnY))
	}
	data := fmt.Sprintf(`{
  "name": "test",
  "tile_size": 18,
  "width": 6,
  "height": 6,
  "spawn": {"x": %v, "y": %v},
  "tiles": {"1": {"collides": true}, "2": {"isflag": true}, "3": {"collides": true, "dangerous": true}},
  "ground": [%s],
  "objects": [%s]
}`, spawnX, spawnY, ground, strings.Join(objs, ", "))
	lvl, err := levels.Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse test level: %v", err)
	}
	return lvl
}

// scripted feeds a fixed raw input that tests flip between ticks.
type scripted struct {
	raw gameplay.RawInput
}

func (s *scripted) Poll() gameplay.RawInput {
	return s.raw
}

func newManager(t *testing.T, lvl *levels.Level, in system.InputSource) *Manager {
	t.Helper()
	m, err := NewManager(Config{Level: lvl, Mute: true, Headless: true, Input: in, Seed: 1})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func tick(t *testing.T, m *Manager, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := m.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
}

func TestNewSceneDefaultLevel(t *testing.T) {
	s, err := New(Config{Mute: true, Headless: true, Seed: 1})
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	x, y := s.PlayerPosition()
	if x != 30 || y != 345 {
		t.Fatalf("expected spawn (30, 345), got (%v, %v)", x, y)
	}
	if s.Score() != 0 || s.HasKey() {
		t.Fatalf("expected fresh session, got score %d key %v", s.Score(), s.HasKey())
	}
	if got := s.Collectibles(gameplay.KindCoin); got != 22 {
		t.Fatalf("expected 22 coins, got %d", got)
	}
	if s.Collectibles(gameplay.KindKey) != 1 || s.Collectibles(gameplay.KindChest) != 1 {
		t.Fatalf("expected one key and one chest")
	}
	for i := 0; i < 30; i++ {
		s.Update()
	}
	if _, ok := s.RestartRequested(); ok {
		t.Fatalf("idle player should not restart")
	}
}

func TestRestartResetsScoreAndPosition(t *testing.T) {
	in := &scripted{}
	m := newManager(t, testLevel(t, groundPlain, "coin"), in)
	first := m.Current().RunID

	tick(t, m, 1)
	if got := m.Current().Score(); got != 10 {
		t.Fatalf("expected coin collected on the first tick, score %d", got)
	}

	in.raw.Restart = true
	tick(t, m, 1)
	if m.Restarts() != 1 {
		t.Fatalf("expected one restart, got %d", m.Restarts())
	}
	s := m.Current()
	if s.RunID == first {
		t.Fatalf("expected a new scene after restart")
	}
	if s.Score() != 0 {
		t.Fatalf("expected score 0 after restart, got %d", s.Score())
	}
	if x, y := s.PlayerPosition(); x != spawnX || y != spawnY {
		t.Fatalf("expected player at spawn, got (%v, %v)", x, y)
	}
	if s.Collectibles(gameplay.KindCoin) != 1 {
		t.Fatalf("expected the coin to be back")
	}

	// still held: the new scene only primes on it
	tick(t, m, 3)
	if m.Restarts() != 1 {
		t.Fatalf("held restart key fired again, restarts %d", m.Restarts())
	}
}

func TestCoinCollectedOncePerInstance(t *testing.T) {
	tests := []struct {
		name  string
		coins int
		want  int
	}{
		{name: "single coin", coins: 1, want: 10},
		{name: "stacked coins", coins: 3, want: 30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			objs := make([]string, tc.coins)
			for i := range objs {
				objs[i] = "coin"
			}
			m := newManager(t, testLevel(t, groundPlain, objs...), &scripted{})
			tick(t, m, 30)
			s := m.Current()
			if s.Score() != tc.want {
				t.Fatalf("expected score %d, got %d", tc.want, s.Score())
			}
			if s.Collectibles(gameplay.KindCoin) != 0 {
				t.Fatalf("expected every coin destroyed")
			}
		})
	}
}

func TestChestNeedsKey(t *testing.T) {
	m := newManager(t, testLevel(t, groundPlain, "chest"), &scripted{})
	tick(t, m, 20)
	s := m.Current()
	if s.Score() != 0 || s.HasKey() {
		t.Fatalf("locked chest changed the session: score %d key %v", s.Score(), s.HasKey())
	}
	if s.Collectibles(gameplay.KindChest) != 1 {
		t.Fatalf("locked chest was destroyed")
	}
}

func TestFlagEndsLevel(t *testing.T) {
	tests := []struct {
		name    string
		objects []string
		score   int
		message string
	}{
		{name: "empty handed", score: 0, message: gameplay.MessageWin},
		{name: "coin key chest", objects: []string{"coin", "key", "chest"}, score: 1010, message: gameplay.MessageWin},
		{name: "special", objects: append(repeat("coin", 21), "key", "chest"), score: 1210, message: gameplay.MessageSpecialWin},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := &scripted{}
			m := newManager(t, testLevel(t, groundFlag, tc.objects...), in)

			var done bool
			for i := 0; i < 120 && !done; i++ {
				tick(t, m, 1)
				_, done = m.Complete()
			}
			lc, ok := m.Complete()
			if !ok {
				t.Fatalf("player never reached the flag")
			}
			if lc.Score != tc.score || lc.Message != tc.message {
				t.Fatalf("expected %d %q, got %d %q", tc.score, tc.message, lc.Score, lc.Message)
			}
			if lc.Hint != gameplay.RestartHint {
				t.Fatalf("unexpected hint %q", lc.Hint)
			}

			x, y := m.Current().PlayerPosition()
			in.raw.Right = true
			tick(t, m, 30)
			if nx, ny := m.Current().PlayerPosition(); nx != x || ny != y {
				t.Fatalf("physics kept running after the flag: (%v, %v) -> (%v, %v)", x, y, nx, ny)
			}

			in.raw = gameplay.RawInput{Restart: true}
			tick(t, m, 1)
			if m.Restarts() != 1 {
				t.Fatalf("restart is still honoured after the flag")
			}
			if _, ok := m.Complete(); ok {
				t.Fatalf("fresh scene should not be complete")
			}
		})
	}
}

func TestHazardRestarts(t *testing.T) {
	m := newManager(t, testLevel(t, groundSpike, "coin"), &scripted{})

	best := 0
	for i := 0; i < 120 && m.Restarts() == 0; i++ {
		best = max(best, m.Current().Score())
		tick(t, m, 1)
	}
	if m.Restarts() != 1 {
		t.Fatalf("expected the hazard to restart the scene")
	}
	if best != 10 {
		t.Fatalf("expected the coin before the hazard, best score %d", best)
	}
	if m.Current().Score() != 0 {
		t.Fatalf("expected score 0 after hazard restart, got %d", m.Current().Score())
	}
}

func repeat(name string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = name
	}
	return out
}
