package system

import (
	"strings"
	"testing"

	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
	"github.com/milk9111/treasurerun/levels"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func newSessionWorld(t *testing.T) (*ecs.World, *gameplay.Session) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	sess := gameplay.NewSession(gameplay.DefaultScoring())
	mustAdd(t, w, e, component.LevelStateComponent.Kind(), &component.LevelState{Session: sess})
	return w, sess
}

func newCollectible(t *testing.T, w *ecs.World, kind gameplay.CollectibleKind) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 10})
	mustAdd(t, w, e, component.CollectibleComponent.Kind(), &component.Collectible{Item: gameplay.Collectible{Kind: kind}})
	return e
}

func overlap(w *ecs.World, other ecs.Entity) {
	w.Events().Push(ecs.Event{Type: ecs.EventOverlap, Other: other})
}

func TestCollectSystem(t *testing.T) {
	w, sess := newSessionWorld(t)
	coin := newCollectible(t, w, gameplay.KindCoin)
	key := newCollectible(t, w, gameplay.KindKey)
	chest := newCollectible(t, w, gameplay.KindChest)
	sys := NewCollectSystem()

	overlap(w, chest)
	sys.Update(w)
	if sess.Score != 0 || !w.IsAlive(chest) {
		t.Fatalf("chest opened without the key")
	}
	chestComp, _ := ecs.Get(w, chest, component.CollectibleComponent.Kind())
	if !chestComp.LockedContact {
		t.Fatalf("expected the locked contact to be tracked")
	}
	sys.Update(w)
	if chestComp.LockedContact {
		t.Fatalf("locked contact should clear once the overlap stops")
	}

	overlap(w, coin)
	overlap(w, coin)
	sys.Update(w)
	if sess.Score != 10 || w.IsAlive(coin) {
		t.Fatalf("expected one coin worth 10, got %d alive=%v", sess.Score, w.IsAlive(coin))
	}
	overlap(w, coin)
	sys.Update(w)
	if sess.Score != 10 {
		t.Fatalf("destroyed coin scored again: %d", sess.Score)
	}

	overlap(w, key)
	overlap(w, chest)
	sys.Update(w)
	if !sess.HasKey || sess.Score != 1010 || w.IsAlive(key) || w.IsAlive(chest) {
		t.Fatalf("expected key then chest, score %d key %v", sess.Score, sess.HasKey)
	}
}

const controllerLevel = `{
  "name": "controller",
  "tile_size": 10,
  "width": 4,
  "height": 4,
  "spawn": {"x": 5, "y": 5},
  "tiles": {"1": {"collides": true}, "2": {"isflag": true}, "3": {"collides": true, "dangerous": true}},
  "ground": [0, 0, 0, 0,
             0, 0, 0, 2,
             0, 0, 0, 0,
             1, 3, 1, 1]
}`

type controllerFixture struct {
	w      *ecs.World
	player ecs.Entity
	tr     *component.Transform
	input  *component.Input
}

func newControllerFixture(t *testing.T) controllerFixture {
	t.Helper()
	lvl, err := levels.Parse([]byte(controllerLevel))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w, _ := newSessionWorld(t)
	tmEnt := ecs.CreateEntity(w)
	mustAdd(t, w, tmEnt, component.TilemapComponent.Kind(), &component.Tilemap{Level: lvl})

	f := controllerFixture{w: w, player: ecs.CreateEntity(w)}
	f.tr = &component.Transform{X: 5, Y: 15}
	f.input = &component.Input{}
	mustAdd(t, w, f.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, f.player, component.TransformComponent.Kind(), f.tr)
	mustAdd(t, w, f.player, component.InputComponent.Kind(), f.input)
	mustAdd(t, w, f.player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 8, Height: 8})
	mustAdd(t, w, f.player, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{Grounded: true})
	mustAdd(t, w, f.player, component.PlayerControllerComponent.Kind(), &component.PlayerController{
		Controller: gameplay.NewController(gameplay.DefaultTuning(), &gameplay.Cell{X: 3, Y: 1}),
	})
	return f
}

func TestPlayerControllerOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		input    gameplay.Input
		restart  bool
		complete bool
	}{
		{name: "idle", x: 5, y: 15},
		{name: "restart pressed", x: 5, y: 15, input: gameplay.Input{RestartPressed: true}, restart: true},
		{name: "hazard under feet", x: 15, y: 25, restart: true},
		{name: "restart wins over flag", x: 35, y: 15, input: gameplay.Input{RestartPressed: true}, restart: true},
		{name: "flag", x: 35, y: 15, complete: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newControllerFixture(t)
			f.tr.X, f.tr.Y = tc.x, tc.y
			f.input.Current = tc.input

			NewPlayerControllerSystem(nil).Update(f.w)

			_, restarted := f.w.First(component.RestartRequestComponent.Kind())
			if restarted != tc.restart {
				t.Fatalf("restart: expected %v, got %v", tc.restart, restarted)
			}
			if restarted {
				if _, ok := f.w.First(component.MusicRequestComponent.Kind()); !ok {
					t.Fatalf("expected music to be stopped on restart")
				}
			}
			e, completed := f.w.First(component.LevelCompleteComponent.Kind())
			if completed != tc.complete {
				t.Fatalf("complete: expected %v, got %v", tc.complete, completed)
			}
			if completed {
				lc, _ := ecs.Get(f.w, e, component.LevelCompleteComponent.Kind())
				if lc.Message != gameplay.MessageWin || lc.Hint != gameplay.RestartHint {
					t.Fatalf("unexpected end-game %+v", lc)
				}
			}
		})
	}
}

func TestRequestRestartOncePerTick(t *testing.T) {
	w := ecs.NewWorld()
	RequestRestart(w, gameplay.OutcomeDeath)
	RequestRestart(w, gameplay.OutcomeRestart)
	if got := len(w.Query(component.RestartRequestComponent.Kind())); got != 1 {
		t.Fatalf("expected one restart request, got %d", got)
	}
	e, _ := w.First(component.RestartRequestComponent.Kind())
	req, _ := ecs.Get(w, e, component.RestartRequestComponent.Kind())
	if req.Reason != gameplay.OutcomeDeath {
		t.Fatalf("expected the first reason to be kept, got %v", req.Reason)
	}
}

func newEmitterWorld(t *testing.T, cfg component.EmitterConfig) (*ecs.World, ecs.Entity, *component.Emitter) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	em := &component.Emitter{Config: cfg}
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, e, component.EmitterComponent.Kind(), em)
	return w, e, em
}

func TestParticleLifecycle(t *testing.T) {
	w, _, em := newEmitterWorld(t, component.EmitterConfig{
		Name:       "coin",
		Quantity:   3,
		Lifespan:   90,
		Speed:      50,
		SpeedMax:   150,
		AlphaStart: 1,
		AlphaEnd:   0,
		ScaleStart: 1,
		ScaleEnd:   0.5,
	})
	sys := NewParticleSystem(7)

	if !Burst(w, "coin", 100, 50, 0) {
		t.Fatalf("expected the coin emitter to be found")
	}
	if Burst(w, "missing", 0, 0, 1) {
		t.Fatalf("unknown emitter should not accept bursts")
	}

	sys.Update(w)
	particles := w.Query(component.ParticleComponent.Kind())
	if len(particles) != 3 || em.Alive != 3 {
		t.Fatalf("expected 3 particles, got %d (alive %d)", len(particles), em.Alive)
	}
	p, _ := ecs.Get(w, particles[0], component.ParticleComponent.Kind())
	if p.Alpha >= 1 || p.Alpha <= 0 {
		t.Fatalf("expected alpha to fade after one tick, got %v", p.Alpha)
	}

	for i := 0; i < 4; i++ {
		sys.Update(w)
	}
	if got := len(w.Query(component.ParticleComponent.Kind())); got != 3 {
		t.Fatalf("particles expired early: %d left", got)
	}
	sys.Update(w)
	if got := len(w.Query(component.ParticleComponent.Kind())); got != 0 || em.Alive != 0 {
		t.Fatalf("expected every particle expired, got %d (alive %d)", got, em.Alive)
	}
}

func TestParticleMaxAlive(t *testing.T) {
	w, _, em := newEmitterWorld(t, component.EmitterConfig{
		Name:      "walking",
		Quantity:  1,
		MaxAlive:  2,
		Frequency: 10,
		Lifespan:  1000,
	})
	em.Emitting = true
	sys := NewParticleSystem(1)
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if got := len(w.Query(component.ParticleComponent.Kind())); got != 2 || em.Alive != 2 {
		t.Fatalf("expected the cap of 2, got %d (alive %d)", got, em.Alive)
	}

	em.Emitting = false
	sys.Update(w)
	if em.Elapsed != 0 {
		t.Fatalf("stopped emitter should reset its clock")
	}
}

func TestWaterAmbienceQueuesBursts(t *testing.T) {
	lvl, err := levels.Parse([]byte(`{"name": "w", "tile_size": 10, "width": 2, "height": 1,
		"tiles": {"4": {"water": true}}, "ground": [4, 4]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w, emEnt, em := newEmitterWorld(t, component.EmitterConfig{Name: "water", Quantity: 1})
	tmEnt := ecs.CreateEntity(w)
	mustAdd(t, w, tmEnt, component.TilemapComponent.Kind(), &component.Tilemap{
		Level: lvl,
		Water: lvl.FilterTiles(func(p levels.TileProps) bool { return p.Water }),
	})
	ambEnt := ecs.CreateEntity(w)
	mustAdd(t, w, ambEnt, component.WaterAmbienceComponent.Kind(), &component.WaterAmbience{Emitter: uint64(emEnt), Interval: 240})

	sys := NewWaterAmbienceSystem(3)
	for i := 0; i < 14; i++ {
		sys.Update(w)
	}
	if len(em.Pending) != 0 {
		t.Fatalf("burst before the interval elapsed")
	}
	sys.Update(w)
	if len(em.Pending) != 1 {
		t.Fatalf("expected one burst once the interval elapsed, got %d", len(em.Pending))
	}
	b := em.Pending[0]
	if b.Y != 5 || (b.X != 5 && b.X != 15) {
		t.Fatalf("burst not centered on a water tile: %+v", b)
	}
}

func TestCameraClampsToBounds(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	target := &component.Transform{X: 10, Y: 10}
	mustAdd(t, w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, player, component.TransformComponent.Kind(), target)

	cam := ecs.CreateEntity(w)
	camTr := &component.Transform{}
	mustAdd(t, w, cam, component.TransformComponent.Kind(), camTr)
	mustAdd(t, w, cam, component.CameraComponent.Kind(), &component.Camera{
		TargetName: "player", Zoom: 2, Lerp: 0.25, DeadzoneW: 50, DeadzoneH: 50, ViewW: 400, ViewH: 200,
	})
	bounds := ecs.CreateEntity(w)
	mustAdd(t, w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 1000, Height: 500})

	sys := NewCameraSystem()
	sys.Update(w)
	if camTr.X != 100 || camTr.Y != 50 {
		t.Fatalf("expected the view clamped to the top-left corner, got (%v, %v)", camTr.X, camTr.Y)
	}

	target.X, target.Y = 500, 250
	prev := camTr.X
	sys.Update(w)
	if camTr.X <= prev || camTr.X >= 500-25 {
		t.Fatalf("expected a lerped step toward the target, got %v", camTr.X)
	}
	for i := 0; i < 200; i++ {
		sys.Update(w)
	}
	if d := 500 - camTr.X; d < 0 || d > 25.001 {
		t.Fatalf("camera should settle at the deadzone edge, off by %v", d)
	}
}

func TestHUDFollowsScore(t *testing.T) {
	w, sess := newSessionWorld(t)
	e := ecs.CreateEntity(w)
	hud := &component.ScoreHUD{}
	mustAdd(t, w, e, component.ScoreHUDComponent.Kind(), hud)

	sys := NewHUDSystem()
	sys.Update(w)
	if hud.Text != "Score: 0" {
		t.Fatalf("expected initial label, got %q", hud.Text)
	}
	sess.Score = 1010
	sys.Update(w)
	if hud.Text != "Score: 1010" || hud.Score != 1010 {
		t.Fatalf("label did not follow the score: %+v", hud)
	}
}

func TestMusicMuted(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mp := &component.MusicPlayer{Muted: true, TrackVolumes: map[string]float64{"theme": 0.5}}
	mustAdd(t, w, e, component.MusicPlayerComponent.Kind(), mp)
	sys := NewMusicSystem()

	RequestMusic(w, "theme")
	sys.Update(w)
	if mp.CurrentTrack != "theme" || mp.CurrentVolume != 0.5 || len(mp.Players) != 0 {
		t.Fatalf("unexpected state after request: %+v", mp)
	}
	if _, ok := w.First(component.MusicRequestComponent.Kind()); ok {
		t.Fatalf("requests must be consumed")
	}

	StopMusic(w)
	sys.Update(w)
	if mp.CurrentTrack != "" || mp.PendingActive {
		t.Fatalf("expected silence after stop: %+v", mp)
	}
}

func TestAnimationSwitchesOnRequest(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := &component.Animation{
		Defs: map[string]component.AnimationDef{
			"idle": {Name: "idle", FrameCount: 2, FPS: 30, Loop: true},
			"jump": {Name: "jump", Row: 2, FrameCount: 1, FPS: 1},
		},
		Current: "idle",
		Playing: true,
	}
	mustAdd(t, w, e, component.AnimationComponent.Kind(), anim)
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{})

	sys := NewAnimationSystem()
	sys.Update(w)
	sys.Update(w)
	if anim.Frame != 1 {
		t.Fatalf("expected idle to advance every 2 ticks, frame %d", anim.Frame)
	}

	anim.Requested = "jump"
	sys.Update(w)
	if anim.Current != "jump" || anim.Frame != 0 || anim.Requested != "" {
		t.Fatalf("expected a switch to jump, got %+v", anim)
	}

	anim.Requested = "missing"
	sys.Update(w)
	if anim.Current != "jump" {
		t.Fatalf("unknown clip should be ignored")
	}
}

func TestPlayerStateTextShowsFlag(t *testing.T) {
	f := newControllerFixture(t)
	text, ok := playerStateText(f.w)
	if !ok {
		t.Fatalf("expected state text for the player")
	}
	for _, want := range []string{"Pos: 5.0, 15.0", "Flag: 3, 1", "Score: 0"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in %q", want, text)
		}
	}
	if _, ok := playerStateText(ecs.NewWorld()); ok {
		t.Fatalf("expected no state text without a player")
	}
}
