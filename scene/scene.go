package scene

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/ecs/entity"
	"github.com/milk9111/treasurerun/ecs/system"
	"github.com/milk9111/treasurerun/gameplay"
	"github.com/milk9111/treasurerun/levels"
	"github.com/milk9111/treasurerun/prefabs"
)

// Config selects the level and the runtime surfaces a scene may touch.
type Config struct {
	LevelName string
	// Level, when set, is used instead of loading LevelName.
	Level *levels.Level
	Debug bool
	// Mute skips every audio player; Headless skips every image.
	Mute     bool
	Headless bool
	// Input defaults to the keyboard and gamepad.
	Input system.InputSource
	// Seed drives particle and water randomness. Zero derives a seed from
	// the run id.
	Seed uint64
}

// Scene is one attempt at the level: a world, its systems and the entities
// they run on. Restarting discards the scene and builds a new one.
type Scene struct {
	RunID uuid.UUID

	cfg       Config
	level     *levels.Level
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	player    ecs.Entity
}

func New(cfg Config) (*Scene, error) {
	lvl := cfg.Level
	if lvl == nil {
		name := cfg.LevelName
		if name == "" {
			name = levels.DefaultLevel
		}
		l, err := levels.Load(name)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		lvl = l
	}

	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	particles, err := prefabs.LoadParticlesSpec()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	var rule *prefabs.WinRule
	if spec.WinScript != "" {
		rule, err = prefabs.LoadWinRule(spec.WinScript)
		if err != nil {
			log.Printf("scene: %v, using built-in win message", err)
			rule = nil
		}
	}

	s := &Scene{
		RunID: uuid.New(),
		cfg:   cfg,
		level: lvl,
		world: ecs.NewWorld(),
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = binary.LittleEndian.Uint64(s.RunID[:8])
	}

	if err := s.populate(spec, particles); err != nil {
		return nil, err
	}

	s.physics = system.NewPhysicsSystem(spec.Physics.Gravity, spec.Physics.Iterations)
	s.render = system.NewRenderSystem()
	s.scheduler = ecs.NewScheduler(
		system.NewInputSystem(cfg.Input),
		system.NewPlayerControllerSystem(rule),
		s.physics,
		system.NewCollectSystem(),
		system.NewWaterAmbienceSystem(seed),
		system.NewParticleSystem(seed),
		system.NewAnimationSystem(),
		system.NewAudioSystem(),
		system.NewMusicSystem(),
		system.NewCameraSystem(),
		system.NewHUDSystem(),
	)

	log.Printf("scene %s: level %s ready", s.RunID, lvl.Name)
	return s, nil
}

func (s *Scene) populate(spec prefabs.SceneSpec, particles prefabs.ParticlesSpec) error {
	w := s.world
	opts := entity.Options{Headless: s.cfg.Headless, Mute: s.cfg.Mute}

	le, err := entity.LoadLevelToWorld(w, s.level, opts)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	tm, _ := ecs.Get(w, le.Tilemap, component.TilemapComponent.Kind())

	spawn := s.level.Spawn
	s.player, err = entity.NewPlayerAt(w, spawn.X, spawn.Y, entity.FlagCell(tm), opts)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if _, err := entity.NewCameraAt(w, spawn.X, spawn.Y, opts); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if _, err := entity.NewMusicPlayer(w, opts); err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	emitters, err := entity.NewEmitters(w, particles, s.player, opts)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if water, ok := emitters[spec.Water.Emitter]; ok && tm != nil && len(tm.Water) > 0 {
		if _, err := entity.NewWaterAmbience(w, water, spec.Water.IntervalMS); err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}

	if _, err := entity.NewLevelState(w, scoringFromSpec(spec), spec.HUD.X, spec.HUD.Y, s.cfg.Debug); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}

func scoringFromSpec(spec prefabs.SceneSpec) gameplay.Scoring {
	sc := gameplay.DefaultScoring()
	if spec.Scoring.Coin > 0 {
		sc.CoinPoints = spec.Scoring.Coin
	}
	if spec.Scoring.Chest > 0 {
		sc.ChestPoints = spec.Scoring.Chest
	}
	if spec.Scoring.SpecialWin > 0 {
		sc.SpecialWinThreshold = spec.Scoring.SpecialWin
	}
	return sc
}

// Update advances the scene by one fixed tick.
func (s *Scene) Update() {
	s.scheduler.Update(s.world)
}

func (s *Scene) Draw(screen *ebiten.Image) {
	s.render.Draw(s.world, screen)
	system.DrawPhysicsDebug(s.physics.Space(), s.world, screen)
	system.DrawPlayerStateDebug(s.world, screen)
}

// Close stops everything the scene started outside its world.
func (s *Scene) Close() {
	system.HaltMusic(s.world)
}

func (s *Scene) World() *ecs.World {
	return s.world
}

func (s *Scene) Player() ecs.Entity {
	return s.player
}

// RestartRequested reports whether a system asked for a rebuild this tick.
func (s *Scene) RestartRequested() (gameplay.Outcome, bool) {
	e, ok := s.world.First(component.RestartRequestComponent.Kind())
	if !ok {
		return gameplay.OutcomeContinue, false
	}
	req, _ := ecs.Get(s.world, e, component.RestartRequestComponent.Kind())
	return req.Reason, true
}

func (s *Scene) session() *gameplay.Session {
	e, ok := s.world.First(component.LevelStateComponent.Kind())
	if !ok {
		return nil
	}
	st, ok := ecs.Get(s.world, e, component.LevelStateComponent.Kind())
	if !ok {
		return nil
	}
	return st.Session
}

func (s *Scene) Score() int {
	if sess := s.session(); sess != nil {
		return sess.Score
	}
	return 0
}

func (s *Scene) HasKey() bool {
	if sess := s.session(); sess != nil {
		return sess.HasKey
	}
	return false
}

// Complete returns the end-game result once the flag has been reached.
func (s *Scene) Complete() (component.LevelComplete, bool) {
	e, ok := s.world.First(component.LevelCompleteComponent.Kind())
	if !ok {
		return component.LevelComplete{}, false
	}
	lc, _ := ecs.Get(s.world, e, component.LevelCompleteComponent.Kind())
	return *lc, true
}

func (s *Scene) PlayerPosition() (float64, float64) {
	tr, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}
	return tr.X, tr.Y
}

// Collectibles counts the live collectibles of a kind.
func (s *Scene) Collectibles(kind gameplay.CollectibleKind) int {
	n := 0
	ecs.ForEach(s.world, component.CollectibleComponent.Kind(), func(_ ecs.Entity, c *component.Collectible) {
		if c.Item.Kind == kind {
			n++
		}
	})
	return n
}
