package entity

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/ecs/render"
	"github.com/milk9111/treasurerun/prefabs"
)

// EmitterConfigFromSpec converts a particles.yaml entry. Missing alpha and
// scale ranges default to fully visible at natural size.
func EmitterConfigFromSpec(name string, spec prefabs.EmitterSpec) component.EmitterConfig {
	cfg := component.EmitterConfig{
		Name:       name,
		Image:      spec.Image,
		Quantity:   spec.Quantity,
		MaxAlive:   spec.MaxAlive,
		Frequency:  spec.Frequency,
		Lifespan:   spec.Lifespan,
		SpeedXMin:  spec.SpeedX.Start,
		SpeedXMax:  spec.SpeedX.End,
		SpeedYMin:  spec.SpeedY.Start,
		SpeedYMax:  spec.SpeedY.End,
		Speed:      spec.Speed.Start,
		SpeedMax:   spec.Speed.End,
		GravityY:   spec.GravityY,
		AlphaStart: spec.Alpha.Start,
		AlphaEnd:   spec.Alpha.End,
		ScaleStart: spec.Scale.Start,
		ScaleEnd:   spec.Scale.End,
		Additive:   spec.Additive,
		Layer:      spec.Layer,
	}
	if spec.Alpha == (prefabs.RangeSpec{}) {
		cfg.AlphaStart, cfg.AlphaEnd = 1, 1
	}
	if spec.Scale == (prefabs.RangeSpec{}) {
		cfg.ScaleStart, cfg.ScaleEnd = 1, 1
	}
	if cfg.Quantity <= 0 {
		cfg.Quantity = 1
	}
	if cfg.Lifespan <= 0 {
		cfg.Lifespan = 1000
	}
	return cfg
}

// NewEmitter creates an emitter entity. follow may be zero for emitters that
// only burst at explicit positions.
func NewEmitter(w *ecs.World, name string, spec prefabs.EmitterSpec, follow ecs.Entity, opts Options) (ecs.Entity, error) {
	cfg := EmitterConfigFromSpec(name, spec)

	var texture *ebiten.Image
	if cfg.Image != "" && !opts.Headless {
		img, err := render.LoadImage(cfg.Image)
		if err != nil {
			return 0, fmt.Errorf("emitter %s: load image %q: %w", name, cfg.Image, err)
		}
		texture = img
	}

	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("emitter %s: add transform: %w", name, err)
	}
	if err := ecs.Add(w, ent, component.EmitterComponent.Kind(), &component.Emitter{
		Config:   cfg,
		Texture:  texture,
		Emitting: spec.StartEmits,
		Follow:   uint64(follow),
		OffsetX:  spec.OffsetX,
		OffsetY:  spec.OffsetY,
	}); err != nil {
		return 0, fmt.Errorf("emitter %s: add emitter: %w", name, err)
	}
	return ent, nil
}

// NewEmitters builds every emitter in spec in name order. Emitters whose
// follow target is "player" track the given player entity.
func NewEmitters(w *ecs.World, spec prefabs.ParticlesSpec, player ecs.Entity, opts Options) (map[string]ecs.Entity, error) {
	names := make([]string, 0, len(spec.Emitters))
	for name := range spec.Emitters {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]ecs.Entity, len(names))
	for _, name := range names {
		es := spec.Emitters[name]
		var follow ecs.Entity
		if es.Follow == "player" {
			follow = player
		}
		ent, err := NewEmitter(w, name, es, follow, opts)
		if err != nil {
			return nil, err
		}
		out[name] = ent
	}
	return out, nil
}

// NewParticle spawns one particle owned by emitterEnt.
func NewParticle(w *ecs.World, emitterEnt ecs.Entity, em *component.Emitter, x, y, vx, vy float64) (ecs.Entity, error) {
	if em == nil {
		return 0, fmt.Errorf("particle: emitter is nil")
	}
	cfg := em.Config

	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{
		X:      x,
		Y:      y,
		ScaleX: cfg.ScaleStart,
		ScaleY: cfg.ScaleStart,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, ent, component.ParticleComponent.Kind(), &component.Particle{
		Emitter:  uint64(emitterEnt),
		VX:       vx,
		VY:       vy,
		GravityY: cfg.GravityY,
		Lifespan: cfg.Lifespan,
		AlphaA:   cfg.AlphaStart,
		AlphaB:   cfg.AlphaEnd,
		ScaleA:   cfg.ScaleStart,
		ScaleB:   cfg.ScaleEnd,
		Alpha:    cfg.AlphaStart,
		Scale:    cfg.ScaleStart,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, ent, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: cfg.Layer}); err != nil {
		return 0, err
	}
	if em.Texture != nil {
		b := em.Texture.Bounds()
		if err := ecs.Add(w, ent, component.SpriteComponent.Kind(), &component.Sprite{
			Image:    em.Texture,
			OriginX:  float64(b.Dx()) / 2,
			OriginY:  float64(b.Dy()) / 2,
			Additive: cfg.Additive,
		}); err != nil {
			return 0, err
		}
	}
	em.Alive++
	return ent, nil
}

// NewWaterAmbience schedules periodic smoke bursts from emitter over the
// level's water tiles.
func NewWaterAmbience(w *ecs.World, emitter ecs.Entity, intervalMS float64) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.WaterAmbienceComponent.Kind(), &component.WaterAmbience{
		Emitter:  uint64(emitter),
		Interval: intervalMS,
	}); err != nil {
		return 0, fmt.Errorf("water ambience: %w", err)
	}
	return ent, nil
}
