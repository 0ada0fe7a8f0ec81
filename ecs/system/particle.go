package system

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/ecs/entity"
)

const tickMS = 1000.0 / common.TPS

// ParticleSystem spawns particles for emitting emitters and queued bursts,
// then ages, moves and fades every live particle.
type ParticleSystem struct {
	rng *rand.Rand
}

func NewParticleSystem(seed uint64) *ParticleSystem {
	return &ParticleSystem{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *ParticleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.EmitterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, em *component.Emitter, tr *component.Transform) {
		if em.Follow != 0 {
			if target, ok := ecs.Get(w, ecs.Entity(em.Follow), component.TransformComponent.Kind()); ok {
				tr.X = target.X + em.OffsetX
				tr.Y = target.Y + em.OffsetY
			}
		}

		if em.Emitting {
			em.Elapsed += tickMS
			freq := em.Config.Frequency
			if freq <= 0 {
				freq = tickMS
			}
			for em.Elapsed >= freq {
				em.Elapsed -= freq
				p.spawn(w, e, em, tr.X, tr.Y, em.Config.Quantity)
			}
		} else {
			em.Elapsed = 0
		}

		for _, b := range em.Pending {
			p.spawn(w, e, em, b.X, b.Y, b.Count)
		}
		em.Pending = em.Pending[:0]
	})

	dt := tickMS / 1000
	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, part *component.Particle, tr *component.Transform) {
		part.Age += tickMS
		if part.Age >= part.Lifespan {
			if em, ok := ecs.Get(w, ecs.Entity(part.Emitter), component.EmitterComponent.Kind()); ok && em.Alive > 0 {
				em.Alive--
			}
			ecs.DestroyEntity(w, e)
			return
		}

		part.VY += part.GravityY * dt
		tr.X += part.VX * dt
		tr.Y += part.VY * dt

		t := part.Age / part.Lifespan
		part.Alpha = common.Lerp(part.AlphaA, part.AlphaB, t)
		part.Scale = common.Lerp(part.ScaleA, part.ScaleB, t)
		tr.ScaleX = part.Scale
		tr.ScaleY = part.Scale
	})
}

func (p *ParticleSystem) spawn(w *ecs.World, e ecs.Entity, em *component.Emitter, x, y float64, count int) {
	for i := 0; i < count; i++ {
		if em.Config.MaxAlive > 0 && em.Alive >= em.Config.MaxAlive {
			return
		}
		vx, vy := p.velocity(em)
		if _, err := entity.NewParticle(w, e, em, x, y, vx, vy); err != nil {
			log.Printf("particles: %s: %v", em.Config.Name, err)
			return
		}
	}
}

func (p *ParticleSystem) velocity(em *component.Emitter) (float64, float64) {
	cfg := em.Config
	if cfg.Speed != 0 || cfg.SpeedMax != 0 {
		angle := p.rng.Float64() * 2 * math.Pi
		speed := common.Ranged(cfg.Speed, cfg.SpeedMax, p.rng.Float64())
		return math.Cos(angle) * speed, math.Sin(angle) * speed
	}
	vx := common.Ranged(cfg.SpeedXMin, cfg.SpeedXMax, p.rng.Float64())
	if em.SpeedX != 0 {
		vx = em.SpeedX
	}
	vy := common.Ranged(cfg.SpeedYMin, cfg.SpeedYMax, p.rng.Float64())
	return vx, vy
}
