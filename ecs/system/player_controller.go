package system

import (
	"log"

	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
	"github.com/milk9111/treasurerun/prefabs"
)

// hazardProbe is how far below the feet the hazard tile is sampled, so a
// body resting exactly on a tile edge still reads the tile it stands on.
const hazardProbe = 1.0

// PlayerControllerSystem feeds each tick to the player's level controller
// and applies the decision to the body, sprite, particles and audio. It also
// raises restart and end-game.
type PlayerControllerSystem struct {
	winRule *prefabs.WinRule
	dt      float64
}

// NewPlayerControllerSystem uses rule for the end-game message when it is
// non-nil and falls back to the built-in threshold otherwise.
func NewPlayerControllerSystem(rule *prefabs.WinRule) *PlayerControllerSystem {
	return &PlayerControllerSystem{winRule: rule, dt: 1.0 / common.TPS}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	tm, _ := tilemap(w)

	ecs.ForEach2(w, component.PlayerControllerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, pc *component.PlayerController, input *component.Input) {
		if pc.Controller == nil {
			return
		}
		if input.Current.DebugPressed {
			toggleDebug(w)
		}

		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		frame := gameplay.Frame{Input: input.Current}
		if coll, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			frame.Grounded = coll.Grounded
		}
		if tr != nil && tm != nil {
			feet := tr.Y + bodyHalfHeight(body) + hazardProbe
			if t, ok := tm.Level.TileAtWorld(tr.X, feet); ok && t.Props.Dangerous {
				frame.OnHazard = true
			}
			cx, cy := tm.Level.WorldToTile(tr.X, tr.Y)
			frame.Cell = gameplay.Cell{X: cx, Y: cy}
		}

		tick := pc.Controller.Step(frame)
		pc.Last = tick.Motion
		pc.Outcome = tick.Outcome

		if !tick.Frozen {
			p.applyMotion(w, e, pc.Controller.Tuning(), tick.Motion, body, tr)
		}

		switch {
		case tick.Outcome.Resets():
			log.Printf("level: %s, restarting", tick.Outcome)
			StopMusic(w)
			RequestRestart(w, tick.Outcome)
		case tick.Outcome == gameplay.OutcomeComplete:
			p.complete(w)
		}
	})
}

func (p *PlayerControllerSystem) applyMotion(w *ecs.World, e ecs.Entity, tuning gameplay.Tuning, m gameplay.Motion, body *component.PhysicsBody, tr *component.Transform) {
	if body != nil && body.Body != nil {
		vel := body.Body.Velocity()
		vel.X = gameplay.IntegrateVelocityX(vel.X, m, tuning, p.dt)
		if m.Jump {
			vel.Y = m.VelocityY
		}
		body.Body.SetVelocityVector(vel)
	}

	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sprite != nil {
		switch m.Facing {
		case gameplay.FacingLeft:
			sprite.FacingLeft = true
		case gameplay.FacingRight:
			sprite.FacingLeft = false
		}
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok && m.Animation != "" {
		anim.Requested = m.Animation
	}

	if _, em, ok := findEmitter(w, "walking"); ok {
		switch m.WalkParticles {
		case gameplay.ParticlesStart:
			em.Emitting = true
			// dust trails behind the player
			em.SpeedX = -tuning.ParticleVelocity
			if sprite != nil && sprite.FacingLeft {
				em.SpeedX = tuning.ParticleVelocity
			}
		case gameplay.ParticlesStop:
			em.Emitting = false
		}
	}

	if m.Jump {
		playSound(w, gameplay.SoundJump)
		if tr != nil {
			Burst(w, "jump", tr.X, tr.Y+bodyHalfHeight(body), 0)
		}
	}
}

func (p *PlayerControllerSystem) complete(w *ecs.World) {
	stateEnt, st, ok := levelState(w)
	if !ok {
		stateEnt = ecs.CreateEntity(w)
		st = &component.LevelState{Session: gameplay.NewSession(gameplay.DefaultScoring())}
	}
	s := st.Session
	threshold := s.Scoring.SpecialWinThreshold

	msg := gameplay.WinMessage(s.Score, threshold)
	if p.winRule != nil {
		scripted, err := p.winRule.Message(s.Score, threshold, s.HasKey)
		if err != nil {
			log.Printf("level: win script %s: %v", p.winRule.Name(), err)
		} else {
			msg = scripted
		}
	}

	if _, em, ok := findEmitter(w, "walking"); ok {
		em.Emitting = false
	}
	_ = ecs.Add(w, stateEnt, component.LevelCompleteComponent.Kind(), &component.LevelComplete{
		Message: msg,
		Hint:    gameplay.RestartHint,
		Score:   s.Score,
	})
	log.Printf("level: complete with score %d: %s", s.Score, msg)
}

func toggleDebug(w *ecs.World) {
	e, ok := w.First(component.DebugOverlayComponent.Kind())
	if !ok {
		return
	}
	if dbg, ok := ecs.Get(w, e, component.DebugOverlayComponent.Kind()); ok {
		dbg.Enabled = !dbg.Enabled
	}
}

func bodyHalfHeight(body *component.PhysicsBody) float64 {
	if body == nil {
		return 0
	}
	return body.Height / 2
}
