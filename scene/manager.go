package scene

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/treasurerun/ecs/component"
)

// Factory builds a fresh scene. Manager uses New unless a test swaps it.
type Factory func(cfg Config) (*Scene, error)

// Manager owns the active scene and rebuilds it when a restart is asked
// for, either by the scene itself or by a hot reload.
type Manager struct {
	cfg      Config
	factory  Factory
	current  *Scene
	restarts int
}

func NewManager(cfg Config) (*Manager, error) {
	m := &Manager{cfg: cfg, factory: New}
	if err := m.rebuild("start"); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) Current() *Scene {
	return m.current
}

// Restarts counts the rebuilds since the manager was created.
func (m *Manager) Restarts() int {
	return m.restarts
}

// Update ticks the scene and, when the tick asked for it, replaces the
// scene before returning so callers always observe the post-restart state.
func (m *Manager) Update() error {
	if m.current == nil {
		return fmt.Errorf("scene manager: no active scene")
	}
	m.current.Update()

	reason, ok := m.current.RestartRequested()
	if !ok {
		return nil
	}
	if err := m.rebuild(reason.String()); err != nil {
		return err
	}
	m.restarts++
	return nil
}

// Reload rebuilds the scene from freshly loaded prefabs and level data.
func (m *Manager) Reload(reason string) error {
	if err := m.rebuild(reason); err != nil {
		return err
	}
	m.restarts++
	return nil
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.current != nil {
		m.current.Draw(screen)
	}
}

// Complete forwards the active scene's end-game result.
func (m *Manager) Complete() (component.LevelComplete, bool) {
	if m.current == nil {
		return component.LevelComplete{}, false
	}
	return m.current.Complete()
}

func (m *Manager) rebuild(reason string) error {
	next, err := m.factory(m.cfg)
	if err != nil {
		return fmt.Errorf("scene manager: %s: %w", reason, err)
	}
	if m.current != nil {
		m.current.Close()
		log.Printf("scene %s: replaced by %s (%s)", m.current.RunID, next.RunID, reason)
	}
	m.current = next
	return nil
}
