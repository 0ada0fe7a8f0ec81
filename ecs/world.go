package ecs

import (
	"slices"

	"github.com/milk9111/treasurerun/ecs/component"
)

// World owns entities and their component columns.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity ordered by id.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gens {
		if e, ok := w.entities.current(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and retires its handle. It
// reports false for handles that are already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Count returns the number of live entities.
func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Query returns the live entities carrying every listed kind, ordered by id.
func (w *World) Query(kinds ...component.KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok || s.size() == 0 {
			return nil
		}
		stores = append(stores, s)
	}
	slices.SortFunc(stores, func(a, b store) int { return a.size() - b.size() })

	ids := slices.Clone(stores[0].ids())
	slices.Sort(ids)

	out := make([]Entity, 0, len(ids))
outer:
	for _, id := range ids {
		for _, s := range stores[1:] {
			if !s.has(id) {
				continue outer
			}
		}
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the lowest-id entity carrying kind.
func (w *World) First(kind component.KindID) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		typed := newSparseSet[T]()
		w.stores[kind.ID()] = typed
		return typed
	}
	typed, _ := s.(*sparseSet[T])
	return typed
}

// Add attaches or replaces the component of kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	s := storeFor(w, kind, true)
	if s == nil {
		return component.ErrInvalidComponentKind
	}
	s.set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}
