package ecs

import (
	"slices"

	"github.com/milk9111/treasurerun/ecs/component"
)

// snapshot copies and sorts the ids of s so callbacks may add, remove or
// destroy while iterating.
func snapshot[T any](s *sparseSet[T]) []entityID {
	if s == nil || s.size() == 0 {
		return nil
	}
	ids := slices.Clone(s.ids())
	slices.Sort(ids)
	return ids
}

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, ka, false)
	for _, id := range snapshot(sa) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, id := range snapshot(sa) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id)
		b, okB := sb.get(id)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, id := range snapshot(sa) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id)
		b, okB := sb.get(id)
		c, okC := sc.get(id)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	sd := storeFor(w, kd, false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, id := range snapshot(sa) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id)
		b, okB := sb.get(id)
		c, okC := sc.get(id)
		d, okD := sd.get(id)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}

// First returns the lowest-id entity carrying kind.
func First(w *World, kind component.KindID) (Entity, bool) {
	return w.First(kind)
}
