package memory

import (
	"maps"
	"slices"

	"github.com/kevinaaaquil/library/backend/store"
)

// table holds one entity type keyed by id. Callers hold Store.mu.
type table[T any] struct {
	rows  map[int64]T
	next  int64
	id    func(*T) *int64
	clone func(T) T
}

func newTable[T any](id func(*T) *int64) *table[T] {
	return &table[T]{rows: make(map[int64]T), id: id, clone: func(v T) T { return v }}
}

func (t *table[T]) get(id int64) *T {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	v = t.clone(v)
	return &v
}

// find returns the first row, in id order, that matches.
func (t *table[T]) find(match func(T) bool) *T {
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if v := t.rows[id]; match(v) {
			v = t.clone(v)
			return &v
		}
	}
	return nil
}

func (t *table[T]) filter(match func(T) bool) []T {
	out := []T{}
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if v := t.rows[id]; match == nil || match(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *table[T]) insert(v *T) {
	t.next++
	*t.id(v) = t.next
	t.rows[t.next] = t.clone(*v)
}

func (t *table[T]) replace(v *T) error {
	id := *t.id(v)
	if _, ok := t.rows[id]; !ok {
		return store.ErrNotFound
	}
	t.rows[id] = t.clone(*v)
	return nil
}

func (t *table[T]) remove(id int64) error {
	if _, ok := t.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) count(match func(T) bool) int64 {
	var n int64
	for _, v := range t.rows {
		if match(v) {
			n++
		}
	}
	return n
}
