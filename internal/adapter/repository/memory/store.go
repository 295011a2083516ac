// Package memory keeps bank state in process memory.
package memory

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// table is an insertion-ordered keyed collection safe for concurrent use.
type table[T any] struct {
	mu   sync.RWMutex
	rows *linkedhashmap.Map
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: linkedhashmap.New()}
}

// insert stores v under key and reports false if the key is taken.
func (t *table[T]) insert(key string, v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, found := t.rows.Get(key); found {
		return false
	}
	t.rows.Put(key, v)
	return true
}

func (t *table[T]) get(key string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, found := t.rows.Get(key)
	if !found {
		var zero T
		return zero, false
	}
	return v.(T), true
}

func (t *table[T]) remove(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, found := t.rows.Get(key); !found {
		return false
	}
	t.rows.Remove(key)
	return true
}

// page returns up to limit rows after skipping offset, in insertion order.
// A non-positive limit returns everything after offset.
func (t *table[T]) page(limit, offset int) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	values := t.rows.Values()
	return window(values, limit, offset, func(v interface{}) T { return v.(T) })
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []T
	it := t.rows.Iterator()
	for it.Next() {
		if v := it.Value().(T); keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func window[S, T any](values []S, limit, offset int, conv func(S) T) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(values) {
		return []T{}
	}
	values = values[offset:]
	if limit > 0 && limit < len(values) {
		values = values[:limit]
	}

	out := make([]T, len(values))
	for i, v := range values {
		out[i] = conv(v)
	}
	return out
}
