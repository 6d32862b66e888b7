package operators

import (
	"maps"
	"sync"
)

// table is a thread-safe map for read-heavy lookups.
type table[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{entries: make(map[K]V)}
}

func (t *table[K, V]) set(key K, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = v
}

func (t *table[K, V]) setMany(entries map[K]V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	maps.Copy(t.entries, entries)
}

func (t *table[K, V]) get(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[key]
	return v, ok
}

func (t *table[K, V]) has(key K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[key]
	return ok
}

func (t *table[K, V]) remove(key K) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

func (t *table[K, V]) keys() []K {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]K, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	return keys
}

// snapshot copies the entries under the read lock.
func (t *table[K, V]) snapshot() map[K]V {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return maps.Clone(t.entries)
}
