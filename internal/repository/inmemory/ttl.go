package inmemory

import (
	"sync"
	"time"
)

type ttlItem[T any] struct {
	value     T
	expiresAt time.Time
}

// ttlMap is a user-keyed map whose entries expire lazily on read.
type ttlMap[T any] struct {
	mu    sync.RWMutex
	items map[string]ttlItem[T]
	now   func() time.Time
}

func newTTLMap[T any]() *ttlMap[T] {
	return &ttlMap[T]{
		items: make(map[string]ttlItem[T]),
		now:   time.Now,
	}
}

func (m *ttlMap[T]) get(key string) (T, bool) {
	now := m.now()

	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}

	if !item.expiresAt.After(now) {
		m.mu.Lock()
		item, ok = m.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		var zero T
		return zero, false
	}

	return item.value, true
}

func (m *ttlMap[T]) set(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		m.delete(key)
		return
	}

	m.mu.Lock()
	m.items[key] = ttlItem[T]{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Unlock()
}

func (m *ttlMap[T]) delete(key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

func (m *ttlMap[T]) clear() {
	m.mu.Lock()
	m.items = make(map[string]ttlItem[T])
	m.mu.Unlock()
}
