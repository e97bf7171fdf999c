// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package lru

import (
	"iter"
	"sync"
)

// Synced guards a Cache with a single mutex. Every method holds the lock for
// the whole index and list update, so no caller observes a half-applied Get or
// Put.
type Synced[K comparable, V any] struct {
	mu    sync.Mutex
	cache *Cache[K, V]
}

// NewSynced returns an empty, lock-guarded cache. It fails like New.
func NewSynced[K comparable, V any](capacity int) (*Synced[K, V], error) {
	c, err := New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Synced[K, V]{cache: c}, nil
}

func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

func (s *Synced[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Put(key, value)
}

func (s *Synced[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Peek(key)
}

func (s *Synced[K, V]) Oldest() (K, V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Oldest()
}

func (s *Synced[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Cap does not lock; capacity never changes after construction.
func (s *Synced[K, V]) Cap() int {
	return s.cache.Cap()
}

func (s *Synced[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Keys()
}

// All snapshots under the lock when iteration starts and yields with the lock
// released.
func (s *Synced[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		s.mu.Lock()
		snap := s.cache.snapshot()
		s.mu.Unlock()

		for _, n := range snap {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Do runs fn with exclusive access to the underlying cache. fn must not retain
// the cache after it returns.
func (s *Synced[K, V]) Do(fn func(c *Cache[K, V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cache)
}
