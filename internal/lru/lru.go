// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package lru

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidCapacity is returned by New and NewSynced for a capacity below one.
var ErrInvalidCapacity = errors.New("capacity must be positive")

const (
	head = 0 // sentinel before the least-recently-used entry
	tail = 1 // sentinel after the most-recently-used entry

	// Upper bound on the arena preallocation so a huge capacity does not
	// reserve memory it may never use.
	maxPrealloc = 1024
)

type node[K comparable, V any] struct {
	key   K
	value V
	prev  int
	next  int
}

// Cache maps keys to values and evicts the least-recently-used entry once more
// than Cap entries would be held.
type Cache[K comparable, V any] struct {
	capacity int
	index    map[K]int
	nodes    []node[K, V]
	free     []int
}

// New returns an empty cache holding at most capacity entries.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	prealloc := min(capacity, maxPrealloc)
	c := &Cache[K, V]{
		capacity: capacity,
		index:    make(map[K]int, prealloc),
		nodes:    make([]node[K, V], 2, prealloc+2),
	}
	c.nodes[head].next = tail
	c.nodes[tail].prev = head

	return c, nil
}

// Get returns the value stored for key and marks it most recently used. The
// boolean is false, and the cache untouched, when key is absent.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	slot, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	c.moveToBack(slot)
	return c.nodes[slot].value, true
}

// Put stores value under key and marks it most recently used. Inserting a new
// key into a full cache silently evicts the least-recently-used entry.
func (c *Cache[K, V]) Put(key K, value V) {
	if slot, ok := c.index[key]; ok {
		c.nodes[slot].value = value
		c.moveToBack(slot)
		return
	}

	// The new key is never the oldest entry, so evicting before the insert
	// removes the same entry evicting after it would.
	if len(c.index) == c.capacity {
		c.evictOldest()
	}

	slot := c.alloc()
	c.nodes[slot].key = key
	c.nodes[slot].value = value
	c.attachBack(slot)
	c.index[key] = slot
}

// Peek returns the value for key without changing its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	slot, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.nodes[slot].value, true
}

// Contains reports whether key is resident, without changing its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Oldest returns the least-recently-used entry, the one the next eviction
// would remove.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	slot := c.nodes[head].next
	if slot == tail {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	n := c.nodes[slot]
	return n.key, n.value, true
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	return len(c.index)
}

// Cap returns the capacity fixed at construction.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Keys returns the resident keys from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.index))
	for slot := c.nodes[head].next; slot != tail; slot = c.nodes[slot].next {
		keys = append(keys, c.nodes[slot].key)
	}
	return keys
}

// All yields the resident entries from least to most recently used. Each range
// over the sequence works from a copy taken when it starts, so the loop body
// may call Get or Put without disturbing the iteration.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, n := range c.snapshot() {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

func (c *Cache[K, V]) snapshot() []node[K, V] {
	out := make([]node[K, V], 0, len(c.index))
	for slot := c.nodes[head].next; slot != tail; slot = c.nodes[slot].next {
		out = append(out, c.nodes[slot])
	}
	return out
}

func (c *Cache[K, V]) evictOldest() {
	slot := c.nodes[head].next
	if slot == tail {
		return
	}
	c.detach(slot)
	delete(c.index, c.nodes[slot].key)
	c.release(slot)
}

func (c *Cache[K, V]) moveToBack(slot int) {
	if c.nodes[tail].prev == slot {
		return
	}
	c.detach(slot)
	c.attachBack(slot)
}

func (c *Cache[K, V]) detach(slot int) {
	prev, next := c.nodes[slot].prev, c.nodes[slot].next
	c.nodes[prev].next = next
	c.nodes[next].prev = prev
}

func (c *Cache[K, V]) attachBack(slot int) {
	prev := c.nodes[tail].prev
	c.nodes[slot].prev = prev
	c.nodes[slot].next = tail
	c.nodes[prev].next = slot
	c.nodes[tail].prev = slot
}

func (c *Cache[K, V]) alloc() int {
	if n := len(c.free); n > 0 {
		slot := c.free[n-1]
		c.free = c.free[:n-1]
		return slot
	}
	c.nodes = append(c.nodes, node[K, V]{})
	return len(c.nodes) - 1
}

// release zeroes the slot so an evicted key or value is not kept reachable.
func (c *Cache[K, V]) release(slot int) {
	c.nodes[slot] = node[K, V]{}
	c.free = append(c.free, slot)
}
