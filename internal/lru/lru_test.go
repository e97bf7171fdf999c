// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package lru

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	Key   int
	Value int
}

func contents(c *Cache[int, int]) []pair {
	var out []pair
	for k, v := range c.All() {
		out = append(out, pair{k, v})
	}
	return out
}

// checkInvariants walks the arena and verifies that the list and the index
// describe exactly the same entries.
func checkInvariants(t *testing.T, c *Cache[int, int]) {
	t.Helper()

	seen := make(map[int]bool)
	prev := head
	for slot := c.nodes[head].next; slot != tail; slot = c.nodes[slot].next {
		require.Equal(t, prev, c.nodes[slot].prev, "broken back link at slot %d", slot)
		key := c.nodes[slot].key
		require.False(t, seen[key], "key %d linked twice", key)
		seen[key] = true
		require.Equal(t, slot, c.index[key], "index disagrees for key %d", key)
		prev = slot
	}
	require.Equal(t, prev, c.nodes[tail].prev)
	require.Len(t, c.index, len(seen))
	require.LessOrEqual(t, c.Len(), c.Cap())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{name: "valid capacity", capacity: 3},
		{name: "capacity of one", capacity: 1},
		{name: "huge capacity", capacity: 1 << 40},
		{name: "zero capacity", capacity: 0, wantErr: true},
		{name: "negative capacity", capacity: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New[int, int](tt.capacity)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCapacity)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, c.Len())
			assert.Equal(t, tt.capacity, c.Cap())
			assert.Empty(t, contents(c))
		})
	}
}

func TestScenarios(t *testing.T) {
	c, err := New[int, int](3)
	require.NoError(t, err)

	c.Put(1, 10)
	c.Put(2, 20)
	c.Put(3, 30)
	assert.Equal(t, []pair{{1, 10}, {2, 20}, {3, 30}}, contents(c))

	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, []pair{{2, 20}, {3, 30}, {1, 10}}, contents(c))

	c.Put(4, 40)
	assert.Equal(t, []pair{{3, 30}, {1, 10}, {4, 40}}, contents(c))

	_, ok = c.Get(2)
	assert.False(t, ok)
	assert.Equal(t, []pair{{3, 30}, {1, 10}, {4, 40}}, contents(c))
	checkInvariants(t, c)

	fresh, err := New[int, int](3)
	require.NoError(t, err)
	fresh.Put(5, 50)
	fresh.Put(5, 99)
	v, ok = fresh.Get(5)
	assert.True(t, ok)
	assert.Equal(t, 99, v)
	assert.Equal(t, 1, fresh.Len())
}

func TestGet_MissDoesNotMutate(t *testing.T) {
	c, _ := New[int, int](2)
	c.Put(1, 1)
	c.Put(2, 2)

	before := contents(c)
	v, ok := c.Get(42)
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, before, contents(c))
}

func TestGet_ZeroValueIsDistinguishable(t *testing.T) {
	c, _ := New[string, int](2)
	c.Put("zero", 0)

	v, ok := c.Get("zero")
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestPut_UpdateAtCapacityNeverEvicts(t *testing.T) {
	c, _ := New[int, int](2)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(1, 100)

	assert.Equal(t, []pair{{2, 2}, {1, 100}}, contents(c))
	checkInvariants(t, c)
}

func TestPut_CapacityOne(t *testing.T) {
	c, _ := New[int, int](1)
	c.Put(1, 1)
	c.Put(2, 2)

	assert.False(t, c.Contains(1))
	assert.Equal(t, []pair{{2, 2}}, contents(c))
	checkInvariants(t, c)
}

func TestPut_ReusesEvictedSlots(t *testing.T) {
	c, _ := New[int, int](2)
	for i := 0; i < 100; i++ {
		c.Put(i, i)
	}
	// Two sentinels plus one slot per resident entry.
	assert.Len(t, c.nodes, 4)
	assert.Equal(t, []pair{{98, 98}, {99, 99}}, contents(c))
}

func TestPeekAndContains_DoNotTouchRecency(t *testing.T) {
	c, _ := New[int, int](2)
	c.Put(1, 10)
	c.Put(2, 20)

	v, ok := c.Peek(1)
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	assert.True(t, c.Contains(1))

	c.Put(3, 30)
	assert.False(t, c.Contains(1), "peeked key should still have been the oldest")

	_, ok = c.Peek(1)
	assert.False(t, ok)
}

func TestOldest(t *testing.T) {
	c, _ := New[int, int](3)
	_, _, ok := c.Oldest()
	assert.False(t, ok)

	c.Put(1, 10)
	c.Put(2, 20)
	c.Get(1)

	k, v, ok := c.Oldest()
	assert.True(t, ok)
	assert.Equal(t, 2, k)
	assert.Equal(t, 20, v)
}

func TestKeys(t *testing.T) {
	c, _ := New[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("a")

	assert.Equal(t, []string{"b", "c", "a"}, c.Keys())
}

func TestAll_Restartable(t *testing.T) {
	c, _ := New[int, int](3)
	c.Put(1, 10)
	c.Put(2, 20)

	seq := c.All()
	var first, second []int
	for k := range seq {
		first = append(first, k)
	}
	for k := range seq {
		second = append(second, k)
	}
	assert.Equal(t, first, second)
}

func TestAll_SnapshotSurvivesMutation(t *testing.T) {
	c, _ := New[int, int](3)
	c.Put(1, 10)
	c.Put(2, 20)
	c.Put(3, 30)

	var seen []pair
	for k, v := range c.All() {
		seen = append(seen, pair{k, v})
		c.Put(k+100, v)
		c.Get(1)
	}

	assert.Equal(t, []pair{{1, 10}, {2, 20}, {3, 30}}, seen)
	checkInvariants(t, c)
}

func TestAll_EarlyBreak(t *testing.T) {
	c, _ := New[int, int](3)
	c.Put(1, 10)
	c.Put(2, 20)
	c.Put(3, 30)

	var seen []int
	for k := range c.All() {
		seen = append(seen, k)
		if k == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}

// model is a deliberately naive LRU used as the oracle for randomized runs.
type model struct {
	capacity int
	entries  []pair
}

func (m *model) find(key int) int {
	for i, e := range m.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func (m *model) get(key int) (int, bool) {
	i := m.find(key)
	if i < 0 {
		return 0, false
	}
	e := m.entries[i]
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.entries = append(m.entries, e)
	return e.Value, true
}

func (m *model) put(key, value int) {
	if i := m.find(key); i >= 0 {
		m.entries = append(m.entries[:i], m.entries[i+1:]...)
	}
	m.entries = append(m.entries, pair{key, value})
	if len(m.entries) > m.capacity {
		m.entries = m.entries[1:]
	}
}

func TestRandomizedAgainstModel(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 7, 16} {
		rng := rand.New(rand.NewSource(int64(capacity)))
		c, err := New[int, int](capacity)
		require.NoError(t, err)
		m := &model{capacity: capacity, entries: []pair{}}

		for step := 0; step < 2000; step++ {
			key := rng.Intn(capacity * 3)
			if rng.Intn(2) == 0 {
				value := rng.Int()
				var oldest int
				hadOldest := false
				if len(m.entries) > 0 {
					oldest, hadOldest = m.entries[0].Key, true
				}
				present := m.find(key) >= 0
				full := len(m.entries) == capacity

				m.put(key, value)
				c.Put(key, value)

				if hadOldest && full && !present {
					assert.False(t, c.Contains(oldest), "step %d: oldest key %d survived", step, oldest)
				}
				got, ok := c.Peek(key)
				require.True(t, ok)
				require.Equal(t, value, got)
				requireMostRecent(t, c, key)
			} else {
				want, wantOK := m.get(key)
				got, gotOK := c.Get(key)
				require.Equal(t, wantOK, gotOK, "step %d key %d", step, key)
				require.Equal(t, want, got, "step %d key %d", step, key)
				if gotOK {
					requireMostRecent(t, c, key)
				}
			}

			require.Equal(t, m.entries, nonNil(contents(c)), "step %d", step)
			checkInvariants(t, c)
		}
	}
}

func requireMostRecent(t *testing.T, c *Cache[int, int], key int) {
	t.Helper()
	keys := c.Keys()
	require.NotEmpty(t, keys)
	require.Equal(t, key, keys[len(keys)-1])
}

func nonNil(p []pair) []pair {
	if p == nil {
		return []pair{}
	}
	return p
}
