// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/apex/log"

	"github.com/staranto/lructl/internal/lru"
)

var (
	ErrInvalidKey   = errors.New("please enter a valid integer key")
	ErrInvalidValue = errors.New("please enter a valid integer value")
)

type Op string

const (
	OpGet Op = "get"
	OpPut Op = "put"
)

// Result describes the outcome of one Get or Put.
type Result struct {
	Op    Op
	Key   int
	Value int
	// Found is only meaningful for OpGet.
	Found bool
	// Evicted is only meaningful for OpPut and is set when storing Key pushed
	// the least-recently-used entry out.
	Evicted      bool
	EvictedKey   int
	EvictedValue int
}

// Message renders the result the way the cache manager reports it to a user.
func (r Result) Message() string {
	switch r.Op {
	case OpGet:
		if !r.Found {
			return fmt.Sprintf("Key %d not found!", r.Key)
		}
		return fmt.Sprintf("Key: %d, Value: %d", r.Key, r.Value)
	case OpPut:
		msg := fmt.Sprintf("Key: %d, Value: %d added!", r.Key, r.Value)
		if r.Evicted {
			msg += fmt.Sprintf(" Evicted Key: %d, Value: %d.", r.EvictedKey, r.EvictedValue)
		}
		return msg
	}
	return ""
}

// Stats are running totals for a Session.
type Stats struct {
	Gets      int64
	Hits      int64
	Misses    int64
	Puts      int64
	Evictions int64
}

// Session wraps a shared cache. It is safe for concurrent use.
type Session struct {
	cache *lru.Synced[int, int]

	gets      atomic.Int64
	hits      atomic.Int64
	puts      atomic.Int64
	evictions atomic.Int64
}

func New(cache *lru.Synced[int, int]) *Session {
	return &Session{cache: cache}
}

// Cache returns the cache the session operates on.
func (s *Session) Cache() *lru.Synced[int, int] {
	return s.cache
}

func (s *Session) Get(key int) Result {
	v, ok := s.cache.Get(key)

	s.gets.Add(1)
	if ok {
		s.hits.Add(1)
	}
	log.Debugf("get key=%d found=%t", key, ok)

	return Result{Op: OpGet, Key: key, Value: v, Found: ok}
}

func (s *Session) Put(key, value int) Result {
	res := Result{Op: OpPut, Key: key, Value: value}

	// Peeking at the victim and storing the new entry must happen under one
	// lock or a concurrent Put could change which entry goes.
	s.cache.Do(func(c *lru.Cache[int, int]) {
		if !c.Contains(key) && c.Len() == c.Cap() {
			res.EvictedKey, res.EvictedValue, res.Evicted = c.Oldest()
		}
		c.Put(key, value)
	})

	s.puts.Add(1)
	if res.Evicted {
		s.evictions.Add(1)
		log.Debugf("put key=%d evicted key=%d", key, res.EvictedKey)
	} else {
		log.Debugf("put key=%d", key)
	}

	return res
}

func (s *Session) Stats() Stats {
	gets, hits := s.gets.Load(), s.hits.Load()
	return Stats{
		Gets:      gets,
		Hits:      hits,
		Misses:    gets - hits,
		Puts:      s.puts.Load(),
		Evictions: s.evictions.Load(),
	}
}

// ParseKey accepts a non-negative decimal integer and nothing else.
func ParseKey(s string) (int, error) {
	n, ok := parseDigits(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return n, nil
}

// ParseValue applies the same rule as ParseKey.
func ParseValue(s string) (int, error) {
	n, ok := parseDigits(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return n, nil
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
