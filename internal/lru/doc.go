// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package lru implements a fixed-capacity least-recently-used cache.
//
// Entries live in an arena of nodes addressed by slot number. The key index and
// the recency list both refer to slots, so an entry's data is stored exactly
// once. Two reserved slots act as head and tail sentinels and keep every splice
// free of end-of-list special cases.
//
// Cache is not safe for concurrent use. Wrap it in Synced when more than one
// goroutine needs access.
package lru
