// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tui is the interactive "LRU Cache Manager": a key field, a value
// field and the cache contents, least-recently-used first.
package tui
