// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package output renders cache snapshots as text tables, JSON, YAML or the raw
// listing the cache manager shows, and diffs consecutive snapshots.
package output
