// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// lructl is a command line manager for a fixed-capacity LRU cache. It wires
// the CLI, delegates to internal packages, and serves as the entry point.
package main
