// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package config loads lructl.yaml and answers dotted-key lookups against it.
package config
