// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package session runs user-level get and put requests against an injected
// cache, validating input and turning each outcome into a message fit for a
// human.
package session
